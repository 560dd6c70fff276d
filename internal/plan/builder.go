// Package plan orchestrates the Wave Partitioner, Profile Router, and
// Assignment Solver into a single serializable Plan (spec §4.5).
package plan

import (
	"sort"

	"github.com/joss/intentwave/internal/agents"
	"github.com/joss/intentwave/internal/costmodel"
	"github.com/joss/intentwave/internal/domain"
	"github.com/joss/intentwave/internal/router"
	"github.com/joss/intentwave/internal/solver"
	"github.com/joss/intentwave/internal/wave"
)

// Result bundles the built Plan with the solver's diagnostics, since
// callers generally want both.
type Result struct {
	Plan         domain.Plan
	SolverReport *solver.Report
}

// Build runs the full planning pipeline: partition into waves, route each
// intent to a profile, solve for an assignment, and derive the Plan's
// aggregate quantities.
func Build(intents []domain.Intent, registry *agents.Registry, cfg solver.Config) (*Result, error) {
	if len(intents) == 0 {
		return &Result{
			Plan: domain.Plan{
				ProfileLoad: map[domain.Profile]int{},
				Waves:       []domain.PlannedWave{},
			},
			SolverReport: &solver.Report{ProvenOptimal: true},
		}, nil
	}

	waves, err := wave.Partition(intents)
	if err != nil {
		return nil, err
	}
	waveIndex := waves.WaveIndex()

	assignment, report, err := solver.Solve(intents, registry, waveIndex, cfg)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Intent, len(intents))
	profiles := make(map[string]domain.Profile, len(intents))
	for _, i := range intents {
		byID[i.ID] = i
		profiles[i.ID] = router.Route(i)
	}

	stats := wave.Analyze(waves, criticalPath(intents, byID, registry, assignment))

	p := domain.Plan{
		TotalIntents:    stats.TotalIntents,
		TotalWaves:      stats.TotalWaves,
		PeakParallelism: stats.PeakParallelism,
		SerialDepth:     stats.SerialDepth,
		BottleneckWave:  stats.BottleneckWave,
		CriticalPath:    stats.CriticalPath,
		ProfileLoad:     profileHistogram(profiles),
	}

	p.Waves = make([]domain.PlannedWave, len(waves))
	for wIdx, w := range waves {
		pw := domain.PlannedWave{Wave: wIdx}
		agentsUsed := map[string]bool{}
		for _, id := range w {
			i := byID[id]
			agentName := assignment[id]
			a, _ := registry.Get(agentName)
			cost := costmodel.PerPair(i, a, cfg.Weights)
			if cost == costmodel.Infeasible {
				cost = 0
			}
			pw.Intents = append(pw.Intents, domain.PlannedIntent{
				ID:              id,
				Profile:         profiles[id],
				Model:           agentName,
				Workflow:        string(profiles[id]),
				Complexity:      i.Complexity,
				EstimatedTokens: i.EstimatedTokens,
				EstimatedCost:   cost,
				DependsOn:       i.Depends,
				Wave:            wIdx,
			})
			pw.EstimatedCost += cost
			agentsUsed[agentName] = true
			p.TotalEstimatedCost += cost
			p.TotalEstimatedTokens += i.EstimatedTokens
		}
		pw.AgentsNeeded = len(agentsUsed)
		sort.Slice(pw.Intents, func(i, j int) bool { return pw.Intents[i].ID < pw.Intents[j].ID })
		p.Waves[wIdx] = pw
	}

	return &Result{Plan: p, SolverReport: report}, nil
}

func profileHistogram(profiles map[string]domain.Profile) map[domain.Profile]int {
	hist := make(map[domain.Profile]int)
	for _, p := range profiles {
		hist[p]++
	}
	return hist
}

// criticalPath finds the longest-by-estimated-duration chain of intents
// through the dependency graph, duration per intent being
// estimated_tokens / chosen_agent.throughput (spec §4.5). Among an
// intent's predecessors with equal path duration, the one with the longer
// chain wins, then the first in id order; among chain ends with equal
// duration, the first in id-sorted order is reported.
func criticalPath(intents []domain.Intent, byID map[string]domain.Intent, registry *agents.Registry, assignment domain.Assignment) []string {
	duration := make(map[string]float64, len(intents))
	for _, i := range intents {
		a, ok := registry.Get(assignment[i.ID])
		throughput := 2000.0
		if ok {
			throughput = a.Throughput()
		}
		duration[i.ID] = float64(i.EstimatedTokens) / throughput
	}

	order := make([]string, 0, len(intents))
	for _, i := range intents {
		order = append(order, i.ID)
	}
	sort.Strings(order)

	memo := make(map[string][]string, len(intents))
	memoDuration := make(map[string]float64, len(intents))

	var longestEndingAt func(id string) ([]string, float64)
	longestEndingAt = func(id string) ([]string, float64) {
		if path, ok := memo[id]; ok {
			return path, memoDuration[id]
		}
		deps := append([]string{}, byID[id].Depends...)
		sort.Strings(deps)
		var bestPrefix []string
		bestDuration := 0.0
		for _, dep := range deps {
			if _, ok := byID[dep]; !ok {
				continue
			}
			path, dur := longestEndingAt(dep)
			if dur > bestDuration || (dur == bestDuration && len(path) > len(bestPrefix)) {
				bestPrefix = path
				bestDuration = dur
			}
		}
		full := append(append([]string{}, bestPrefix...), id)
		total := bestDuration + duration[id]
		memo[id] = full
		memoDuration[id] = total
		return full, total
	}

	var overallBest []string
	overallDuration := -1.0
	for _, id := range order {
		path, dur := longestEndingAt(id)
		if dur > overallDuration {
			overallBest = path
			overallDuration = dur
		}
	}
	return overallBest
}
