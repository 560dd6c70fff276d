package solver

import (
	"sort"

	"github.com/joss/intentwave/internal/costmodel"
	"github.com/joss/intentwave/internal/domain"
)

// greedySolve implements spec §4.2's baseline: iterate intents in
// descending complexity, assign each to the cheapest capable agent with
// remaining capacity. Ties within a complexity tier are broken by
// ascending intent id for determinism (spec.md gives no explicit
// secondary order; the original decomposer's greedy_solve preserves input
// order with no complexity sort at all — spec.md's explicit "iterate in
// descending complexity" instruction overrides that).
//
// checkFeasibility's per-capability-group check only bounds the tier's
// aggregate capacity, not how the greedy pass's fixed processing order
// happens to consume it; an earlier intent in the same tier can still
// exhaust every individually-uncapacitated capable agent before a later
// one is considered. When that happens there is no agent left that
// satisfies both capability and capacity, and the hard constraint of
// §4.2/§8 takes priority over returning some assignment: greedySolve
// reports infeasibility rather than binding the intent to an
// already-full agent.
func greedySolve(intents []domain.Intent, registry AgentSource, waveIndex map[string]int, cfg Config) (domain.Assignment, float64, error) {
	ordered := make([]domain.Intent, len(intents))
	copy(ordered, intents)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Complexity.Rank() != ordered[j].Complexity.Rank() {
			return ordered[i].Complexity.Rank() > ordered[j].Complexity.Rank()
		}
		return ordered[i].ID < ordered[j].ID
	})

	remainingCapacity := make(map[string]int)
	for _, a := range registry.All() {
		remainingCapacity[a.Name] = a.Capacity
	}

	assignment := make(domain.Assignment, len(intents))
	predecessorAgent := make(map[string]string)

	for _, i := range ordered {
		best, bestCost := pickCheapestCapableAgent(i, registry, remainingCapacity, assignment, predecessorAgent, cfg)
		if best == "" {
			return nil, 0, &InfeasibleError{
				IntentIDs: []string{i.ID},
				Reason:    "every individually capable agent is at capacity",
			}
		}
		assignment[i.ID] = best
		predecessorAgent[i.ID] = best
		remainingCapacity[best]--
		_ = bestCost
	}

	objective := totalObjective(intents, registry, waveIndex, assignment, cfg)
	return assignment, objective, nil
}

func pickCheapestCapableAgent(i domain.Intent, registry AgentSource, remainingCapacity map[string]int, assignment domain.Assignment, predecessorAgent map[string]string, cfg Config) (string, float64) {
	type candidate struct {
		name string
		cost float64
	}
	var candidates []candidate

	for _, a := range registry.All() {
		if !a.CanServe(i) {
			continue
		}
		if remainingCapacity[a.Name] <= 0 {
			continue
		}
		cost := costmodel.PerPair(i, a, cfg.Weights)
		if cost == costmodel.Infeasible {
			continue
		}
		cost -= contextBonusFor(i, a.Name, predecessorAgent, cfg.Weights.ContextBonus)
		candidates = append(candidates, candidate{a.Name, cost})
	}
	if len(candidates) == 0 {
		return "", 0
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].cost != candidates[j].cost {
			return candidates[i].cost < candidates[j].cost
		}
		return candidates[i].name < candidates[j].name
	})
	return candidates[0].name, candidates[0].cost
}

func contextBonusFor(i domain.Intent, candidateAgent string, predecessorAgent map[string]string, bonus float64) float64 {
	total := 0.0
	for _, dep := range i.Depends {
		if predecessorAgent[dep] == candidateAgent {
			total += bonus
		}
	}
	return total
}

// totalObjective computes the sum over intents of token+overkill+latency
// +deadline penalties minus context-affinity bonuses, for a candidate
// assignment.
func totalObjective(intents []domain.Intent, registry AgentSource, waveIndex map[string]int, assignment domain.Assignment, cfg Config) float64 {
	total := 0.0
	for _, i := range intents {
		agentName := assignment[i.ID]
		a, ok := registry.Get(agentName)
		if !ok {
			continue
		}
		cost := costmodel.PerPair(i, a, cfg.Weights)
		if cost == costmodel.Infeasible {
			cost = 0
		}
		total += cost
		total += costmodel.DeadlinePenalty(waveIndex[i.ID], cfg.TimePerWave, i.Deadline, cfg.Weights.DeadlineWeight)
		total -= contextBonusFor(i, agentName, assignment, cfg.Weights.ContextBonus)
	}
	if cfg.BudgetCap != nil && total > *cfg.BudgetCap {
		over := total - *cfg.BudgetCap
		total += over * over
	}
	return total
}
