// Package solver produces an Assignment minimizing the cost objective
// under the hard and soft constraints of spec §4.2. The solver is an
// interface specified by its inputs, outputs, and objective, not by
// algorithm (§9 "Solver backend plurality") — this implementation uses a
// deterministic greedy baseline plus a bounded local-search improvement
// pass, since no constraint-programming library exists anywhere in the
// example corpus (the original decomposer leans on Python's ortools/dimod,
// neither of which has a Go equivalent in the reference pack).
package solver

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/joss/intentwave/internal/costmodel"
	"github.com/joss/intentwave/internal/domain"
)

// Config bundles the weight knobs and wall-clock time budget the solver
// operates under (spec §4.2).
type Config struct {
	Weights             costmodel.Weights
	TimePerWave         float64 // scales wave index into completion_time for deadline penalties
	TimeBudget          time.Duration
	BudgetCap           *float64
	QualityFloorOverride *float64
	RandomSeed           int64

	// SmallProblemThreshold is the largest intent count for which Solve
	// reports ProvenOptimal, and then only when local search did not run
	// or converged within the time budget. It does not gate local search,
	// which runs for any problem of two or more intents while time remains.
	SmallProblemThreshold int
}

// DefaultConfig returns the spec §6 configuration-surface defaults.
func DefaultConfig() Config {
	return Config{
		Weights:               costmodel.DefaultWeights(),
		TimePerWave:           1.0,
		TimeBudget:            10 * time.Second,
		RandomSeed:            1,
		SmallProblemThreshold: 500,
	}
}

// Report accompanies a returned Assignment with solver diagnostics.
type Report struct {
	Objective     float64
	WallTime      time.Duration
	ProvenOptimal bool
	TimedOut      bool
}

// InfeasibleError names the intents for which no agent satisfies the hard
// constraints, or for which aggregate capacity is insufficient.
type InfeasibleError struct {
	IntentIDs []string
	Reason    string
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("no feasible assignment: %s (intents: %v)", e.Reason, e.IntentIDs)
}

// effectiveFloor applies the optional quality-floor-tightening soft
// constraint (§4.2): the operator may raise an intent's effective floor
// above what it declares.
func effectiveFloor(i domain.Intent, override *float64) domain.Intent {
	if override != nil && *override > i.QualityFloor {
		i.QualityFloor = *override
	}
	return i
}

// Solve computes an Assignment over intents using registry agents, given
// each intent's wave index (for deadline timing) and dependency
// predecessor-agent bindings are resolved incrementally as the greedy pass
// proceeds, approximating context affinity.
func Solve(intents []domain.Intent, registry AgentSource, waveIndex map[string]int, cfg Config) (domain.Assignment, *Report, error) {
	start := time.Now()

	if len(intents) == 0 {
		return domain.Assignment{}, &Report{ProvenOptimal: true}, nil
	}

	adjusted := make([]domain.Intent, len(intents))
	for idx, i := range intents {
		adjusted[idx] = effectiveFloor(i, cfg.QualityFloorOverride)
	}

	if err := checkFeasibility(adjusted, registry); err != nil {
		return nil, nil, err
	}

	assignment, objective, err := greedySolve(adjusted, registry, waveIndex, cfg)
	if err != nil {
		return nil, nil, err
	}
	provenOptimal := len(adjusted) <= cfg.SmallProblemThreshold
	timedOut := false

	if len(adjusted) > 1 && time.Since(start) < cfg.TimeBudget {
		improved, improvedObjective, converged := localSearchImprove(adjusted, registry, waveIndex, cfg, assignment, objective, start)
		assignment, objective = improved, improvedObjective
		provenOptimal = converged && provenOptimal
		if !converged && time.Since(start) >= cfg.TimeBudget {
			timedOut = true
		}
	}

	report := &Report{
		Objective:     objective,
		WallTime:      time.Since(start),
		ProvenOptimal: provenOptimal,
		TimedOut:      timedOut,
	}
	return assignment, report, nil
}

// AgentSource is the minimal read surface the solver needs from the Agent
// Registry.
type AgentSource interface {
	All() []domain.Agent
	Get(name string) (domain.Agent, bool)
}

func checkFeasibility(intents []domain.Intent, registry AgentSource) error {
	var infeasible []string
	for _, i := range intents {
		capable := false
		for _, a := range registry.All() {
			if a.CanServe(i) {
				capable = true
				break
			}
		}
		if !capable {
			infeasible = append(infeasible, i.ID)
		}
	}
	if len(infeasible) > 0 {
		sort.Strings(infeasible)
		return &InfeasibleError{IntentIDs: infeasible, Reason: "no agent satisfies capability/quality requirements"}
	}

	// A per-capability-group capacity check: agents covering a given
	// complexity tier are the only ones that can ever absorb intents of
	// that tier, so aggregate capacity across every agent (regardless of
	// what it covers) understates how tight things really are. This is a
	// necessary, not sufficient, condition — quality floors can still
	// shrink the usable set within a tier further than this check sees —
	// but it catches the concrete case where a tier's intents outnumber
	// the capacity of the agents that cover it.
	byTier := make(map[domain.Complexity][]string)
	for _, i := range intents {
		byTier[i.Complexity] = append(byTier[i.Complexity], i.ID)
	}
	agentsAll := registry.All()
	tiers := make([]domain.Complexity, 0, len(byTier))
	for tier := range byTier {
		tiers = append(tiers, tier)
	}
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].Less(tiers[j]) })
	for _, tier := range tiers {
		ids := byTier[tier]
		tierCapacity := 0
		for _, a := range agentsAll {
			if a.Covers(tier) {
				tierCapacity += a.Capacity
			}
		}
		if tierCapacity < len(ids) {
			sort.Strings(ids)
			return &InfeasibleError{
				IntentIDs: ids,
				Reason:    fmt.Sprintf("capability group %q capacity %d is below its intent count %d", tier, tierCapacity, len(ids)),
			}
		}
	}

	totalCapacity := 0
	for _, a := range agentsAll {
		totalCapacity += a.Capacity
	}
	if totalCapacity < len(intents) {
		return &InfeasibleError{Reason: fmt.Sprintf("aggregate capacity %d is below intent count %d", totalCapacity, len(intents))}
	}
	return nil
}

// newRand returns a PRNG seeded with seed. No solver pass calls it: the
// greedy and local-search passes visit intents in a fixed order and break
// equal-cost choices by agent name, so Config.RandomSeed does not affect
// the result. Neither pass compares assignments by how many distinct
// agents they use.
func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
