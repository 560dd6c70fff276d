// Package costmodel computes per-assignment cost given an (intent, agent)
// pair, per spec §4.1. Weight defaults are grounded on the original
// decomposer's config.py (OVERKILL_WEIGHT, LATENCY_WEIGHT, DEP_PENALTY).
package costmodel

import "github.com/joss/intentwave/internal/domain"

// Weights holds the externally configurable cost-term weights.
type Weights struct {
	OverkillWeight float64
	LatencyWeight  float64
	DeadlineWeight float64
	ContextBonus   float64
}

// DefaultWeights returns the spec §6 configuration-surface defaults.
func DefaultWeights() Weights {
	return Weights{
		OverkillWeight: 2.0,
		LatencyWeight:  0.001,
		DeadlineWeight: 1.0,
		ContextBonus:   0.5,
	}
}

// Infeasible is the sentinel cost value signaling that a+i can never be a
// valid pair: a.Quality < i.QualityFloor or i.Complexity not in
// a.Capabilities. The solver must forbid the assignment rather than treat
// this as a very large number.
const Infeasible = -1

// PerPair computes the per-pair cost excluding the context bonus and
// deadline timing, which depend on global assignment state. Returns
// Infeasible when the agent cannot serve the intent at all.
func PerPair(i domain.Intent, a domain.Agent, w Weights) float64 {
	if !a.CanServe(i) {
		return Infeasible
	}

	tokenCost := float64(i.EstimatedTokens) * a.TokenRate
	overkill := 0.0
	if a.Quality > i.QualityFloor {
		overkill = (a.Quality - i.QualityFloor) * tokenCost * w.OverkillWeight
	}
	latencyPenalty := a.Latency * w.LatencyWeight

	return tokenCost + overkill + latencyPenalty
}

// DeadlinePenalty computes the deadline term: max(0, completionTime -
// deadline) * deadlineWeight, where completionTime is the intent's wave
// index scaled by timePerWave. spec.md's formula (wave-index based) is
// authoritative over the original decomposer's project-duration-fraction
// formula, which this implementation deliberately does not replicate.
func DeadlinePenalty(waveIndex int, timePerWave float64, deadline *int, weight float64) float64 {
	if deadline == nil {
		return 0
	}
	completionTime := float64(waveIndex) * timePerWave
	slack := completionTime - float64(*deadline)
	if slack <= 0 {
		return 0
	}
	return slack * weight
}

// ContextAffinityBonus returns the bonus to subtract when intent i's
// predecessor p is bound to the same agent as i.
func ContextAffinityBonus(sameAgent bool, bonus float64) float64 {
	if sameAgent {
		return bonus
	}
	return 0
}

// Objective layers the contextual terms (deadline timing, context
// affinity) atop a pure per-pair cost, producing the total contribution
// of one intent's assignment to the global objective.
type Objective struct {
	TokenAndOverkillAndLatency float64
	Deadline                   float64
	ContextBonus               float64
}

// Total returns the net cost contribution: additive terms minus the
// context-affinity bonus.
func (o Objective) Total() float64 {
	return o.TokenAndOverkillAndLatency + o.Deadline - o.ContextBonus
}
