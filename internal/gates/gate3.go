package gates

import (
	"math"

	"github.com/joss/intentwave/internal/domain"
)

const (
	productionFitnessWeight     = 0.50
	architecturalCoherenceWeight = 0.30
	documentationCoverageWeight  = 0.20

	shipThreshold   = 85.0
	rethinkThreshold = 60.0
)

// Gate3 performs the final review over all Intent Results from all waves,
// producing a verdict label and three weighted sub-scores (spec §4.6).
//
// complete indicates whether every planned intent produced a result; when
// false, the verdict is annotated Partial, per §7 ("Gate 3 is
// best-effort... computed over the available results and annotated as
// partial").
func Gate3(results []domain.IntentResult, complete bool) domain.GateVerdict {
	if len(results) == 0 {
		// Boundary case (spec §8): an empty intent list yields a ship
		// verdict from Gate 3. spec.md's explicit boundary-case statement
		// is authoritative over the original decomposer's final_review([])
		// rethink-with-no-results behavior.
		return domain.GateVerdict{
			Pass:                   true,
			Score:                  100,
			VerdictLabel:           domain.VerdictShip,
			ProductionFitness:      100,
			ArchitecturalCoherence: 100,
			DocumentationCoverage:  100,
			Partial:                !complete,
		}
	}

	production := productionFitness(results)
	architecture := architecturalCoherence(results)
	documentation := documentationCoverage(results)

	score := production*productionFitnessWeight + architecture*architecturalCoherenceWeight + documentation*documentationCoverageWeight
	score = clamp(score, 0, 100)

	var verdict domain.Verdict
	switch {
	case score >= shipThreshold:
		verdict = domain.VerdictShip
	case score >= rethinkThreshold:
		verdict = domain.VerdictRevise
	default:
		verdict = domain.VerdictRethink
	}

	var issues []string
	if !complete {
		issues = append(issues, "final review computed over a partial result set")
	}

	return domain.GateVerdict{
		Pass:                   verdict == domain.VerdictShip,
		Score:                  score,
		Issues:                 issues,
		VerdictLabel:           verdict,
		ProductionFitness:      production,
		ArchitecturalCoherence: architecture,
		DocumentationCoverage:  documentation,
		Partial:                !complete,
	}
}

// productionFitness is the weighted average of quality scores with a
// multiplicative penalty of 0.5 applied to any result whose tests_passed
// is false. spec.md's explicit multiplicative formula is authoritative
// over the original decomposer's additive min(20, failed_count*5)
// penalty.
func productionFitness(results []domain.IntentResult) float64 {
	total := 0.0
	for _, r := range results {
		effective := r.QualityScore
		if !r.TestsPassed {
			effective *= 0.5
		}
		total += effective
	}
	return (total / float64(len(results))) * 100
}

// architecturalCoherence is 100*(1-sigma) of the quality-score
// distribution, clamped to [0,100]. spec.md's literal formula (no /0.3
// scaling) is authoritative over the original decomposer's
// 100*(1-stdev/0.3).
func architecturalCoherence(results []domain.IntentResult) float64 {
	if len(results) < 2 {
		return 100
	}
	mean := 0.0
	for _, r := range results {
		mean += r.QualityScore
	}
	mean /= float64(len(results))

	variance := 0.0
	for _, r := range results {
		d := r.QualityScore - mean
		variance += d * d
	}
	variance /= float64(len(results))
	sigma := math.Sqrt(variance)

	return clamp(100*(1-sigma), 0, 100)
}

// documentationCoverage blends the fraction of results producing a
// documentation artifact with the mean quality of doc-writer results,
// weighted 60/40 — adopted verbatim from the original decomposer's
// quality_gates.py, since spec.md states only "a blend" without giving
// exact weights.
func documentationCoverage(results []domain.IntentResult) float64 {
	docCount := 0
	docQualitySum := 0.0
	docWriterCount := 0
	for _, r := range results {
		if r.HasDocArtifact() {
			docCount++
		}
		if r.Profile == domain.ProfileDocWriter {
			docQualitySum += r.QualityScore
			docWriterCount++
		}
	}
	fraction := float64(docCount) / float64(len(results)) * 100
	avgQuality := 0.0
	if docWriterCount > 0 {
		avgQuality = (docQualitySum / float64(docWriterCount)) * 100
	}
	return fraction*0.6 + avgQuality*0.4
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
