package gates

import "github.com/joss/intentwave/internal/domain"

// DefaultMinWaveQuality is the spec §6 configuration-surface default for
// Gate 2's minimum-quality threshold.
const DefaultMinWaveQuality = 0.70

// Gate2 evaluates a completed wave's Intent Results. Pass requires every
// intent to have status=completed, quality_score >= threshold, and
// tests_passed true. The score is the arithmetic mean of the wave's Gate
// 1 scores.
func Gate2(results []domain.IntentResult, minQuality float64) domain.GateVerdict {
	if len(results) == 0 {
		return domain.GateVerdict{Pass: true, Score: 100}
	}

	var issues []string
	allPass := true
	total := 0.0
	for _, r := range results {
		g1 := Gate1(r)
		total += g1.Score
		if r.Status != domain.StatusCompleted {
			allPass = false
			issues = append(issues, r.IntentID+": status is "+string(r.Status))
			continue
		}
		if r.QualityScore < minQuality {
			allPass = false
			issues = append(issues, r.IntentID+": quality score below threshold")
		}
		if !r.TestsPassed {
			allPass = false
			issues = append(issues, r.IntentID+": tests did not pass")
		}
	}

	return domain.GateVerdict{
		Pass:   allPass,
		Score:  total / float64(len(results)),
		Issues: issues,
	}
}
