// Package gates implements the three quality-gate evaluators of spec
// §4.6: per-intent (Gate 1), per-wave (Gate 2), and final-review (Gate 3),
// plus the retry/escalation recommender. Per-profile score granularity
// (where spec.md states only pass/fail criteria) is grounded on the
// original decomposer's quality_gates.py scoring functions.
package gates

import "github.com/joss/intentwave/internal/domain"

// Gate1 evaluates one Intent Result against its profile's pass criteria
// and returns a Gate Verdict scored 0-100.
func Gate1(r domain.IntentResult) domain.GateVerdict {
	if r.Status != domain.StatusCompleted {
		return domain.GateVerdict{
			Pass:   false,
			Score:  0,
			Issues: []string{"intent status is " + string(r.Status) + ", not completed"},
		}
	}

	switch r.Profile {
	case domain.ProfileBugInvestigator:
		return gateBugInvestigator(r)
	case domain.ProfileImplementer:
		return gateImplementer(r)
	case domain.ProfileTestEngineer:
		return gateTestEngineer(r)
	case domain.ProfileUnitTester:
		return gateUnitTester(r)
	case domain.ProfileDocWriter:
		return gateDocWriter(r)
	case domain.ProfilePlanner:
		return gatePlanner(r)
	case domain.ProfileReviewer:
		return gateReviewer(r)
	default:
		return domain.GateVerdict{Pass: false, Score: 0, Issues: []string{"unknown profile: " + string(r.Profile)}}
	}
}

func gateBugInvestigator(r domain.IntentResult) domain.GateVerdict {
	var issues []string
	score := 0.0
	// 40/40/20 split: tests passing, positive quality, artifact produced.
	if r.TestsPassed {
		score += 40
	} else {
		issues = append(issues, "tests did not pass")
	}
	if r.QualityScore > 0 {
		score += 40
	} else {
		issues = append(issues, "quality score is not positive")
	}
	if len(r.Artifacts) >= 1 {
		score += 20
	} else {
		issues = append(issues, "no artifact produced")
	}
	pass := r.TestsPassed && r.QualityScore > 0 && len(r.Artifacts) >= 1
	return domain.GateVerdict{Pass: pass, Score: score, Issues: issues}
}

func gateImplementer(r domain.IntentResult) domain.GateVerdict {
	var issues []string
	score := 0.0
	if r.TestsPassed {
		score += 35
	} else {
		issues = append(issues, "tests did not pass")
	}
	if r.QualityScore >= 0.70 {
		score += 45
	} else {
		issues = append(issues, "quality score below 0.70")
	}
	if len(r.Artifacts) >= 1 {
		score += 20
	} else {
		issues = append(issues, "no artifact produced")
	}
	pass := r.TestsPassed && r.QualityScore >= 0.70 && len(r.Artifacts) >= 1
	return domain.GateVerdict{Pass: pass, Score: score, Issues: issues}
}

func gateTestEngineer(r domain.IntentResult) domain.GateVerdict {
	var issues []string
	score := 0.0
	if r.TestsPassed {
		score += 30
	} else {
		issues = append(issues, "tests did not pass")
	}
	if r.CoverageDelta >= 0 {
		score += 30
	} else {
		issues = append(issues, "coverage regressed")
	}
	if r.QualityScore >= 0.70 {
		score += 40
	} else {
		issues = append(issues, "quality score below 0.70")
	}
	pass := r.TestsPassed && r.CoverageDelta >= 0 && r.QualityScore >= 0.70
	return domain.GateVerdict{Pass: pass, Score: score, Issues: issues}
}

func gateUnitTester(r domain.IntentResult) domain.GateVerdict {
	var issues []string
	score := 0.0
	if r.TestsPassed {
		score += 50
	} else {
		issues = append(issues, "tests did not pass")
	}
	if r.CoverageDelta > 0 {
		score += 50
	} else {
		issues = append(issues, "no coverage improvement")
	}
	pass := r.TestsPassed && r.CoverageDelta > 0
	return domain.GateVerdict{Pass: pass, Score: score, Issues: issues}
}

func gateDocWriter(r domain.IntentResult) domain.GateVerdict {
	var issues []string
	score := 0.0
	if r.HasDocArtifact() {
		score += 60
	} else {
		issues = append(issues, "no documentation artifact produced")
	}
	if r.QualityScore >= 0.60 {
		score += 40
	} else {
		issues = append(issues, "quality score below 0.60")
	}
	pass := r.HasDocArtifact() && r.QualityScore >= 0.60
	return domain.GateVerdict{Pass: pass, Score: score, Issues: issues}
}

func gatePlanner(r domain.IntentResult) domain.GateVerdict {
	var issues []string
	score := 0.0
	if r.HasPlanArtifact() {
		score += 50
	} else {
		issues = append(issues, "no plan artifact produced")
	}
	if r.QualityScore >= 0.70 {
		score += 50
	} else {
		issues = append(issues, "quality score below 0.70")
	}
	pass := r.HasPlanArtifact() && r.QualityScore >= 0.70
	return domain.GateVerdict{Pass: pass, Score: score, Issues: issues}
}

func gateReviewer(r domain.IntentResult) domain.GateVerdict {
	switch {
	case r.QualityScore >= 0.80:
		return domain.GateVerdict{Pass: true, Score: 100}
	case r.QualityScore >= 0.60:
		// Partial pass: score reduced proportionally within the
		// [60,80) quality band, mapped onto [60,100) score.
		fraction := (r.QualityScore - 0.60) / (0.80 - 0.60)
		return domain.GateVerdict{Pass: true, Score: 60 + fraction*40, Issues: []string{"partial review pass"}}
	default:
		return domain.GateVerdict{Pass: false, Score: r.QualityScore * 100, Issues: []string{"quality score below 0.60"}}
	}
}
