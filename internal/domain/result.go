package domain

// Status is the lifecycle state of one Execution Backend attempt.
type Status string

const (
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusInProgress Status = "in-progress"
)

// IntentResult is produced by the Execution Backend for one attempt at one
// intent.
type IntentResult struct {
	IntentID      string   `json:"intent_id"`
	Profile       Profile  `json:"profile"`
	Agent         string   `json:"agent"`
	Attempt       int      `json:"attempt"`
	Status        Status   `json:"status"`
	QualityScore  float64  `json:"quality_score"`
	TestsPassed   bool     `json:"tests_passed"`
	CoverageDelta float64  `json:"coverage_delta"`
	Artifacts     []string `json:"artifacts,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// HasDocArtifact reports whether any artifact reference ends with a
// recognized documentation-file suffix.
func (r IntentResult) HasDocArtifact() bool {
	for _, a := range r.Artifacts {
		if isDocArtifact(a) {
			return true
		}
	}
	return false
}

var docSuffixes = []string{".md", ".rst", ".txt", ".adoc", ".html", ".pdf"}

func isDocArtifact(ref string) bool {
	for _, suf := range docSuffixes {
		if len(ref) >= len(suf) && ref[len(ref)-len(suf):] == suf {
			return true
		}
	}
	return false
}

var planKeywords = []string{"plan", "design", "architecture", "roadmap", "proposal"}

// HasPlanArtifact reports whether any artifact reference contains one of
// the plan-artifact keywords from spec §4.6 (planner profile pass
// criteria). spec.md's explicit list is authoritative over the original
// decomposer's {plan, design, architecture, roadmap, rfc, spec}.
func (r IntentResult) HasPlanArtifact() bool {
	for _, a := range r.Artifacts {
		for _, kw := range planKeywords {
			if containsFold(a, kw) {
				return true
			}
		}
	}
	return false
}
