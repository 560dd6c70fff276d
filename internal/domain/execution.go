package domain

// WaveOutcome records one wave's Gate 2 verdict, attached to an
// ExecutionResult for external observers.
type WaveOutcome struct {
	Wave   int         `json:"wave"`
	Verdict GateVerdict `json:"verdict"`
}

// ExecutionResult is what the Wave Executor always returns, whether the
// session ran to completion or was aborted. An aborted session never
// surfaces an unstructured error; it returns this structure with Error
// and Cancelled populated (spec §7).
type ExecutionResult struct {
	Passed      int           `json:"passed"`
	Failed      int           `json:"failed"`
	HumanReview int           `json:"human_review"`
	Complete    bool          `json:"complete"`
	Cancelled   bool          `json:"cancelled"`
	Error       string        `json:"error,omitempty"`
	WaveOutcomes []WaveOutcome `json:"wave_outcomes"`
	FinalVerdict GateVerdict  `json:"final_verdict"`
	Results     []IntentResult `json:"results"`
}
