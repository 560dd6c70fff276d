package domain

// Agent is one immutable worker in the static registry built at session
// start.
type Agent struct {
	Name         string   `json:"name"`
	ModelFamily  string   `json:"model_family"`
	Quality      float64  `json:"quality"`
	TokenRate    float64  `json:"token_rate"`
	Capabilities []string `json:"capabilities"`
	Capacity     int      `json:"capacity"`
	Latency      float64  `json:"latency"`
	IsLocal      bool     `json:"is_local"`
}

// Covers reports whether the agent's capability set serves the given
// complexity tier.
func (a Agent) Covers(c Complexity) bool {
	for _, cap := range a.Capabilities {
		if Complexity(cap) == c {
			return true
		}
	}
	return false
}

// CanServe reports whether the agent satisfies an intent's hard
// constraints: capability coverage and quality floor. It does not check
// capacity, which is a property of a candidate assignment, not of the
// agent alone.
func (a Agent) CanServe(i Intent) bool {
	return a.Covers(i.Complexity) && a.Quality >= i.QualityFloor
}

// Throughput is a fixed per-model-family constant (tokens processed per
// unit of estimated duration), used by the Plan Builder's critical-path
// duration estimate. Local models default to a slower throughput than
// cloud models of equal quality, since they carry no dedicated inference
// capacity.
func (a Agent) Throughput() float64 {
	if a.IsLocal {
		return 500.0
	}
	return 2000.0
}
