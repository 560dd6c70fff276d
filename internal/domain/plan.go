package domain

// PlannedIntent is one intent's entry in the serialized Plan, carrying
// everything the Wave Executor and external observers need without
// re-deriving it from the Intent Graph.
type PlannedIntent struct {
	ID              string     `json:"id"`
	Profile         Profile    `json:"profile"`
	Model           string     `json:"model"`
	Workflow        string     `json:"workflow"`
	Complexity      Complexity `json:"complexity"`
	EstimatedTokens int        `json:"estimated_tokens"`
	EstimatedCost   float64    `json:"estimated_cost"`
	DependsOn       []string   `json:"depends_on,omitempty"`
	Wave            int        `json:"wave"`
}

// PlannedWave is one wave's entry in the serialized Plan.
type PlannedWave struct {
	Wave          int             `json:"wave"`
	AgentsNeeded  int             `json:"agents_needed"`
	EstimatedCost float64         `json:"estimated_cost"`
	Intents       []PlannedIntent `json:"intents"`
}

// Plan is the bundled, serializable description a planning session
// produces and the Wave Executor consumes.
type Plan struct {
	TotalIntents         int             `json:"total_intents"`
	TotalWaves           int             `json:"total_waves"`
	PeakParallelism      int             `json:"peak_parallelism"`
	SerialDepth          int             `json:"serial_depth"`
	BottleneckWave        int             `json:"bottleneck_wave"`
	CriticalPath          []string        `json:"critical_path"`
	TotalEstimatedCost    float64         `json:"total_estimated_cost"`
	TotalEstimatedTokens  int             `json:"total_estimated_tokens"`
	ProfileLoad           map[Profile]int `json:"profile_load"`
	Waves                 []PlannedWave   `json:"waves"`
}
