package agents

import (
	"fmt"

	"github.com/joss/intentwave/internal/domain"
)

// cloudModel mirrors one entry of the original decomposer's CLOUD_MODELS
// table: a model family expanded into cloudSessions named instances
// sharing one capacity/latency profile.
type cloudModel struct {
	family       string
	tokenRate    float64
	quality      float64
	capabilities []string
}

// localModel mirrors one entry of LOCAL_MODELS: a single named instance
// with its own capacity/latency and zero token rate ("local/free").
type localModel struct {
	name         string
	quality      float64
	capabilities []string
	capacity     int
	latency      float64
}

const (
	cloudSessions = 10
	cloudCapacity = 25
	cloudLatency  = 2.0
)

var allTiers = []string{"trivial", "simple", "moderate", "complex", "very-complex", "epic"}

func tiersUpTo(maxInclusive string) []string {
	var out []string
	for _, t := range allTiers {
		out = append(out, t)
		if t == maxInclusive {
			break
		}
	}
	return out
}

var cloudModels = []cloudModel{
	{family: "claude", tokenRate: 0.015, quality: 0.95, capabilities: allTiers},
	{family: "gpt5.2", tokenRate: 0.012, quality: 0.92, capabilities: allTiers},
	{family: "gemini", tokenRate: 0.008, quality: 0.88, capabilities: tiersUpTo("very-complex")},
	{family: "kimi2.5", tokenRate: 0.004, quality: 0.80, capabilities: tiersUpTo("complex")},
}

var localModels = []localModel{
	{name: "llama3.2-1b", quality: 0.45, capabilities: tiersUpTo("trivial"), capacity: 4, latency: 6.0},
	{name: "llama3.2-3b", quality: 0.55, capabilities: tiersUpTo("simple"), capacity: 4, latency: 7.0},
	{name: "llama3.1-8b", quality: 0.65, capabilities: tiersUpTo("moderate"), capacity: 3, latency: 9.0},
	{name: "codellama-7b", quality: 0.62, capabilities: tiersUpTo("moderate"), capacity: 3, latency: 8.5},
	{name: "mistral-7b", quality: 0.60, capabilities: tiersUpTo("simple"), capacity: 3, latency: 8.0},
	{name: "phi3-mini", quality: 0.50, capabilities: tiersUpTo("trivial"), capacity: 4, latency: 5.0},
	{name: "qwen2-7b", quality: 0.63, capabilities: tiersUpTo("moderate"), capacity: 3, latency: 8.0},
	{name: "deepseek-coder", quality: 0.68, capabilities: tiersUpTo("complex"), capacity: 3, latency: 9.5},
}

// DefaultPool expands the CLOUD_MODELS/LOCAL_MODELS tables into a
// concrete agent list, the same expansion original_source/agents.py's
// build_agent_pool performs: each cloud model becomes cloudSessions named
// instances ("claude-0".."claude-9"), each local model becomes one named
// instance.
func DefaultPool() []domain.Agent {
	var pool []domain.Agent
	for _, m := range cloudModels {
		for session := 0; session < cloudSessions; session++ {
			pool = append(pool, domain.Agent{
				Name:         instanceName(m.family, session),
				ModelFamily:  m.family,
				Quality:      m.quality,
				TokenRate:    m.tokenRate,
				Capabilities: m.capabilities,
				Capacity:     cloudCapacity,
				Latency:      cloudLatency,
				IsLocal:      false,
			})
		}
	}
	for _, m := range localModels {
		pool = append(pool, domain.Agent{
			Name:         m.name,
			ModelFamily:  m.name,
			Quality:      m.quality,
			TokenRate:    0,
			Capabilities: m.capabilities,
			Capacity:     m.capacity,
			Latency:      m.latency,
			IsLocal:      true,
		})
	}
	return pool
}

func instanceName(family string, session int) string {
	return fmt.Sprintf("%s-%d", family, session)
}
