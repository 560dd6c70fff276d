// Package agents exposes the static pool of agents and their attributes
// (spec §2 "Agent Registry"). The default bootstrap pool is grounded on
// the original decomposer's agents.py CLOUD_MODELS / LOCAL_MODELS tables
// and build_agent_pool expansion.
package agents

import (
	"fmt"
	"sort"

	"github.com/joss/intentwave/internal/domain"
)

// Registry is the immutable, session-scoped agent pool.
type Registry struct {
	byName map[string]domain.Agent
	names  []string
}

// New builds a Registry from a bootstrap list (spec §6 "Agent registry
// bootstrap"). Returns an error if the pool is empty or contains a
// duplicate name.
func New(pool []domain.Agent) (*Registry, error) {
	if len(pool) == 0 {
		return nil, fmt.Errorf("agent pool is empty")
	}
	r := &Registry{byName: make(map[string]domain.Agent, len(pool))}
	for _, a := range pool {
		if _, exists := r.byName[a.Name]; exists {
			return nil, fmt.Errorf("duplicate agent name %q", a.Name)
		}
		r.byName[a.Name] = a
		r.names = append(r.names, a.Name)
	}
	sort.Strings(r.names)
	return r, nil
}

// Get looks up an agent by name.
func (r *Registry) Get(name string) (domain.Agent, bool) {
	a, ok := r.byName[name]
	return a, ok
}

// All returns every agent, sorted by name for deterministic iteration.
func (r *Registry) All() []domain.Agent {
	out := make([]domain.Agent, 0, len(r.names))
	for _, n := range r.names {
		out = append(out, r.byName[n])
	}
	return out
}

// Len returns the pool size.
func (r *Registry) Len() int {
	return len(r.names)
}

// CapableOf returns every agent in the registry able to serve the given
// intent's capability and quality-floor requirements (hard constraints
// only; capacity is checked by the solver against a candidate
// assignment).
func (r *Registry) CapableOf(i domain.Intent) []domain.Agent {
	var out []domain.Agent
	for _, n := range r.names {
		a := r.byName[n]
		if a.CanServe(i) {
			out = append(out, a)
		}
	}
	return out
}

// EscalationLadder returns the agents in the given model family set
// ("same profile"), sorted by descending quality then ascending name.
// Only its tests call it; the executor's escalation step
// (nextHigherQuality) ranks CapableOf's result instead.
func (r *Registry) EscalationLadder(allowedFamilies map[string]bool) []domain.Agent {
	var out []domain.Agent
	for _, n := range r.names {
		a := r.byName[n]
		if allowedFamilies == nil || allowedFamilies[a.ModelFamily] {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quality != out[j].Quality {
			return out[i].Quality > out[j].Quality
		}
		return out[i].Name < out[j].Name
	})
	return out
}
