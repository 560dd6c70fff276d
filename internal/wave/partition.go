// Package wave partitions a set of intents into topologically sorted
// parallel execution waves (Kahn's algorithm, BFS by level), grounded on
// the original decomposer's wave_scheduler.compute_waves.
package wave

import (
	"fmt"
	"sort"

	"github.com/joss/intentwave/internal/domain"
)

// CycleError reports a circular dependency found while partitioning.
type CycleError struct {
	Cycle []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("circular dependency detected among intents: %v", e.Cycle)
}

// DanglingDependencyError reports an edge referencing an unknown intent.
type DanglingDependencyError struct {
	IntentID string
	DependsOn string
}

func (e *DanglingDependencyError) Error() string {
	return fmt.Sprintf("intent %q depends on %q, which does not exist in the intent set", e.IntentID, e.DependsOn)
}

// DuplicateIntentError reports the same intent id appearing more than once
// in the input set.
type DuplicateIntentError struct {
	IntentID string
}

func (e *DuplicateIntentError) Error() string {
	return fmt.Sprintf("duplicate intent id %q in intent set", e.IntentID)
}

// Partition computes the wave decomposition for intents, per the Wave
// invariants of spec §3: every intent appears in exactly one wave; for
// every edge a -> b, wave(a) < wave(b); no dependency edges exist within a
// wave.
func Partition(intents []domain.Intent) (domain.Waves, error) {
	if len(intents) == 0 {
		return domain.Waves{}, nil
	}

	byID := make(map[string]domain.Intent, len(intents))
	for _, i := range intents {
		if _, dup := byID[i.ID]; dup {
			return nil, &DuplicateIntentError{IntentID: i.ID}
		}
		byID[i.ID] = i
	}

	for _, i := range intents {
		for _, dep := range i.Depends {
			if _, ok := byID[dep]; !ok {
				return nil, &DanglingDependencyError{IntentID: i.ID, DependsOn: dep}
			}
		}
	}

	inDegree := make(map[string]int, len(intents))
	dependents := make(map[string][]string, len(intents))
	for _, i := range intents {
		inDegree[i.ID] = len(i.Depends)
		for _, dep := range i.Depends {
			dependents[dep] = append(dependents[dep], i.ID)
		}
	}

	var current []string
	for _, i := range intents {
		if inDegree[i.ID] == 0 {
			current = append(current, i.ID)
		}
	}

	var waves domain.Waves
	assigned := make(map[string]bool, len(intents))

	for len(current) > 0 {
		sort.Strings(current)
		waves = append(waves, domain.Wave(current))
		for _, id := range current {
			assigned[id] = true
		}

		seen := make(map[string]bool)
		var next []string
		for _, id := range current {
			for _, depID := range dependents[id] {
				inDegree[depID]--
				if inDegree[depID] == 0 && !seen[depID] {
					next = append(next, depID)
					seen[depID] = true
				}
			}
		}
		current = next
	}

	if len(assigned) < len(intents) {
		remaining := make(map[string]bool)
		for _, i := range intents {
			if !assigned[i.ID] {
				remaining[i.ID] = true
			}
		}
		cycle := findCycle(remaining, byID)
		return nil, &CycleError{Cycle: cycle}
	}

	return waves, nil
}

const (
	white = 0
	gray  = 1
	black = 2
)

// findCycle runs a DFS with white/gray/black coloring over the
// unassigned node set to reconstruct one concrete cycle for the error
// message.
func findCycle(nodeIDs map[string]bool, byID map[string]domain.Intent) []string {
	color := make(map[string]int, len(nodeIDs))
	parent := make(map[string]string, len(nodeIDs))
	for id := range nodeIDs {
		color[id] = white
	}

	ordered := make([]string, 0, len(nodeIDs))
	for id := range nodeIDs {
		ordered = append(ordered, id)
	}
	sort.Strings(ordered)

	var result []string
	var dfs func(id string) bool
	dfs = func(id string) bool {
		color[id] = gray
		deps := byID[id].Depends
		sort.Strings(deps)
		for _, dep := range deps {
			if !nodeIDs[dep] {
				continue
			}
			if color[dep] == gray {
				cycle := []string{dep, id}
				cur := id
				for cur != dep {
					p, ok := parent[cur]
					if !ok {
						break
					}
					cur = p
					cycle = append(cycle, cur)
				}
				reverse(cycle)
				result = cycle
				return true
			}
			if color[dep] == white {
				parent[dep] = id
				if dfs(dep) {
					return true
				}
			}
		}
		color[id] = black
		return false
	}

	for _, id := range ordered {
		if color[id] == white {
			if dfs(id) {
				return result
			}
		}
	}
	return nil
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
