package backend

import (
	"context"
	"fmt"
	"sync"

	"github.com/joss/intentwave/internal/domain"
)

// Script describes how a SimulatedBackend should answer a given
// (intent, attempt) pair. An empty Status is reported as completed; every
// other field is used as given, so a zero-value Script yields a completed
// result with quality 0, tests not passed and no artifacts.
type Script struct {
	Status        domain.Status
	QualityScore  float64
	TestsPassed   bool
	CoverageDelta float64
	Artifacts     []string
	Err           error
}

// SimulatedBackend is a deterministic, in-process test double for the
// Execution Backend Interface, driven by per-attempt scripts rather than
// random draws. It never shells out or calls a real
// model; callers preload per-attempt scripts keyed by intent ID, and
// fall back to a default script for anything unscripted.
type SimulatedBackend struct {
	mu       sync.Mutex
	scripts  map[string][]Script // intentID -> one Script per attempt, 1-indexed
	defaults Script
	calls    []Call
}

// Call records one invocation, for assertions in tests.
type Call struct {
	IntentID string
	Agent    string
	Attempt  int
}

// NewSimulatedBackend builds a backend whose unscripted attempts all
// succeed with the given default quality score.
func NewSimulatedBackend(defaultQuality float64) *SimulatedBackend {
	return &SimulatedBackend{
		scripts: make(map[string][]Script),
		defaults: Script{
			Status:       domain.StatusCompleted,
			QualityScore: defaultQuality,
			TestsPassed:  true,
		},
	}
}

// ScriptFor preloads the ordered per-attempt scripts for a given intent.
// ScriptFor(id, s1, s2, ...) means attempt 1 answers s1, attempt 2
// answers s2, and so on; attempts beyond the list reuse the last entry.
func (b *SimulatedBackend) ScriptFor(intentID string, scripts ...Script) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.scripts[intentID] = scripts
}

// Calls returns a snapshot of every Execute invocation observed so far.
func (b *SimulatedBackend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Call, len(b.calls))
	copy(out, b.calls)
	return out
}

// Execute implements Backend.
func (b *SimulatedBackend) Execute(ctx context.Context, intent domain.Intent, dispatchCtx DispatchContext) (domain.IntentResult, error) {
	select {
	case <-ctx.Done():
		return domain.IntentResult{}, ctx.Err()
	default:
	}

	b.mu.Lock()
	b.calls = append(b.calls, Call{IntentID: intent.ID, Agent: dispatchCtx.Agent.Name, Attempt: dispatchCtx.Attempt})
	script := b.scriptFor(intent.ID, dispatchCtx.Attempt)
	b.mu.Unlock()

	if script.Err != nil {
		return domain.IntentResult{}, fmt.Errorf("simulated backend: intent %s attempt %d: %w", intent.ID, dispatchCtx.Attempt, script.Err)
	}

	status := script.Status
	if status == "" {
		status = domain.StatusCompleted
	}

	return domain.IntentResult{
		IntentID:      intent.ID,
		Profile:       "",
		Agent:         dispatchCtx.Agent.Name,
		Attempt:       dispatchCtx.Attempt,
		Status:        status,
		QualityScore:  script.QualityScore,
		TestsPassed:   script.TestsPassed,
		CoverageDelta: script.CoverageDelta,
		Artifacts:     script.Artifacts,
	}, nil
}

func (b *SimulatedBackend) scriptFor(intentID string, attempt int) Script {
	list := b.scripts[intentID]
	if len(list) == 0 {
		return b.defaults
	}
	idx := attempt - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(list) {
		idx = len(list) - 1
	}
	return list[idx]
}
