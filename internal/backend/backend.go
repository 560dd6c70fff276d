// Package backend defines the Execution Backend Interface (spec §4.8):
// the abstract boundary to the process that actually performs an intent.
package backend

import (
	"context"

	"github.com/joss/intentwave/internal/domain"
)

// DispatchContext carries everything the backend needs beyond the intent
// itself: the wave index, the agent chosen to serve it, the attempt
// number, and the artifact references produced by its predecessors.
type DispatchContext struct {
	WaveIndex             int
	Agent                 domain.Agent
	Attempt               int
	PredecessorArtifacts  []string
}

// Backend is the single operation the core requires of an execution
// backend. It blocks until the intent is either complete or has produced
// a terminal failure, and may be invoked concurrently from multiple
// goroutines.
type Backend interface {
	Execute(ctx context.Context, intent domain.Intent, dispatchCtx DispatchContext) (domain.IntentResult, error)
}
