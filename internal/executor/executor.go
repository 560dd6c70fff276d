// Package executor implements the Wave Executor (spec §4.7): the single
// concurrency center of the core. It runs waves in index order, dispatches
// every intent in a wave concurrently through an Execution Backend,
// applies the three quality gates, and drives the retry/escalation
// ladder. The worker-pool shape is grounded on the orchestrator package's
// ExecuteWithWorkerPool: a semaphore-bounded goroutine per unit of work,
// a mutex-protected shared results map, and a WaitGroup barrier per wave.
package executor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/joss/intentwave/internal/agents"
	"github.com/joss/intentwave/internal/backend"
	"github.com/joss/intentwave/internal/domain"
	"github.com/joss/intentwave/internal/gates"
	"github.com/joss/intentwave/internal/logging"
)

// Config is the executor's slice of the spec §6 configuration surface.
type Config struct {
	MaxWorkers     int
	MaxRetries     int
	MinWaveQuality float64

	// StrictGate2, when true, aborts the session on the first wave that
	// fails Gate 2 rather than recording the failure and continuing
	// (spec §7: "operator policy").
	StrictGate2 bool

	// SessionTimeout, when non-zero, triggers cancellation once
	// exceeded (spec §5).
	SessionTimeout time.Duration
}

// DefaultConfig returns the spec §6 defaults.
func DefaultConfig() Config {
	return Config{
		MaxWorkers:     8,
		MaxRetries:     4,
		MinWaveQuality: gates.DefaultMinWaveQuality,
	}
}

// Executor runs a Plan to completion against an Execution Backend.
type Executor struct {
	cfg      Config
	registry *agents.Registry
	back     backend.Backend
	emitter  Emitter
	emitMu   sync.Mutex

	mu        sync.Mutex
	artifacts map[string][]string
	attempts  map[string]int

	recovery *logging.RecoveryHandler
	logger   *logging.Logger
}

// New builds an Executor. A nil emitter is replaced with NullEmitter.
func New(cfg Config, registry *agents.Registry, back backend.Backend, emitter Emitter) *Executor {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 8
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 4
	}
	if emitter == nil {
		emitter = NullEmitter{}
	}
	return &Executor{
		cfg:       cfg,
		registry:  registry,
		back:      back,
		emitter:   emitter,
		artifacts: make(map[string][]string),
		attempts:  make(map[string]int),
		recovery:  logging.NewRecoveryHandler("executor.backend"),
		logger:    logging.New("executor"),
	}
}

// emit stamps a sortable event id before handing the event to the
// configured Emitter. emitMu serializes the calls, so the Emitter never
// sees two Emit calls at once.
func (e *Executor) emit(ev Event) {
	e.emitMu.Lock()
	defer e.emitMu.Unlock()
	ev.ID = ulid.Make().String()
	e.emitter.Emit(ev)
}

// Run executes the Plan wave by wave. intents is the full normalized
// intent set the Plan was built from, keyed implicitly by ID.
func (e *Executor) Run(ctx context.Context, intents []domain.Intent, p domain.Plan) (*domain.ExecutionResult, error) {
	if e.cfg.SessionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.SessionTimeout)
		defer cancel()
	}

	byID := make(map[string]domain.Intent, len(intents))
	for _, i := range intents {
		byID[i.ID] = i
	}

	result := &domain.ExecutionResult{}
	finalByIntent := make(map[string]domain.IntentResult)
	humanReview := make(map[string]bool)

	for _, pw := range p.Waves {
		if ctx.Err() != nil {
			result.Cancelled = true
			break
		}

		e.emit(Event{Type: EventWaveStarted, Wave: pw.Wave, IntentCount: len(pw.Intents)})
		waveLog := e.logger.WithWave(pw.Wave)
		waveLog.Info("wave_started", map[string]interface{}{"intent_count": len(pw.Intents)})
		started := time.Now()

		waveResults := e.runWave(ctx, pw, byID)
		for id, r := range waveResults {
			finalByIntent[id] = r
			// runIntent returns either a Gate 1 pass or the result it
			// flagged for human review.
			if r.Status != domain.StatusCompleted || !gates.Gate1(r).Pass {
				humanReview[id] = true
			}
		}

		verdict := gates.Gate2(valuesOf(waveResults, pw), e.cfg.MinWaveQuality)
		result.WaveOutcomes = append(result.WaveOutcomes, domain.WaveOutcome{Wave: pw.Wave, Verdict: verdict})

		status := "pass"
		if !verdict.Pass {
			status = "fail"
		}
		e.emit(Event{
			Type:     EventWaveCompleted,
			Wave:     pw.Wave,
			Status:   status,
			Score:    verdict.Score,
			Duration: time.Since(started).Seconds(),
		})
		waveLog.TimedEvent("wave_completed", started, map[string]interface{}{"status": status, "score": verdict.Score})

		if !verdict.Pass && e.cfg.StrictGate2 {
			result.Error = fmt.Sprintf("wave %d failed gate 2", pw.Wave)
			waveLog.Error("wave_aborted", map[string]interface{}{"reason": "gate2_strict"}, nil)
			break
		}

		if ctx.Err() != nil {
			result.Cancelled = true
			break
		}
	}

	complete := len(finalByIntent) == len(intents) && result.Error == "" && !result.Cancelled
	result.Complete = complete

	ids := make([]string, 0, len(finalByIntent))
	for id := range finalByIntent {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		r := finalByIntent[id]
		result.Results = append(result.Results, r)
		switch {
		case humanReview[id]:
			result.HumanReview++
		case r.Status == domain.StatusCompleted:
			result.Passed++
		default:
			result.Failed++
		}
	}

	result.FinalVerdict = gates.Gate3(result.Results, complete)
	e.emit(Event{
		Type:        EventExecutionCompleted,
		Verdict:     string(result.FinalVerdict.VerdictLabel),
		Passed:      result.Passed,
		Failed:      result.Failed,
		HumanReview: result.HumanReview,
	})

	return result, nil
}

// runWave dispatches every intent in the wave concurrently, bounded by
// MaxWorkers, and returns each intent's final (terminal) result.
func (e *Executor) runWave(ctx context.Context, pw domain.PlannedWave, byID map[string]domain.Intent) map[string]domain.IntentResult {
	sem := make(chan struct{}, e.cfg.MaxWorkers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	out := make(map[string]domain.IntentResult, len(pw.Intents))

	for _, pi := range pw.Intents {
		intent, ok := byID[pi.ID]
		if !ok {
			continue
		}
		agent, ok := e.registry.Get(pi.Model)
		if !ok {
			mu.Lock()
			out[pi.ID] = domain.IntentResult{IntentID: pi.ID, Status: domain.StatusFailed, Error: "assigned agent not found in registry"}
			mu.Unlock()
			continue
		}

		wg.Add(1)
		go func(intent domain.Intent, profile domain.Profile, agent domain.Agent, waveIdx int) {
			defer wg.Done()
			r := e.runIntent(ctx, intent, profile, agent, waveIdx, sem)
			mu.Lock()
			out[intent.ID] = r
			mu.Unlock()
		}(intent, pi.Profile, agent, pw.Wave)
	}

	wg.Wait()
	return out
}

// runIntent drives one intent through the retry/escalation ladder until
// it reaches a passing Gate 1 verdict or human-review state.
func (e *Executor) runIntent(ctx context.Context, intent domain.Intent, profile domain.Profile, agent domain.Agent, waveIdx int, sem chan struct{}) domain.IntentResult {
	attempt := 1
	current := agent
	intentLog := e.logger.WithWave(waveIdx).WithIntent(intent.ID)

	for {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			return domain.IntentResult{IntentID: intent.ID, Profile: profile, Agent: current.Name, Attempt: attempt, Status: domain.StatusFailed, Error: ctx.Err().Error()}
		}

		if attempt == 1 {
			e.emit(Event{Type: EventIntentStarted, IntentID: intent.ID, Profile: string(profile), Model: current.Name, Wave: waveIdx})
		}

		predecessors := e.predecessorArtifacts(intent)
		dispatchCtx := logging.WithRequestID(ctx, "")
		attemptLog := intentLog.WithRequestID(logging.RequestIDFromContext(dispatchCtx))
		var r domain.IntentResult
		var err error
		recoverErr := e.recovery.WrapErrorContext(dispatchCtx, func() error {
			r, err = e.back.Execute(dispatchCtx, intent, backend.DispatchContext{
				WaveIndex:            waveIdx,
				Agent:                current,
				Attempt:              attempt,
				PredecessorArtifacts: predecessors,
			})
			return err
		})
		<-sem
		if recoverErr != nil {
			err = recoverErr
		}

		if err != nil {
			r = domain.IntentResult{IntentID: intent.ID, Agent: current.Name, Attempt: attempt, Status: domain.StatusFailed, Error: err.Error()}
		}
		r.IntentID = intent.ID
		r.Profile = profile
		r.Agent = current.Name
		r.Attempt = attempt

		e.recordAttempt(intent.ID, attempt)
		g1 := gates.Gate1(r)
		e.emit(Event{Type: EventIntentCompleted, IntentID: intent.ID, Status: string(r.Status), Score: g1.Score, Attempt: attempt})

		if g1.Pass {
			e.recordArtifacts(intent.ID, r.Artifacts)
			return r
		}

		if attempt >= e.cfg.MaxRetries {
			e.emit(Event{Type: EventIntentHumanReview, IntentID: intent.ID, Attempts: attempt, LastError: r.Error})
			attemptLog.Error("intent_human_review", map[string]interface{}{"attempts": attempt}, errors.New(r.Error))
			return r
		}

		switch gates.Recommend(attempt) {
		case gates.FlagForHuman:
			e.emit(Event{Type: EventIntentHumanReview, IntentID: intent.ID, Attempts: attempt, LastError: r.Error})
			attemptLog.Error("intent_human_review", map[string]interface{}{"attempts": attempt}, errors.New(r.Error))
			return r
		case gates.Escalate:
			next := e.nextHigherQuality(intent, current)
			e.emit(Event{Type: EventIntentEscalated, IntentID: intent.ID, FromModel: current.Name, ToModel: next.Name, Attempt: attempt + 1})
			attemptLog.Warn("intent_escalated", map[string]interface{}{"from_model": current.Name, "to_model": next.Name}, errors.New(r.Error))
			current = next
		default:
			e.emit(Event{Type: EventIntentRetried, IntentID: intent.ID, Attempt: attempt + 1, Model: current.Name, Reason: r.Error})
			attemptLog.Warn("intent_retried", map[string]interface{}{"attempt": attempt + 1}, errors.New(r.Error))
		}

		attempt++
	}
}

// nextHigherQuality returns the capable agent whose quality is the
// smallest quality strictly greater than current's, per spec §4.7's
// "next higher-quality agent ... chosen from the Agent Registry in
// descending quality order". If current is already the highest-quality
// capable agent, it is returned unchanged.
func (e *Executor) nextHigherQuality(intent domain.Intent, current domain.Agent) domain.Agent {
	candidates := e.registry.CapableOf(intent)
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Quality < candidates[j].Quality })
	for _, c := range candidates {
		if c.Quality > current.Quality {
			return c
		}
	}
	return current
}

func (e *Executor) predecessorArtifacts(intent domain.Intent) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []string
	for _, dep := range intent.Depends {
		out = append(out, e.artifacts[dep]...)
	}
	return out
}

func (e *Executor) recordArtifacts(intentID string, artifacts []string) {
	if len(artifacts) == 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.artifacts[intentID] = append(e.artifacts[intentID], artifacts...)
}

func (e *Executor) recordAttempt(intentID string, attempt int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if attempt > e.attempts[intentID] {
		e.attempts[intentID] = attempt
	}
}

// valuesOf flattens a wave's final results into the order its planned
// intents were listed in, for Gate 2.
func valuesOf(results map[string]domain.IntentResult, pw domain.PlannedWave) []domain.IntentResult {
	out := make([]domain.IntentResult, 0, len(pw.Intents))
	for _, pi := range pw.Intents {
		if r, ok := results[pi.ID]; ok {
			out = append(out, r)
		}
	}
	return out
}
