package executor

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/joss/intentwave/internal/agents"
	"github.com/joss/intentwave/internal/backend"
	"github.com/joss/intentwave/internal/domain"
)

func threeTierRegistry(t *testing.T) *agents.Registry {
	t.Helper()
	r, err := agents.New([]domain.Agent{
		{Name: "agent-low", ModelFamily: "local", Quality: 0.6, Capabilities: []string{"simple"}, Capacity: 10},
		{Name: "agent-mid", ModelFamily: "local", Quality: 0.8, Capabilities: []string{"simple"}, Capacity: 10},
		{Name: "agent-high", ModelFamily: "cloud", Quality: 0.95, Capabilities: []string{"simple"}, Capacity: 10},
	})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return r
}

func onePlannedWave(id, agent string, wave int) domain.Plan {
	return domain.Plan{
		Waves: []domain.PlannedWave{
			{Wave: wave, Intents: []domain.PlannedIntent{
				{ID: id, Profile: domain.ProfileImplementer, Model: agent, Wave: wave},
			}},
		},
	}
}

func TestEscalationLadderScenario(t *testing.T) {
	intent := domain.Intent{ID: "a", Complexity: domain.Simple, QualityFloor: 0}
	reg := threeTierRegistry(t)

	back := backend.NewSimulatedBackend(0.9)
	back.ScriptFor("a",
		backend.Script{Status: domain.StatusFailed, TestsPassed: false},
		backend.Script{Status: domain.StatusFailed, TestsPassed: false},
		backend.Script{Status: domain.StatusCompleted, QualityScore: 0.9, TestsPassed: true, Artifacts: []string{"pr://a"}},
	)

	var mu sync.Mutex
	var events []Event
	emitter := EmitterFunc(func(e Event) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
	})

	cfg := DefaultConfig()
	cfg.MaxRetries = 4
	ex := New(cfg, reg, back, emitter)

	plan := onePlannedWave("a", "agent-low", 0)
	result, err := ex.Run(context.Background(), []domain.Intent{intent}, plan)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Passed != 1 || result.Failed != 0 || result.HumanReview != 0 {
		t.Fatalf("expected one passed intent, got %+v", result)
	}

	var sawEscalation bool
	var sawRetry bool
	for _, e := range events {
		if e.Type == EventIntentEscalated {
			sawEscalation = true
			if e.FromModel != "agent-low" || e.ToModel != "agent-mid" {
				t.Errorf("expected escalation agent-low -> agent-mid, got %s -> %s", e.FromModel, e.ToModel)
			}
			if e.Attempt != 3 {
				t.Errorf("expected escalation on attempt 3, got %d", e.Attempt)
			}
		}
		if e.Type == EventIntentRetried {
			sawRetry = true
		}
	}
	if !sawEscalation {
		t.Error("expected an intent_escalated event")
	}
	if !sawRetry {
		t.Error("expected an intent_retried event")
	}
}

func TestFlagForHumanAfterMaxRetries(t *testing.T) {
	intent := domain.Intent{ID: "a", Complexity: domain.Simple, QualityFloor: 0}
	reg := threeTierRegistry(t)
	back := backend.NewSimulatedBackend(0.9)
	back.ScriptFor("a",
		backend.Script{Status: domain.StatusFailed},
		backend.Script{Status: domain.StatusFailed},
		backend.Script{Status: domain.StatusFailed},
		backend.Script{Status: domain.StatusFailed},
	)

	cfg := DefaultConfig()
	cfg.MaxRetries = 4
	ex := New(cfg, reg, back, nil)

	plan := onePlannedWave("a", "agent-low", 0)
	result, err := ex.Run(context.Background(), []domain.Intent{intent}, plan)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.HumanReview != 1 {
		t.Fatalf("expected the intent to land in human review, got %+v", result)
	}
}

// boundedBackend counts concurrent Execute calls and records the peak,
// to verify the executor never exceeds its configured worker bound.
type boundedBackend struct {
	inFlight int64
	peak     int64
}

func (b *boundedBackend) Execute(ctx context.Context, intent domain.Intent, dc backend.DispatchContext) (domain.IntentResult, error) {
	n := atomic.AddInt64(&b.inFlight, 1)
	for {
		p := atomic.LoadInt64(&b.peak)
		if n <= p || atomic.CompareAndSwapInt64(&b.peak, p, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	atomic.AddInt64(&b.inFlight, -1)
	return domain.IntentResult{Status: domain.StatusCompleted, QualityScore: 0.9, TestsPassed: true, Artifacts: []string{"pr://" + intent.ID}}, nil
}

func TestParallelismBound(t *testing.T) {
	reg := threeTierRegistry(t)
	back := &boundedBackend{}

	var intents []domain.Intent
	var planned []domain.PlannedIntent
	for i := 0; i < 10; i++ {
		id := string(rune('a' + i))
		intents = append(intents, domain.Intent{ID: id, Complexity: domain.Simple, QualityFloor: 0})
		planned = append(planned, domain.PlannedIntent{ID: id, Profile: domain.ProfileImplementer, Model: "agent-low", Wave: 0})
	}
	plan := domain.Plan{Waves: []domain.PlannedWave{{Wave: 0, Intents: planned}}}

	cfg := DefaultConfig()
	cfg.MaxWorkers = 3
	ex := New(cfg, reg, back, nil)

	result, err := ex.Run(context.Background(), intents, plan)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Passed != 10 {
		t.Fatalf("expected all 10 intents to pass, got %+v", result)
	}
	if atomic.LoadInt64(&back.peak) > 3 {
		t.Errorf("expected peak concurrency <= 3, got %d", back.peak)
	}
}

func TestCancellation(t *testing.T) {
	reg := threeTierRegistry(t)
	back := &boundedBackend{}

	var intents []domain.Intent
	var planned []domain.PlannedIntent
	for i := 0; i < 4; i++ {
		id := string(rune('a' + i))
		intents = append(intents, domain.Intent{ID: id, Complexity: domain.Simple, QualityFloor: 0})
		planned = append(planned, domain.PlannedIntent{ID: id, Profile: domain.ProfileImplementer, Model: "agent-low", Wave: 0})
	}
	plan := domain.Plan{Waves: []domain.PlannedWave{
		{Wave: 0, Intents: planned},
		{Wave: 1, Intents: planned},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ex := New(DefaultConfig(), reg, back, nil)
	result, err := ex.Run(ctx, intents, plan)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !result.Cancelled {
		t.Error("expected Cancelled=true for a pre-cancelled context")
	}
	if result.Complete {
		t.Error("a cancelled run should not be marked complete")
	}
}
