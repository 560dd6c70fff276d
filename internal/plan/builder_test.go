package plan

import (
	"testing"

	"github.com/joss/intentwave/internal/agents"
	"github.com/joss/intentwave/internal/domain"
	"github.com/joss/intentwave/internal/solver"
	"github.com/joss/intentwave/internal/wave"
)

func TestBuildEmptyYieldsZeroWaves(t *testing.T) {
	r, err := agents.New(agents.DefaultPool())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := Build(nil, r, solver.DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Plan.TotalWaves != 0 {
		t.Errorf("expected zero waves for an empty intent list, got %d", result.Plan.TotalWaves)
	}
}

func TestBuildChainOfThree(t *testing.T) {
	pool := []domain.Agent{
		{Name: "cheap", Quality: 0.6, TokenRate: 0.001, Capacity: 5, Capabilities: []string{"trivial", "simple", "moderate"}},
		{Name: "pricey", Quality: 0.95, TokenRate: 0.01, Capacity: 5, Capabilities: []string{"trivial", "simple", "moderate"}},
	}
	r, err := agents.New(pool)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	intents := []domain.Intent{
		{ID: "a", Complexity: domain.Trivial, QualityFloor: 0.5, EstimatedTokens: 500},
		{ID: "b", Complexity: domain.Simple, QualityFloor: 0.5, EstimatedTokens: 1500, Depends: []string{"a"}},
		{ID: "c", Complexity: domain.Moderate, QualityFloor: 0.5, EstimatedTokens: 5000, Depends: []string{"b"}},
	}
	result, err := Build(intents, r, solver.DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Plan.TotalWaves != 3 {
		t.Errorf("expected 3 waves, got %d", result.Plan.TotalWaves)
	}
	if len(result.Plan.CriticalPath) != 3 {
		t.Errorf("expected a 3-intent critical path, got %v", result.Plan.CriticalPath)
	}
}

func TestBuildInvariantsHold(t *testing.T) {
	r, err := agents.New(agents.DefaultPool())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	intents := []domain.Intent{
		{ID: "a", Complexity: domain.Simple, QualityFloor: 0.4, EstimatedTokens: 1000, Tags: []string{"verify"}},
		{ID: "b", Complexity: domain.Moderate, QualityFloor: 0.5, EstimatedTokens: 2000, Depends: []string{"a"}, Tags: []string{"fix"}},
	}
	result, err := Build(intents, r, solver.DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waveOf := make(map[string]int)
	for _, w := range result.Plan.Waves {
		for _, pi := range w.Intents {
			waveOf[pi.ID] = w.Wave
		}
	}
	if waveOf["a"] >= waveOf["b"] {
		t.Errorf("expected wave(a) < wave(b), got %d, %d", waveOf["a"], waveOf["b"])
	}
	seen := map[string]bool{}
	for _, w := range result.Plan.Waves {
		for _, pi := range w.Intents {
			if seen[pi.ID] {
				t.Errorf("intent %q appears in more than one wave", pi.ID)
			}
			seen[pi.ID] = true
		}
	}
}

func TestBuildDuplicateIntentIDReturnsError(t *testing.T) {
	r, err := agents.New(agents.DefaultPool())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	intents := []domain.Intent{
		{ID: "a", Complexity: domain.Trivial, QualityFloor: 0.4, EstimatedTokens: 500},
		{ID: "a", Complexity: domain.Simple, QualityFloor: 0.4, EstimatedTokens: 500},
	}
	_, err = Build(intents, r, solver.DefaultConfig())
	if err == nil {
		t.Fatal("expected a duplicate intent id error")
	}
	if _, ok := err.(*wave.DuplicateIntentError); !ok {
		t.Fatalf("expected *wave.DuplicateIntentError, got %T", err)
	}
}

func TestBuildInfeasibleReturnsError(t *testing.T) {
	r, err := agents.New([]domain.Agent{{Name: "weak", Quality: 0.5, Capabilities: []string{"trivial"}, Capacity: 5}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	intents := []domain.Intent{{ID: "x", Complexity: domain.Epic, QualityFloor: 0.95, EstimatedTokens: 1000}}
	_, err = Build(intents, r, solver.DefaultConfig())
	if err == nil {
		t.Fatal("expected an infeasibility error")
	}
}
