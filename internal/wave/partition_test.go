package wave

import (
	"testing"

	"github.com/joss/intentwave/internal/domain"
)

func intent(id string, deps ...string) domain.Intent {
	return domain.Intent{ID: id, Complexity: domain.Simple, Depends: deps}
}

func TestPartitionEmpty(t *testing.T) {
	waves, err := Partition(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(waves) != 0 {
		t.Errorf("expected zero waves, got %d", len(waves))
	}
}

func TestPartitionSingleIntent(t *testing.T) {
	waves, err := Partition([]domain.Intent{intent("a")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(waves) != 1 || len(waves[0]) != 1 {
		t.Errorf("expected exactly one wave of one intent, got %+v", waves)
	}
}

func TestPartitionChain(t *testing.T) {
	intents := []domain.Intent{
		intent("a"),
		intent("b", "a"),
		intent("c", "b"),
	}
	waves, err := Partition(intents)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(waves) != 3 {
		t.Fatalf("expected 3 waves, got %d", len(waves))
	}
	if waves.PeakParallelism() != 1 {
		t.Errorf("expected peak parallelism 1, got %d", waves.PeakParallelism())
	}
	idx := waves.WaveIndex()
	if !(idx["a"] < idx["b"] && idx["b"] < idx["c"]) {
		t.Errorf("expected strictly increasing wave indices, got %+v", idx)
	}
}

func TestPartitionDisconnected(t *testing.T) {
	intents := []domain.Intent{intent("a"), intent("b"), intent("c")}
	waves, err := Partition(intents)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(waves) != 1 {
		t.Fatalf("expected 1 wave, got %d", len(waves))
	}
	if waves.PeakParallelism() != 3 {
		t.Errorf("expected peak parallelism 3, got %d", waves.PeakParallelism())
	}
}

func TestPartitionCycle(t *testing.T) {
	intents := []domain.Intent{
		intent("a", "c"),
		intent("b", "a"),
		intent("c", "b"),
	}
	_, err := Partition(intents)
	if err == nil {
		t.Fatal("expected a cycle error")
	}
	cycleErr, ok := err.(*CycleError)
	if !ok {
		t.Fatalf("expected *CycleError, got %T", err)
	}
	if len(cycleErr.Cycle) == 0 {
		t.Error("expected a non-empty cycle path")
	}
}

func TestPartitionDanglingDependency(t *testing.T) {
	intents := []domain.Intent{intent("a", "ghost")}
	_, err := Partition(intents)
	if err == nil {
		t.Fatal("expected a dangling dependency error")
	}
	if _, ok := err.(*DanglingDependencyError); !ok {
		t.Fatalf("expected *DanglingDependencyError, got %T", err)
	}
}

func TestPartitionDuplicateIntentID(t *testing.T) {
	intents := []domain.Intent{intent("a"), intent("b", "a"), intent("a")}
	_, err := Partition(intents)
	if err == nil {
		t.Fatal("expected a duplicate intent id error")
	}
	dupErr, ok := err.(*DuplicateIntentError)
	if !ok {
		t.Fatalf("expected *DuplicateIntentError, got %T", err)
	}
	if dupErr.IntentID != "a" {
		t.Errorf("expected duplicate id %q, got %q", "a", dupErr.IntentID)
	}
}

func TestPartitionDeterministic(t *testing.T) {
	intents := []domain.Intent{
		intent("c", "a"),
		intent("a"),
		intent("b", "a"),
	}
	first, err := Partition(intents)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Partition(intents)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("non-deterministic wave count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if len(first[i]) != len(second[i]) {
			t.Fatalf("non-deterministic wave %d size", i)
		}
		for j := range first[i] {
			if first[i][j] != second[i][j] {
				t.Fatalf("non-deterministic wave %d order", i)
			}
		}
	}
}
