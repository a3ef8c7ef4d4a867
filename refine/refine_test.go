package refine

import (
	"context"
	"testing"

	"github.com/keonho-kim/svve/adapter"
)

func TestSchedule_DoublesThenCaps(t *testing.T) {
	tests := []struct {
		round int
		want  int
	}{
		{1, 10}, {2, 20}, {3, 40}, {4, 80}, {5, 80}, {6, 80},
	}
	for _, tt := range tests {
		if got := Schedule(10, tt.round, 3); got != tt.want {
			t.Errorf("Schedule(10, %d, 3) = %d, want %d", tt.round, got, tt.want)
		}
	}
}

func TestRerankUntilTopK_StableSetTerminatesEarly(t *testing.T) {
	calls := 0
	a := adapter.New(2, func(query []float32, limit int) ([]uint32, []float32, [][]float32, error) {
		calls++
		return []uint32{1, 2, 3}, []float32{0.9, 0.8, 0.7},
			[][]float32{{1, 0}, {0, 1}, {1, 1}}, nil
	}, false)

	hits, err := RerankUntilTopK(context.Background(), a, []float32{1, 0}, 3, 8, 3, 0.95, 0.005, 2)
	if err != nil {
		t.Fatalf("RerankUntilTopK returned error: %v", err)
	}
	if len(hits) != 3 {
		t.Fatalf("len(hits) = %d, want 3", len(hits))
	}
	if calls > 3 {
		t.Errorf("calls = %d, want <= 3 rounds for a stable stub", calls)
	}
}

func TestRerankUntilTopK_FewerThanTopKIsAcceptable(t *testing.T) {
	a := adapter.New(2, func(query []float32, limit int) ([]uint32, []float32, [][]float32, error) {
		return []uint32{1}, []float32{0.9}, [][]float32{{1, 0}}, nil
	}, false)

	hits, err := RerankUntilTopK(context.Background(), a, []float32{1, 0}, 5, 8, 3, 0.95, 0.005, 2)
	if err != nil {
		t.Fatalf("RerankUntilTopK returned error: %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("len(hits) = %d, want 1 (fewer than top_k is acceptable)", len(hits))
	}
}

func TestRerankUntilTopK_ReachesRoundCapWithoutError(t *testing.T) {
	round := 0
	a := adapter.New(2, func(query []float32, limit int) ([]uint32, []float32, [][]float32, error) {
		round++
		// A never-stabilizing stub: a fresh id appears every round.
		id := uint32(round)
		return []uint32{id}, []float32{float32(round)}, [][]float32{{1, 0}}, nil
	}, false)

	hits, err := RerankUntilTopK(context.Background(), a, []float32{1, 0}, 2, 4, 3, 0.95, 0.005, 2)
	if err != nil {
		t.Fatalf("RerankUntilTopK returned error: %v", err)
	}
	if len(hits) == 0 {
		t.Error("expected a non-empty Top-K even at the round cap")
	}
}

func TestRerankUntilTopK_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := adapter.New(2, func(query []float32, limit int) ([]uint32, []float32, [][]float32, error) {
		return []uint32{1}, []float32{0.9}, [][]float32{{1, 0}}, nil
	}, false)

	_, err := RerankUntilTopK(ctx, a, []float32{1, 0}, 3, 8, 3, 0.95, 0.005, 2)
	if err == nil {
		t.Fatal("expected Canceled error")
	}
}
