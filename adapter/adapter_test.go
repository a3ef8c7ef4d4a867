package adapter

import (
	"errors"
	"testing"

	"github.com/keonho-kim/svve/errs"
)

func unitVectors(ids ...uint32) ([]uint32, []float32, [][]float32) {
	scores := make([]float32, len(ids))
	vectors := make([][]float32, len(ids))
	for i := range ids {
		scores[i] = 1.0 - float32(i)*0.1
		v := make([]float32, 4)
		v[i%4] = 1
		vectors[i] = v
	}
	return ids, scores, vectors
}

func TestSearch_CachesReturnedVectors(t *testing.T) {
	ids, scores, vectors := unitVectors(1, 2)
	a := New(4, func(query []float32, limit int) ([]uint32, []float32, [][]float32, error) {
		return ids, scores, vectors, nil
	}, false)

	hits, err := a.Search(make([]float32, 4), 10)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("len(hits) = %d, want 2", len(hits))
	}

	got, err := a.FetchVectors([]uint32{1, 2})
	if err != nil {
		t.Fatalf("FetchVectors returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
}

func TestSearch_LengthMismatchIsProtocolViolation(t *testing.T) {
	a := New(4, func(query []float32, limit int) ([]uint32, []float32, [][]float32, error) {
		return []uint32{1, 2}, []float32{0.9}, [][]float32{{1, 0, 0, 0}}, nil
	}, false)

	_, err := a.Search(make([]float32, 4), 10)
	var e *errs.Error
	if !errors.As(err, &e) || e.Kind != errs.KindAdapterProtocolViolation {
		t.Fatalf("err = %v, want AdapterProtocolViolation", err)
	}
	if e.Field != "scores" {
		t.Errorf("Field = %q, want %q", e.Field, "scores")
	}
}

func TestSearch_WrongDimensionIsProtocolViolation(t *testing.T) {
	a := New(4, func(query []float32, limit int) ([]uint32, []float32, [][]float32, error) {
		return []uint32{1}, []float32{0.9}, [][]float32{{1, 0}}, nil
	}, false)

	_, err := a.Search(make([]float32, 4), 10)
	var e *errs.Error
	if !errors.As(err, &e) || e.Kind != errs.KindAdapterProtocolViolation || e.Field != "vectors" {
		t.Fatalf("err = %v, want AdapterProtocolViolation[vectors]", err)
	}
}

func TestSearch_ZeroNormVectorIsProtocolViolation(t *testing.T) {
	a := New(4, func(query []float32, limit int) ([]uint32, []float32, [][]float32, error) {
		return []uint32{1}, []float32{0.9}, [][]float32{{0, 0, 0, 0}}, nil
	}, false)

	_, err := a.Search(make([]float32, 4), 10)
	var e *errs.Error
	if !errors.As(err, &e) || e.Kind != errs.KindAdapterProtocolViolation {
		t.Fatalf("err = %v, want AdapterProtocolViolation", err)
	}
}

func TestFetchVectors_MissingIdIsCacheMiss(t *testing.T) {
	a := New(4, func(query []float32, limit int) ([]uint32, []float32, [][]float32, error) {
		ids, scores, vectors := unitVectors(1)
		return ids, scores, vectors, nil
	}, false)

	_, _ = a.Search(make([]float32, 4), 10)

	_, err := a.FetchVectors([]uint32{1, 99})
	var e *errs.Error
	if !errors.As(err, &e) || e.Kind != errs.KindCacheMiss {
		t.Fatalf("err = %v, want CacheMiss", err)
	}
	if e.Field != "99" {
		t.Errorf("Field = %q, want %q", e.Field, "99")
	}
}

func TestReset_ClearsCache(t *testing.T) {
	a := New(4, func(query []float32, limit int) ([]uint32, []float32, [][]float32, error) {
		ids, scores, vectors := unitVectors(1)
		return ids, scores, vectors, nil
	}, false)

	_, _ = a.Search(make([]float32, 4), 10)
	a.Reset()

	_, err := a.FetchVectors([]uint32{1})
	var e *errs.Error
	if !errors.As(err, &e) || e.Kind != errs.KindCacheMiss {
		t.Fatalf("err after Reset = %v, want CacheMiss", err)
	}
}
