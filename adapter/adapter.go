// Package adapter wraps the host-supplied search callback with the
// validation and per-request caching rules the SVVE pipeline depends on,
// and caches every vector the callback returns so that PRF can look them
// up later without calling back into the store.
package adapter

import (
	"fmt"

	"github.com/keonho-kim/svve/errs"
)

// ScoredHit is one (document id, score) pair returned by a search.
type ScoredHit struct {
	DocId uint32
	Score float32
}

// ScoreValue and DocIDValue satisfy internal/mathx.Scored.
func (h ScoredHit) ScoreValue() float32 { return h.Score }
func (h ScoredHit) DocIDValue() uint32  { return h.DocId }

// DocVector is a document id paired with the embedding the store returned
// for it.
type DocVector struct {
	DocId  uint32
	Vector []float32
}

// SearchFn is the capability the host injects: given a query projection
// and a result-count limit, it returns parallel ids/scores/vectors
// triples. The core depends only on this function value, never on any
// particular store's client type.
type SearchFn func(query []float32, limit int) (ids []uint32, scores []float32, vectors [][]float32, err error)

// StoreAdapter validates SearchFn's output against the callback contract
// and maintains the per-request vector cache the PRF stage reads from.
type StoreAdapter struct {
	dim      int
	search   SearchFn
	safe     bool
	cacheMap map[uint32][]float32
}

// New builds a StoreAdapter for a query space of dimensionality dim,
// delegating searches to fn. concurrencySafe declares whether fn may be
// called from multiple goroutines at once; the orchestrator only runs
// segment searches in parallel when this is true.
func New(dim int, fn SearchFn, concurrencySafe bool) *StoreAdapter {
	return &StoreAdapter{
		dim:      dim,
		search:   fn,
		safe:     concurrencySafe,
		cacheMap: make(map[uint32][]float32),
	}
}

// Dim returns the declared embedding dimensionality.
func (a *StoreAdapter) Dim() int {
	return a.dim
}

// ConcurrencySafe reports whether the injected callback may be invoked
// concurrently.
func (a *StoreAdapter) ConcurrencySafe() bool {
	return a.safe
}

// Search invokes the callback with (query, limit), validates its output
// against the protocol in spec.md §4.3/§6, and caches every returned
// vector, most-recent-write-wins, keyed by document id.
func (a *StoreAdapter) Search(query []float32, limit int) ([]ScoredHit, error) {
	ids, scores, vectors, err := a.search(query, limit)
	if err != nil {
		return nil, errs.Wrap(errs.KindAdapterProtocolViolation,
			fmt.Sprintf("search callback returned an error: %v", err), err)
	}

	if len(ids) != len(scores) {
		return nil, errs.NewField(errs.KindAdapterProtocolViolation, "scores",
			fmt.Sprintf("scores has length %d, want %d (len(ids))", len(scores), len(ids)))
	}
	if len(ids) != len(vectors) {
		return nil, errs.NewField(errs.KindAdapterProtocolViolation, "vectors",
			fmt.Sprintf("vectors has length %d, want %d (len(ids))", len(vectors), len(ids)))
	}
	if len(ids) > limit {
		return nil, errs.NewField(errs.KindAdapterProtocolViolation, "limit",
			fmt.Sprintf("returned %d hits, exceeds requested limit %d", len(ids), limit))
	}

	for i, vector := range vectors {
		if len(vector) != a.dim {
			return nil, errs.NewField(errs.KindAdapterProtocolViolation, "vectors",
				fmt.Sprintf("vector %d has length %d, want %d", i, len(vector), a.dim))
		}
		if !hasFiniteNonZeroNorm(vector) {
			return nil, errs.NewField(errs.KindAdapterProtocolViolation, "vectors",
				fmt.Sprintf("vector %d is not normalizable (zero or non-finite norm)", i))
		}
	}

	hits := make([]ScoredHit, len(ids))
	for i := range ids {
		hits[i] = ScoredHit{DocId: ids[i], Score: scores[i]}
		a.put(ids[i], vectors[i])
	}
	return hits, nil
}

// FetchVectors returns the cached vectors for ids, in the same order.
// Every id must have been returned by an earlier Search call in this
// request; the first absent id fails with CacheMiss.
func (a *StoreAdapter) FetchVectors(ids []uint32) ([]DocVector, error) {
	out := make([]DocVector, 0, len(ids))
	for _, id := range ids {
		v, ok := a.get(id)
		if !ok {
			return nil, errs.NewField(errs.KindCacheMiss, fmt.Sprintf("%d", id),
				"document was never returned by a prior search in this request")
		}
		out = append(out, DocVector{DocId: id, Vector: v})
	}
	return out, nil
}

// Reset clears the per-request vector cache. Call it once a request
// completes; the adapter instance itself may be reused for a later
// request sharing the same callback and dimensionality.
func (a *StoreAdapter) Reset() {
	a.cacheMap = make(map[uint32][]float32)
}
