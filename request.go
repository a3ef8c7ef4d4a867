package svve

import (
	"context"

	"github.com/keonho-kim/svve/errs"
)

// SearchRequest carries one request's query vector, target result count,
// and the optional ambient knobs (cancellation, concurrency pool) layered
// on top of the core algorithm. None of these change SVVE's math; they
// control how the engine is allowed to execute it.
type SearchRequest struct {
	// Query is the raw, un-normalized query embedding.
	Query []float32

	// TopK is the maximum number of results to return. Must be >= 1.
	TopK int

	// Context, when set, is polled at stage boundaries (after each
	// segment search, after each refinement round) for cancellation.
	Context context.Context

	// Pool, when set, is used to run the per-segment searches
	// concurrently. A nil Pool means the engine's internal errgroup
	// fan-out. Either way, segment search runs sequentially when the
	// engine's SearchFn is not declared concurrency-safe.
	Pool Pool
}

// NewSearchRequest builds a request for query at the default top_k of 5,
// with context.Background() as its context and no pool.
func NewSearchRequest(query []float32) *SearchRequest {
	return &SearchRequest{
		Query:   query,
		TopK:    5,
		Context: context.Background(),
	}
}

// WithTopK sets the maximum number of results to return. If k <= 0 the
// value is ignored and the request is left unchanged.
func (r *SearchRequest) WithTopK(k int) *SearchRequest {
	if k > 0 {
		r.TopK = k
	}
	return r
}

// WithContext sets the cancellation context. If ctx is nil the value is
// ignored.
func (r *SearchRequest) WithContext(ctx context.Context) *SearchRequest {
	if ctx != nil {
		r.Context = ctx
	}
	return r
}

// WithPool sets the concurrency pool used for parallel segment search.
// If pool is nil the value is ignored and the request is left unchanged.
func (r *SearchRequest) WithPool(pool Pool) *SearchRequest {
	if pool != nil {
		r.Pool = pool
	}
	return r
}

// Validate checks the boundary-layer requirements spec.md §4.7 names:
// a non-empty query and a top_k of at least 1.
func (r *SearchRequest) Validate() error {
	if r == nil || len(r.Query) == 0 {
		return errs.NewField(KindInvalidInput, "query", "query must be non-empty")
	}
	if r.TopK < 1 {
		return errs.NewField(KindInvalidInput, "top_k", "top_k must be >= 1")
	}
	return nil
}
