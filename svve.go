package svve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/keonho-kim/svve/adapter"
	"github.com/keonho-kim/svve/errs"
	"github.com/keonho-kim/svve/internal/mathx"
	"github.com/keonho-kim/svve/internal/safe"
	"github.com/keonho-kim/svve/internal/segment"
	"github.com/keonho-kim/svve/prf"
	"github.com/keonho-kim/svve/refine"
	"github.com/keonho-kim/svve/vote"
)

// SearchFn is the host-injected callback the engine is built around: given
// a query projection and a result-count limit, it returns parallel
// ids/scores/vectors triples.
type SearchFn = adapter.SearchFn

// Engine runs the SVVE pipeline against one store, reached only through
// the SearchFn supplied at construction. An Engine is safe for concurrent
// use across requests as long as SearchFn itself tolerates concurrent
// calls when ConcurrencySafe is declared true; its per-request state lives
// entirely on the adapter instance created inside Search.
type Engine struct {
	dim             int
	search          SearchFn
	concurrencySafe bool
	log             *slog.Logger
}

// New builds an Engine over a query space of dimensionality dim, with fn
// as the sole I/O the engine performs. concurrencySafe declares whether fn
// tolerates being called from multiple goroutines at once; when false,
// per-segment search always runs sequentially regardless of
// SearchRequest.Pool.
func New(dim int, fn SearchFn, concurrencySafe bool) *Engine {
	return &Engine{
		dim:             dim,
		search:          fn,
		concurrencySafe: concurrencySafe,
		log:             slog.Default(),
	}
}

// WithLogger overrides the engine's structured logger, following the
// teacher's convention of defaulting to slog.Default() and letting callers
// opt into their own handler.
func (e *Engine) WithLogger(log *slog.Logger) *Engine {
	if log != nil {
		e.log = log
	}
	return e
}

// Search runs the full SVVE pipeline: normalize, segment, per-segment
// search, vote, mandatory PRF, iterative refinement. It implements the
// Init -> Segmented -> Voted -> PRFReady -> Refining -> Done state machine
// spec.md §4.7 names; every transition is total, and the first failure
// aborts the run without recovery.
func (e *Engine) Search(req *SearchRequest) ([]uint32, []float32, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}
	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}

	q := make([]float32, len(req.Query))
	copy(q, req.Query)
	if !mathx.NormalizeInPlace(q) {
		return nil, nil, errs.New(errs.KindZeroQuery, "query vector has zero or non-finite norm")
	}
	e.log.Debug("svve: stage entered", slog.String("stage", "normalize"), slog.Int("dim", len(q)))

	adapt := adapter.New(e.dim, e.search, e.concurrencySafe)
	defer adapt.Reset()

	ranges := segment.Ranges(len(q), segmentCount)
	e.log.Debug("svve: stage entered", slog.String("stage", "segment"), slog.Int("segments", len(ranges)))

	perSegmentHits, err := e.searchSegments(ctx, adapt, q, ranges, req.Pool)
	if err != nil {
		e.log.Error("svve: stage failed", slog.String("stage", "segment_search"), slog.String("err", err.Error()))
		return nil, nil, fmt.Errorf("stage 'segment_search' failed: %w", err)
	}

	if err := checkCanceled(ctx); err != nil {
		return nil, nil, err
	}

	records := vote.Merge(perSegmentHits, segmentSearchLimit)
	survivors := vote.SelectSurvivors(records, survivorLimit)
	e.log.Debug("svve: stage entered", slog.String("stage", "vote"), slog.Int("survivors", len(survivors)))
	if len(survivors) == 0 {
		return nil, nil, errs.New(errs.KindNoSurvivors, "no non-Noise documents after voting")
	}

	qStar, err := prf.BuildQuery(q, survivors, adapt, prfAlpha)
	if err != nil {
		e.log.Error("svve: stage failed", slog.String("stage", "prf"), slog.String("err", err.Error()))
		return nil, nil, fmt.Errorf("stage 'prf' failed: %w", err)
	}

	top, err := refine.RerankUntilTopK(
		ctx, adapt, qStar, req.TopK,
		maxRefinementRounds, refinementLimitCapExponent,
		stableJaccardThreshold, stableImprovementThreshold, stableRoundsRequired,
	)
	if err != nil {
		e.log.Error("svve: stage failed", slog.String("stage", "refine"), slog.String("err", err.Error()))
		return nil, nil, fmt.Errorf("stage 'refine' failed: %w", err)
	}
	if len(top) == 0 {
		return nil, nil, errs.New(errs.KindNoResults, "refinement ended with an empty candidate pool")
	}

	ids := make([]uint32, len(top))
	scores := make([]float32, len(top))
	for i, hit := range top {
		ids[i] = hit.DocId
		scores[i] = hit.Score
	}
	e.log.Debug("svve: stage entered", slog.String("stage", "done"), slog.Int("results", len(ids)))
	return ids, scores, nil
}

// searchSegments runs one adapter.Search per non-empty segment range,
// either sequentially, through a caller-supplied Pool, or through an
// internal errgroup fan-out when the callback is declared concurrency-
// safe and no Pool was supplied. An empty segment range is skipped
// without invoking the callback, per spec.md §4.2, and contributes an
// empty hit list.
func (e *Engine) searchSegments(ctx context.Context, adapt *adapter.StoreAdapter, q []float32, ranges []segment.Range, pool Pool) ([][]adapter.ScoredHit, error) {
	results := make([][]adapter.ScoredHit, len(ranges))

	searchOne := func(i int) error {
		if ranges[i].Empty() {
			return nil
		}
		projected := segment.BuildQuery(q, ranges[i])
		hits, err := adapt.Search(projected, segmentSearchLimit)
		if err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
		results[i] = hits
		return nil
	}

	// safeSearchOne runs searchOne under panic recovery and folds a
	// recovered panic into the closed error model: a SearchFn panicking
	// is a protocol violation, not a process crash, on every fan-out path.
	safeSearchOne := func(i int) error {
		err := safe.Call(func() error { return searchOne(i) })
		var panicErr *safe.PanicError
		if errors.As(err, &panicErr) {
			return errs.Wrap(errs.KindAdapterProtocolViolation,
				fmt.Sprintf("segment %d: search callback panicked", i), panicErr)
		}
		return err
	}

	if !adapt.ConcurrencySafe() {
		for i := range ranges {
			if err := checkCanceled(ctx); err != nil {
				return nil, err
			}
			if err := safeSearchOne(i); err != nil {
				return nil, err
			}
		}
		return results, nil
	}

	if pool != nil {
		var wg sync.WaitGroup
		segErrs := make([]error, len(ranges))
		var submitErr error
		for i := range ranges {
			i := i
			wg.Add(1)
			if err := pool.Submit(func() {
				defer wg.Done()
				segErrs[i] = safeSearchOne(i)
			}); err != nil {
				wg.Done()
				submitErr = fmt.Errorf("segment %d: submitting to pool: %w", i, err)
				break
			}
		}
		// Wait for every already-submitted task before returning, even on
		// a submit failure: they still write into adapt's cache, and the
		// caller's deferred Reset must not race with that.
		wg.Wait()
		if submitErr != nil {
			return nil, submitErr
		}
		for i, err := range segErrs {
			if err != nil {
				return nil, fmt.Errorf("segment %d: %w", i, err)
			}
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(ranges))
	for i := range ranges {
		i := i
		g.Go(func() error {
			if err := checkCanceled(gctx); err != nil {
				return err
			}
			return safeSearchOne(i)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func checkCanceled(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return errs.New(errs.KindCanceled, "canceled at stage boundary")
	default:
		return nil
	}
}
