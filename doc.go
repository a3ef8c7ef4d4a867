// Package svve implements Segmented Vector Voting & Expansion: a query
// orchestration pipeline that accelerates dense-vector Top-K retrieval on
// top of an already-populated external vector store, without building any
// auxiliary index.
//
// # Overview
//
// Given a single query embedding, Engine.Search returns a ranked list of
// document ids and scores. The engine never talks to a vector store
// directly; all I/O happens through a single injected SearchFn, so the
// same pipeline runs unmodified against Qdrant, Pinecone, or a test stub.
//
// The pipeline runs five stages in a strict, total order:
//
//	query
//	  → normalize                          (internal/mathx)
//	  → segment_ranges                     (internal/segment)
//	  → per-segment search via SearchFn     (adapter)
//	  → vote merge / classify / survivors   (vote)
//	  → centroid + PRF reformulation        (prf)
//	  → iterative refine + stability check  (refine)
//	  → Top-K (ids, scores)
//
// # Concurrency
//
// A request runs on a single goroutine except for the optional parallel
// per-segment search, which only happens when the SearchFn is declared
// concurrency-safe at construction (see New). Supplying a Pool on
// SearchRequest routes that fan-out through a caller-chosen backend
// (PoolOfAnts, PoolOfWorkerpool, PoolOfConc); leaving it nil falls back to
// an internal golang.org/x/sync/errgroup fan-out. The refinement loop is
// always strictly sequential: each round depends on the previous round's
// merged Top-K.
//
// # Errors
//
// Every failure mode is a *Error with a closed Kind: InvalidInput,
// ZeroQuery, AdapterProtocolViolation, CacheMiss, NoSurvivors,
// DegeneratePRF, NoResults, Canceled. There are no retries; the first
// failure aborts the request. Callers match kinds with errors.Is against
// the package's sentinel Err* values.
//
// # Basic usage
//
//	engine := svve.New(dim, searchFn, false)
//	req := svve.NewSearchRequest(queryVector).WithTopK(10)
//	ids, scores, err := engine.Search(req)
//	if err != nil {
//	    if errors.Is(err, svve.ErrNoSurvivors) {
//	        // no segment reached quorum; nothing to reformulate from
//	    }
//	    return err
//	}
package svve
