package svve

import (
	"github.com/gammazero/workerpool"
	"github.com/panjf2000/ants/v2"
	concpool "github.com/sourcegraph/conc/pool"

	"github.com/keonho-kim/svve/internal/safe"
)

// Pool is the common interface for a caller-supplied goroutine pool used to
// run the per-segment searches of §5 concurrently. It is optional: a
// SearchRequest with no Pool runs segment search through an internal
// golang.org/x/sync/errgroup fan-out instead (see Engine.searchSegments).
type Pool interface {
	// Submit schedules f to run, returning an error if it could not be
	// scheduled (e.g. the pool was closed). Submit does not wait for f to
	// complete.
	Submit(f func()) error
}

type poolAdapter func(f func()) error

func (p poolAdapter) Submit(f func()) error {
	return p(f)
}

// PoolOfNoPool returns a Pool that launches a new panic-safe goroutine per
// task with no concurrency limit.
func PoolOfNoPool() Pool {
	return poolAdapter(func(f func()) error {
		go func() {
			_ = safe.Call(func() error {
				f()
				return nil
			})
		}()
		return nil
	})
}

// PoolOfAnts adapts a panjf2000/ants pool. It panics if pool is nil.
func PoolOfAnts(pool *ants.Pool) Pool {
	if pool == nil {
		panic("svve: ants pool is nil")
	}
	return poolAdapter(func(f func()) error {
		return pool.Submit(f)
	})
}

// PoolOfWorkerpool adapts a gammazero/workerpool. It panics if pool is nil.
func PoolOfWorkerpool(pool *workerpool.WorkerPool) Pool {
	if pool == nil {
		panic("svve: worker pool is nil")
	}
	return poolAdapter(func(f func()) error {
		pool.Submit(f)
		return nil
	})
}

// PoolOfConc adapts a sourcegraph/conc pool. It panics if pool is nil.
func PoolOfConc(pool *concpool.Pool) Pool {
	if pool == nil {
		panic("svve: conc pool is nil")
	}
	return poolAdapter(func(f func()) error {
		pool.Go(f)
		return nil
	})
}
