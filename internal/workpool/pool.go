// Package workpool is the concurrency substrate shared by the image
// metadata provider and the compact packing strategy's candidate search.
// It owns no global state: a Pool is created per run and torn down with it.
package workpool

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Pool bounds the number of in-flight work items to a fixed width. It is
// safe to share across goroutines; callers submit pure, independent work
// items and results are reassembled by the caller, never by the pool.
type Pool struct {
	limit int
}

// New returns a Pool sized to threads. threads <= 0 resolves to the CPU
// count, matching PackingOptions.Threads' documented default.
func New(threads int) *Pool {
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	return &Pool{limit: threads}
}

// Limit reports the pool's configured concurrency width.
func (p *Pool) Limit() int { return p.limit }

// Run dispatches n independent, pure work items and collects their results
// by index. It is all-or-nothing: the first error cancels the group's
// context, outstanding items are drained, and Run returns that error with
// every other result discarded. fn must tolerate ctx cancellation but is
// not required to observe it (work items are expected to run to
// completion quickly; ctx exists so later items can bail out early).
func Run[T any](ctx context.Context, p *Pool, n int, fn func(ctx context.Context, i int) (T, error)) ([]T, error) {
	results := make([]T, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit)

	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			r, err := fn(gctx, i)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
