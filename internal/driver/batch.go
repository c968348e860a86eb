package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"l5cond/internal/trace"
)

// Batch runs every item concurrently with at most jobs workers (GOMAXPROCS
// when jobs <= 0). Results keep the input order. Per-item failures land in
// Result.Err; the returned error is only set when ctx is cancelled.
func Batch(ctx context.Context, items []Item, opts Options, jobs int, sink ProgressSink) ([]Result, error) {
	opts = opts.withDefaults()
	results := make([]Result, len(items))
	if len(items) == 0 {
		return results, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "batch", 0)
	for _, it := range items {
		emit(sink, it.Name, StageDecode, StatusQueued, nil, 0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(items)))
	for i, it := range items {
		i, it := i, it
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// index i is unique per goroutine, no lock needed
			results[i] = run(gctx, it, opts, sink)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.End("cancelled")
		return results, err
	}
	span.End("")
	return results, nil
}
