package step

import (
	"context"
	"sync"
	"time"
)

// race runs a set of steps sharing input/output types concurrently and
// returns the first successful output, cancelling the rest.
type race[I, O any] struct {
	children []Step[I, O]
	timeout  time.Duration // zero means no timeout
}

// Race builds a first-success step. Run(x) launches every child
// concurrently and returns the first successful output; remaining tasks are
// cancelled. Failures are ignored until all children complete: if every
// child fails, the race fails with an AggregateError wrapping
// ErrRaceAllFailed. If timeout elapses before any success, it fails with
// ErrRaceTimeout after cancelling children — without waiting for their
// cancellation cleanup to finish.
func Race[I, O any](timeout time.Duration, children ...Step[I, O]) Step[I, O] {
	return &race[I, O]{children: children, timeout: timeout}
}

func (r *race[I, O]) Run(ctx context.Context, in I) (O, error) {
	var zero O
	if len(r.children) == 0 {
		return zero, &AggregateError{sentinel: ErrRaceAllFailed}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan parallelResult[O], len(r.children))
	var wg sync.WaitGroup
	for i, child := range r.children {
		wg.Add(1)
		go func(i int, child Step[I, O]) {
			defer wg.Done()
			out, err := child.Run(ctx, in)
			select {
			case results <- parallelResult[O]{index: i, out: out, err: err}:
			case <-ctx.Done():
			}
		}(i, child)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var timeoutCh <-chan time.Time
	if r.timeout > 0 {
		timer := time.NewTimer(r.timeout)
		defer timer.Stop()
		timeoutCh = timer.C
	}

	errs := make([]error, len(r.children))
	for {
		select {
		case res, ok := <-results:
			if !ok {
				collected := make([]error, 0, len(errs))
				for _, e := range errs {
					if e != nil {
						collected = append(collected, e)
					}
				}
				return zero, &AggregateError{sentinel: ErrRaceAllFailed, Errors: collected}
			}
			if res.err == nil {
				cancel()
				return res.out, nil
			}
			errs[res.index] = res.err
		case <-timeoutCh:
			cancel()
			return zero, ErrRaceTimeout
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}
