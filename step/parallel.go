package step

import (
	"context"
	"sync"
)

// parallel runs an unordered set of steps sharing input/output types
// concurrently and returns the successful outputs in completion order.
type parallel[I, O any] struct {
	children []Step[I, O]
}

// Parallel builds a best-effort fan-out step: Run(x) launches every child
// concurrently, awaits completion of each, and returns the ordered sequence
// of successful outputs in completion order (not declaration order). If
// every child fails, it fails with an AggregateError wrapping
// ErrParallelAllFailed. Cancelling the parent's context cancels all
// children cooperatively.
func Parallel[I, O any](children ...Step[I, O]) Step[I, []O] {
	return &parallel[I, O]{children: children}
}

type parallelResult[O any] struct {
	index int
	out   O
	err   error
}

func (p *parallel[I, O]) Run(ctx context.Context, in I) ([]O, error) {
	if len(p.children) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan parallelResult[O], len(p.children))
	var wg sync.WaitGroup
	for i, child := range p.children {
		wg.Add(1)
		go func(i int, child Step[I, O]) {
			defer wg.Done()
			out, err := child.Run(ctx, in)
			results <- parallelResult[O]{index: i, out: out, err: err}
		}(i, child)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	outputs := make([]O, 0, len(p.children))
	errs := make([]error, len(p.children))
	anyFailed := false
	for r := range results {
		if r.err != nil {
			errs[r.index] = r.err
			anyFailed = true
			continue
		}
		outputs = append(outputs, r.out)
	}

	if len(outputs) > 0 {
		return outputs, nil
	}
	if anyFailed {
		collected := make([]error, 0, len(errs))
		for _, e := range errs {
			if e != nil {
				collected = append(collected, e)
			}
		}
		return nil, &AggregateError{sentinel: ErrParallelAllFailed, Errors: collected}
	}
	return outputs, nil
}
