package step

import (
	"context"
	"time"
)

type timeoutStep[I, O any] struct {
	inner Step[I, O]
	d     time.Duration
}

// Timeout races inner against a sleep of d and cancels inner on expiry,
// failing with ErrTimeout.
func Timeout[I, O any](inner Step[I, O], d time.Duration) Step[I, O] {
	return &timeoutStep[I, O]{inner: inner, d: d}
}

func (t *timeoutStep[I, O]) Run(ctx context.Context, in I) (O, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()

	type result struct {
		out O
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := t.inner.Run(ctx, in)
		done <- result{out: out, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil && ctx.Err() != nil {
			var zero O
			return zero, ErrTimeout
		}
		return r.out, r.err
	case <-ctx.Done():
		var zero O
		return zero, ErrTimeout
	}
}
