package middleware

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is returned when the remainder of the chain does not complete
// within the configured duration.
var ErrTimeout = errors.New("middleware: timeout")

// TimeoutMiddleware races the remainder of the chain against a deadline of
// d, cancelling the inner context and failing with ErrTimeout on expiry.
func TimeoutMiddleware(d time.Duration) Middleware {
	return func(next Next) Next {
		return func(ctx context.Context, mc Context) (Result, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()

			done := make(chan struct {
				res Result
				err error
			}, 1)
			go func() {
				res, err := next(ctx, mc)
				done <- struct {
					res Result
					err error
				}{res, err}
			}()

			select {
			case out := <-done:
				if out.err != nil && ctx.Err() != nil {
					return Result{}, ErrTimeout
				}
				return out.res, out.err
			case <-ctx.Done():
				return Result{}, ErrTimeout
			}
		}
	}
}
