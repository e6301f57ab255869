package middleware

import (
	"context"
	"time"
)

// RetryPredicate decides whether a given failure is eligible for another
// attempt. A nil predicate retries every error.
type RetryPredicate func(err error) bool

// RetryMiddleware retries the remainder of the chain up to maxAttempts
// total attempts, sleeping delay between attempts. Context cancellation is
// honored between attempts; no further attempt starts once ctx is done.
func RetryMiddleware(maxAttempts int, delay time.Duration, eligible RetryPredicate) Middleware {
	return func(next Next) Next {
		return func(ctx context.Context, mc Context) (Result, error) {
			attempts := maxAttempts
			if attempts < 1 {
				attempts = 1
			}
			var lastRes Result
			var lastErr error
			for attempt := 1; attempt <= attempts; attempt++ {
				if err := ctx.Err(); err != nil {
					return Result{}, err
				}
				res, err := next(ctx, mc)
				if err == nil {
					return res, nil
				}
				lastRes, lastErr = res, err
				if eligible != nil && !eligible(err) {
					break
				}
				if attempt == attempts {
					break
				}
				if delay > 0 {
					timer := time.NewTimer(delay)
					select {
					case <-timer.C:
					case <-ctx.Done():
						timer.Stop()
						return Result{}, ctx.Err()
					}
				}
			}
			return lastRes, lastErr
		}
	}
}
