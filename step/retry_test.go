package step

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	inner := Func[Unit, int](func(context.Context, Unit) (int, error) {
		attempts++
		if attempts < 3 {
			return 0, assertErr
		}
		return 42, nil
	})

	out, err := Retry[Unit, int](inner, 5, time.Millisecond, nil).Run(context.Background(), Unit{})
	require.NoError(t, err)
	assert.Equal(t, 42, out)
	assert.Equal(t, 3, attempts)
}

func TestRetryExhaustsAndWrapsLastError(t *testing.T) {
	attempts := 0
	inner := Func[Unit, int](func(context.Context, Unit) (int, error) {
		attempts++
		return 0, assertErr
	})

	_, err := Retry[Unit, int](inner, 3, time.Millisecond, nil).Run(context.Background(), Unit{})
	assert.ErrorIs(t, err, ErrRetryExhausted)
	var exhausted *retryExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, assertErr, exhausted.Cause())
	assert.Equal(t, 3, attempts)
}

func TestRetryStopsWhenPredicateRejects(t *testing.T) {
	attempts := 0
	inner := Func[Unit, int](func(context.Context, Unit) (int, error) {
		attempts++
		return 0, assertErr
	})
	neverEligible := func(error) bool { return false }

	_, err := Retry[Unit, int](inner, 5, time.Millisecond, neverEligible).Run(context.Background(), Unit{})
	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Equal(t, 1, attempts)
}

func TestRetryWithBackoffUsesPerAttemptDelay(t *testing.T) {
	var delays []int
	inner := Func[Unit, int](func(context.Context, Unit) (int, error) { return 0, assertErr })
	delay := func(attempt int) time.Duration {
		delays = append(delays, attempt)
		return time.Millisecond
	}

	_, err := RetryWithBackoff[Unit, int](inner, 4, delay, nil).Run(context.Background(), Unit{})
	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Equal(t, []int{1, 2, 3}, delays)
}

func TestRetryHonorsCancellationBeforeFirstAttempt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	inner := Func[Unit, int](func(context.Context, Unit) (int, error) { return 0, assertErr })

	_, err := Retry[Unit, int](inner, 5, time.Millisecond, nil).Run(ctx, Unit{})
	assert.ErrorIs(t, err, context.Canceled)
}
