package step

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryCatchPassesThroughOnSuccess(t *testing.T) {
	primary := Func[int, int](func(_ context.Context, v int) (int, error) { return v * 2, nil })
	fallbackCalled := false
	fallback := func(error) Step[int, int] {
		fallbackCalled = true
		return Identity[int]()
	}

	out, err := TryCatch[int, int](primary, fallback).Run(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 10, out)
	assert.False(t, fallbackCalled)
}

func TestTryCatchInvokesFallbackOnFailure(t *testing.T) {
	primary := Func[int, int](func(context.Context, int) (int, error) { return 0, assertErr })
	var capturedErr error
	fallback := func(err error) Step[int, int] {
		capturedErr = err
		return Func[int, int](func(_ context.Context, v int) (int, error) { return v + 100, nil })
	}

	out, err := TryCatch[int, int](primary, fallback).Run(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 105, out)
	assert.ErrorIs(t, capturedErr, assertErr)
}

func TestTryCatchSurfacesOriginalErrorWhenFallbackNil(t *testing.T) {
	primary := Func[int, int](func(context.Context, int) (int, error) { return 0, assertErr })
	fallback := func(error) Step[int, int] { return nil }

	_, err := TryCatch[int, int](primary, fallback).Run(context.Background(), 5)
	assert.ErrorIs(t, err, assertErr)
}
