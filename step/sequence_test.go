package step

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var assertErr = errors.New("boom")

// TestSequenceOrderedTransforms is scenario S1: trim -> lowercase ->
// replace-spaces-with-dash. Input "  Hello World  " -> "hello-world".
func TestSequenceOrderedTransforms(t *testing.T) {
	trim := Func[string, string](func(_ context.Context, s string) (string, error) {
		return strings.TrimSpace(s), nil
	})
	lower := Func[string, string](func(_ context.Context, s string) (string, error) {
		return strings.ToLower(s), nil
	})
	dash := Func[string, string](func(_ context.Context, s string) (string, error) {
		return strings.ReplaceAll(s, " ", "-"), nil
	})

	pipeline := Sequence(trim, lower, dash)
	out, err := pipeline.Run(context.Background(), "  Hello World  ")
	require.NoError(t, err)
	assert.Equal(t, "hello-world", out)
}

func TestSequenceStopsAtFirstFailure(t *testing.T) {
	var ranSecond bool
	boom := Func[int, int](func(context.Context, int) (int, error) { return 0, assertErr })
	second := Func[int, int](func(_ context.Context, v int) (int, error) { ranSecond = true; return v, nil })

	_, err := Sequence(boom, second).Run(context.Background(), 1)
	assert.ErrorIs(t, err, assertErr)
	assert.False(t, ranSecond)
}

func TestThenChainsHeterogeneousTypes(t *testing.T) {
	toLen := Func[string, int](func(_ context.Context, s string) (int, error) { return len(s), nil })
	double := Func[int, int](func(_ context.Context, n int) (int, error) { return n * 2, nil })
	toStr := Func[int, string](func(_ context.Context, n int) (string, error) { return strings.Repeat("x", n), nil })

	chained := Then(Then[string, int, int](toLen, double), toStr)
	out, err := chained.Run(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "xxxx", out)
}
