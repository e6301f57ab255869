package step

import (
	"context"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParallelBestEffort is scenario S2: A returns 1 after 10ms, B throws
// after 5ms, C returns 3 after 20ms. Result: [1, 3] in completion order
// (A then C); composition succeeds.
func TestParallelBestEffort(t *testing.T) {
	a := Func[Unit, int](func(context.Context, Unit) (int, error) {
		time.Sleep(10 * time.Millisecond)
		return 1, nil
	})
	b := Func[Unit, int](func(context.Context, Unit) (int, error) {
		time.Sleep(5 * time.Millisecond)
		return 0, assertErr
	})
	c := Func[Unit, int](func(context.Context, Unit) (int, error) {
		time.Sleep(20 * time.Millisecond)
		return 3, nil
	})

	out, err := Parallel[Unit, int](a, b, c).Run(context.Background(), Unit{})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, out)
}

func TestParallelAllFailed(t *testing.T) {
	fail1 := Func[Unit, int](func(context.Context, Unit) (int, error) { return 0, assertErr })
	fail2 := Func[Unit, int](func(context.Context, Unit) (int, error) { return 0, assertErr })

	_, err := Parallel[Unit, int](fail1, fail2).Run(context.Background(), Unit{})
	var agg *AggregateError
	require.ErrorAs(t, err, &agg)
	assert.ErrorIs(t, err, ErrParallelAllFailed)
	assert.Len(t, agg.Errors, 2)
}

// TestParallelAtLeastOneSucceedsProperty validates spec.md §8: for any mix
// of succeeding and failing children, Parallel succeeds iff at least one
// child succeeds, and the number of outputs returned equals the number of
// children that succeeded.
func TestParallelAtLeastOneSucceedsProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("parallel succeeds with exactly the successful outputs, iff any child succeeds", prop.ForAll(
		func(outcomes []bool) bool {
			children := make([]Step[Unit, int], len(outcomes))
			wantSuccesses := 0
			for i, ok := range outcomes {
				ok := ok
				idx := i
				if ok {
					wantSuccesses++
				}
				children[i] = Func[Unit, int](func(context.Context, Unit) (int, error) {
					if ok {
						return idx, nil
					}
					return 0, assertErr
				})
			}

			out, err := Parallel[Unit, int](children...).Run(context.Background(), Unit{})
			if wantSuccesses == 0 {
				return err != nil && len(out) == 0
			}
			return err == nil && len(out) == wantSuccesses
		},
		gen.SliceOfN(8, gen.Bool()),
	))

	properties.TestingRun(t)
}
