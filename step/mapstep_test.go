package step

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapPreservesInputOrder(t *testing.T) {
	double := Func[int, int](func(_ context.Context, v int) (int, error) { return v * 2, nil })
	out, err := Map(double).Run(context.Background(), []int{1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 6, 8, 10}, out)
}

func TestMapFailsWholeOnAnyElementFailure(t *testing.T) {
	boom := Func[int, int](func(_ context.Context, v int) (int, error) {
		if v == 3 {
			return 0, assertErr
		}
		return v, nil
	})
	_, err := Map(boom).Run(context.Background(), []int{1, 2, 3, 4})
	assert.ErrorIs(t, err, assertErr)
}

func TestMapEmptyInput(t *testing.T) {
	double := Func[int, int](func(_ context.Context, v int) (int, error) { return v * 2, nil })
	out, err := Map(double).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}
