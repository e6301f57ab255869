package middleware

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSandboxMiddlewareInjectsConfigVisibleToInner(t *testing.T) {
	cfg := SandboxConfig{WorkingDirectory: "/workspace", AllowNetwork: false}
	p := New(SandboxMiddleware(cfg))

	var observed SandboxConfig
	_, err := p.Handle(context.Background(), Context{}, func(ctx context.Context, mc Context) (Result, error) {
		observed = SandboxKey.Get(ctx)
		return Result{Success: true}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, cfg, observed)
}

func TestSandboxKeyDefaultsToZeroValueOutsideMiddleware(t *testing.T) {
	assert.Equal(t, SandboxConfig{}, SandboxKey.Get(context.Background()))
}
