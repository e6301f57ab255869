package ctxkey

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetReturnsDefaultWhenUnset(t *testing.T) {
	k := NewKey("fallback")
	assert.Equal(t, "fallback", k.Get(context.Background()))
}

func TestWithShadowsForDescendantScopeOnly(t *testing.T) {
	k := NewKey(0)
	base := context.Background()
	provided := k.With(base, 42)
	assert.Equal(t, 42, k.Get(provided))

	// A sibling branch forked from base before With was applied must not
	// observe the provided value.
	sibling := context.Background()
	assert.Equal(t, 0, k.Get(sibling))
}

func TestNestedWithShadows(t *testing.T) {
	k := NewKey("outer-default")
	outer := k.With(context.Background(), "outer")
	inner := k.With(outer, "inner")
	assert.Equal(t, "inner", k.Get(inner))
	assert.Equal(t, "outer", k.Get(outer))
}

func TestDistinctKeysDoNotCollide(t *testing.T) {
	a := NewKey("a-default")
	b := NewKey("b-default")
	ctx := a.With(context.Background(), "a-value")
	assert.Equal(t, "a-value", a.Get(ctx))
	assert.Equal(t, "b-default", b.Get(ctx))
}
