// Package ctxkey implements context-key propagation (spec §4.3): a
// type-identified slot with a declared default value, installed for the
// duration of an async scope via Go's context.Context. Because
// context.Context already propagates strictly along the call tree — a
// value provided for a child's context is visible to everything that child
// awaits, and invisible to sibling branches that forked from a common
// ancestor before the value was installed — it is the natural carrier for
// the "task-local storage slot" described in the specification; no separate
// goroutine-local mechanism is required.
package ctxkey

import "context"

// Key identifies a context-propagated value of type T. Construct one with
// NewKey and share the returned value (typically as a package-level var);
// its identity is what distinguishes it from every other Key, not its
// default value or name.
type Key[T any] struct {
	token   *int
	def     T
	defined bool
}

// NewKey declares a context key with the given default value. The default
// is returned by Get whenever no enclosing scope has provided a value
// (invariant I3: lookups never fail).
func NewKey[T any](defaultValue T) Key[T] {
	return Key[T]{token: new(int), def: defaultValue, defined: true}
}

// With returns a derived context in which k reads as v for the remainder of
// the scope — and for every task that scope awaits — until further shadowed
// by a nested With call for the same key.
func (k Key[T]) With(ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, k.token, v)
}

// Get returns the value installed by the innermost enclosing With call, or
// k's declared default if none was installed. Get never fails and never
// panics, even against a nil or background context.
func (k Key[T]) Get(ctx context.Context) T {
	if ctx == nil {
		return k.def
	}
	if v, ok := ctx.Value(k.token).(T); ok {
		return v
	}
	return k.def
}

// Default returns the key's declared default value.
func (k Key[T]) Default() T { return k.def }

// WithValue is a free function form of Key.With, useful for call sites that
// prefer the context.Context-first argument order used elsewhere in the
// ecosystem.
func WithValue[T any](ctx context.Context, k Key[T], v T) context.Context {
	return k.With(ctx, v)
}

// Value is a free function form of Key.Get.
func Value[T any](ctx context.Context, k Key[T]) T {
	return k.Get(ctx)
}
