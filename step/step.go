// Package step implements the Step composition algebra: sequential
// chaining, parallel fan-out, race-to-first-success, loops, maps, gates,
// and retry/timeout/try-catch modifiers over typed asynchronous units.
//
// A Step is a value, freely duplicable, owning no long-lived resources of
// its own. Primitive steps implement the transform directly (Func);
// composite steps forward execution to a nested step graph they build on
// construction (Sequence, Parallel, Race, Loop, Map, ...).
package step

import "context"

// Step is a typed asynchronous unit with input type I and output type O.
// Implementations must be safe to call concurrently from multiple
// goroutines and must not block the calling goroutine's thread for the
// duration of the call — they should return promptly to a context
// cancellation at any suspension point inside Run.
type Step[I, O any] interface {
	Run(ctx context.Context, in I) (O, error)
}

// Unit is the canonical "no input" / "no output" type for steps that are
// driven by ambient state (Memory, Context) rather than by their argument.
type Unit struct{}

// Func adapts a plain function into a primitive Step.
type Func[I, O any] func(ctx context.Context, in I) (O, error)

// Run invokes the wrapped function.
func (f Func[I, O]) Run(ctx context.Context, in I) (O, error) { return f(ctx, in) }

// Identity returns a step that returns its input unchanged.
func Identity[T any]() Step[T, T] {
	return Func[T, T](func(_ context.Context, in T) (T, error) { return in, nil })
}
