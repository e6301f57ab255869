package step

import "context"

// LoopCondition decides whether a Loop should keep iterating given the
// latest body output.
type LoopCondition[T any] interface {
	// Done reports whether the loop should stop, given the current
	// accumulated value. The condition may itself perform async work (e.g.
	// a step producing a boolean), hence the context and error return.
	Done(ctx context.Context, value T) (bool, error)
}

// ContinueWhile builds a LoopCondition that keeps iterating while p(value)
// is true, and stops as soon as it is false.
func ContinueWhile[T any](p func(T) bool) LoopCondition[T] {
	return conditionFunc[T](func(_ context.Context, v T) (bool, error) { return !p(v), nil })
}

// StopWhen builds a LoopCondition that stops iterating as soon as q(value)
// is true.
func StopWhen[T any](q func(T) bool) LoopCondition[T] {
	return conditionFunc[T](func(_ context.Context, v T) (bool, error) { return q(v), nil })
}

// StepCondition adapts a boolean-producing Step into a LoopCondition,
// matching spec §4.1's "the condition may itself be a step producing a
// boolean" — true means stop.
func StepCondition[T any](s Step[T, bool]) LoopCondition[T] {
	return conditionFunc[T](func(ctx context.Context, v T) (bool, error) { return s.Run(ctx, v) })
}

type conditionFunc[T any] func(ctx context.Context, v T) (bool, error)

func (f conditionFunc[T]) Done(ctx context.Context, v T) (bool, error) { return f(ctx, v) }

// loop runs a factory-produced body step repeatedly, threading the
// accumulated value, until the condition signals termination or
// MaxIterations is reached.
type loop[T any] struct {
	maxIterations int
	bodyFactory   func() Step[T, T]
	condition     LoopCondition[T]
}

// LoopOptions parameterizes Loop.
type LoopOptions[T any] struct {
	// MaxIterations bounds the number of body executions. A Loop with
	// MaxIterations == 0 fails immediately with ErrLoopConditionNotMet
	// without executing the body.
	MaxIterations int
	// BodyFactory produces a fresh body step for each iteration (a body
	// step may carry its own per-iteration state).
	BodyFactory func() Step[T, T]
	// Condition decides termination after each iteration.
	Condition LoopCondition[T]
}

// Loop builds a bounded iteration step. On each iteration the factory
// produces a body step, which runs with the accumulated value as input;
// the condition decides termination. If MaxIterations is reached without
// termination, Loop fails with ErrLoopConditionNotMet.
func Loop[T any](opts LoopOptions[T]) Step[T, T] {
	return &loop[T]{
		maxIterations: opts.MaxIterations,
		bodyFactory:   opts.BodyFactory,
		condition:     opts.Condition,
	}
}

func (l *loop[T]) Run(ctx context.Context, in T) (T, error) {
	if l.maxIterations <= 0 {
		var zero T
		return zero, ErrLoopConditionNotMet
	}
	cur := in
	for i := 0; i < l.maxIterations; i++ {
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, err
		}
		body := l.bodyFactory()
		out, err := body.Run(ctx, cur)
		if err != nil {
			var zero T
			return zero, err
		}
		cur = out
		done, err := l.condition.Done(ctx, cur)
		if err != nil {
			var zero T
			return zero, err
		}
		if done {
			return cur, nil
		}
	}
	var zero T
	return zero, ErrLoopConditionNotMet
}
