package step

import "context"

// sequence runs a homogeneously-typed chain of steps in declaration order,
// feeding each step's output as the next step's input. Failures propagate
// immediately; already-completed predecessors are not rolled back. There is
// no implicit concurrency between stages.
type sequence[T any] struct {
	stages []Step[T, T]
}

// Sequence builds a pipeline step from child steps sharing input/output
// type T. Given body [s1...sn], Run(x) feeds x through s1, then s2, ...,
// returning sn's output.
func Sequence[T any](stages ...Step[T, T]) Step[T, T] {
	return &sequence[T]{stages: stages}
}

func (s *sequence[T]) Run(ctx context.Context, in T) (T, error) {
	cur := in
	for _, stage := range s.stages {
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, err
		}
		out, err := stage.Run(ctx, cur)
		if err != nil {
			var zero T
			return zero, err
		}
		cur = out
	}
	return cur, nil
}

// pair chains two steps of possibly different input/output types. Nesting
// Then(Then(s1, s2), s3) builds arbitrary-arity, heterogeneously-typed
// chains, matching design note §9's arity-by-pairwise-chaining approach to
// the result-builder-style declarative body composition.
type pair[A, B, C any] struct {
	first  Step[A, B]
	second Step[B, C]
}

// Then sequences first then second, where second's input type matches
// first's output type. The composite fails immediately if first fails,
// without running second.
func Then[A, B, C any](first Step[A, B], second Step[B, C]) Step[A, C] {
	return &pair[A, B, C]{first: first, second: second}
}

func (p *pair[A, B, C]) Run(ctx context.Context, in A) (C, error) {
	mid, err := p.first.Run(ctx, in)
	if err != nil {
		var zero C
		return zero, err
	}
	if err := ctx.Err(); err != nil {
		var zero C
		return zero, err
	}
	return p.second.Run(ctx, mid)
}
