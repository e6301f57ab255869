package step

import "context"

// GateResult is the outcome of evaluating a Gate: either Pass carrying a
// (possibly transformed) value, or Block carrying a reason.
type GateResult[I any] struct {
	blocked bool
	value   I
	reason  string
}

// Pass lets value flow to the next step, optionally transformed.
func Pass[I any](value I) GateResult[I] { return GateResult[I]{value: value} }

// Block halts the pipeline with reason.
func Block[I any](reason string) GateResult[I] { return GateResult[I]{blocked: true, reason: reason} }

type gate[I any] struct {
	f func(I) GateResult[I]
}

// Gate builds a synchronous decision step: on Pass, the transformed value
// flows to the next step; on Block, the pipeline fails with a
// GateBlockedError carrying the reason.
func Gate[I any](f func(I) GateResult[I]) Step[I, I] {
	return &gate[I]{f: f}
}

func (g *gate[I]) Run(_ context.Context, in I) (I, error) {
	res := g.f(in)
	if res.blocked {
		var zero I
		return zero, &GateBlockedError{Reason: res.reason}
	}
	return res.value, nil
}
