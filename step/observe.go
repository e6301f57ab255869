package step

import (
	"context"

	"github.com/stepforge/agentcore/hooks"
)

type observed[I, O any] struct {
	inner    Step[I, O]
	onInput  func(I)
	onOutput func(O)
	onError  func(error)
}

// OnInput attaches a side-effecting observer invoked with the step's input
// just before Run delegates to inner. Observers must not affect outputs or
// errors.
func OnInput[I, O any](inner Step[I, O], f func(I)) Step[I, O] {
	return wrapObserved(inner, f, nil, nil)
}

// OnOutput attaches a side-effecting observer invoked with the step's
// output on success.
func OnOutput[I, O any](inner Step[I, O], f func(O)) Step[I, O] {
	return wrapObserved(inner, nil, f, nil)
}

// OnError attaches a side-effecting observer invoked with the step's error
// on failure.
func OnError[I, O any](inner Step[I, O], f func(error)) Step[I, O] {
	return wrapObserved(inner, nil, nil, f)
}

func wrapObserved[I, O any](inner Step[I, O], onInput func(I), onOutput func(O), onError func(error)) Step[I, O] {
	if o, ok := inner.(*observed[I, O]); ok {
		merged := &observed[I, O]{inner: o.inner, onInput: o.onInput, onOutput: o.onOutput, onError: o.onError}
		if onInput != nil {
			merged.onInput = chain(o.onInput, onInput)
		}
		if onOutput != nil {
			merged.onOutput = chain(o.onOutput, onOutput)
		}
		if onError != nil {
			merged.onError = chain(o.onError, onError)
		}
		return merged
	}
	return &observed[I, O]{inner: inner, onInput: onInput, onOutput: onOutput, onError: onError}
}

func chain[T any](a, b func(T)) func(T) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(v T) { a(v); b(v) }
}

func (o *observed[I, O]) Run(ctx context.Context, in I) (O, error) {
	if o.onInput != nil {
		o.onInput(in)
	}
	out, err := o.inner.Run(ctx, in)
	if err != nil {
		if o.onError != nil {
			o.onError(err)
		}
		return out, err
	}
	if o.onOutput != nil {
		o.onOutput(out)
	}
	return out, nil
}

// EventTiming identifies when an Emit modifier fires relative to the
// wrapped step's execution.
type EventTiming string

const (
	Before EventTiming = "before"
	After  EventTiming = "after"
)

type emitStep[I, O any] struct {
	inner   Step[I, O]
	bus     hooks.Bus
	name    hooks.Name
	timing  EventTiming
	payload func(I, O, error) any
}

// Emit wraps inner so it publishes name on bus at the given timing. For
// Before, payload is invoked with the zero O and a nil error. For After,
// payload receives the actual output and error (error non-nil on failure).
// Emit never alters inner's output or error.
func Emit[I, O any](inner Step[I, O], bus hooks.Bus, name hooks.Name, timing EventTiming, payload func(in I, out O, err error) any) Step[I, O] {
	return &emitStep[I, O]{inner: inner, bus: bus, name: name, timing: timing, payload: payload}
}

func (e *emitStep[I, O]) Run(ctx context.Context, in I) (O, error) {
	if e.timing == Before && e.bus != nil {
		var zero O
		var p any
		if e.payload != nil {
			p = e.payload(in, zero, nil)
		}
		_ = e.bus.Emit(ctx, hooks.Event{Name: e.name, Payload: p})
	}
	out, err := e.inner.Run(ctx, in)
	if e.timing == After && e.bus != nil {
		var p any
		if e.payload != nil {
			p = e.payload(in, out, err)
		}
		_ = e.bus.Emit(ctx, hooks.Event{Name: e.name, Payload: p})
	}
	return out, err
}
