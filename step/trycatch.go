package step

import "context"

type tryCatch[I, O any] struct {
	primary  Step[I, O]
	fallback func(err error) Step[I, O]
}

// TryCatch swaps a failing primary step for a fallback built from the
// primary's error. The fallback step receives the original input.
func TryCatch[I, O any](primary Step[I, O], fallback func(err error) Step[I, O]) Step[I, O] {
	return &tryCatch[I, O]{primary: primary, fallback: fallback}
}

func (t *tryCatch[I, O]) Run(ctx context.Context, in I) (O, error) {
	out, err := t.primary.Run(ctx, in)
	if err == nil {
		return out, nil
	}
	fb := t.fallback(err)
	if fb == nil {
		var zero O
		return zero, err
	}
	return fb.Run(ctx, in)
}
