package guardrail

import (
	"context"

	"github.com/stepforge/agentcore/ctxkey"
)

// ambientKey holds the Guardrail composed so far along the current step
// path: nil until the first scope installs one.
var ambientKey = ctxkey.NewKey[*Guardrail](nil)

// Enter returns a derived context in which FromContext reflects scope
// merged onto whatever Guardrail is already ambient in ctx — the
// composition rule from spec §4.6 applied one step deeper. Pass a nil
// scope to enter a step with no guardrail of its own; the ambient policy
// is inherited unchanged.
func Enter(ctx context.Context, scope *Guardrail) context.Context {
	merged := Merge(FromContext(ctx), scope)
	return ambientKey.With(ctx, merged)
}

// FromContext returns the Guardrail composed by every Enter call on ctx's
// path, or nil if none has been installed.
func FromContext(ctx context.Context) *Guardrail {
	return ambientKey.Get(ctx)
}
