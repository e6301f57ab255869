// Package middleware implements the tool-execution middleware pipeline
// (spec §4.5): a chain-of-responsibility executor that wraps every tool
// invocation with event, permission, rate-limit, sandbox, retry, and
// timeout behavior before reaching an inner executor.
//
// Middleware is applied in registration order: the first middleware
// registered is the outermost layer and wraps all subsequent ones, mirroring
// the onion construction in features/model/gateway.Server.
package middleware

import (
	"context"
	"encoding/json"
	"time"
)

// Context is the per-invocation state threaded through the chain. A
// middleware that modifies ArgumentsJSON causes the pipeline to
// re-deserialize the new JSON into the tool's typed arguments before the
// inner executor runs.
type Context struct {
	ToolName      string
	ArgumentsJSON json.RawMessage
	ToolUseID     string
	SessionID     string
	Metadata      map[string]any
}

// Result is what a Next returns: the rendered tool output and its outcome.
type Result struct {
	Output   string
	Duration time.Duration
	Success  bool
	Err      error
}

// Next is one step in the chain: either another wrapped Middleware or the
// innermost executor that actually invokes the tool.
type Next func(ctx context.Context, mc Context) (Result, error)

// Middleware wraps a Next to add behavior before, after, or around
// invocation. Returning without calling next short-circuits the chain; for
// the type-erased tools this pipeline targets (string output), that is
// always a permissible outcome — no typed result is lost.
type Middleware func(next Next) Next

// Pipeline is an ordered chain of Middleware built once and reused across
// invocations.
type Pipeline struct {
	mw []Middleware
}

// New constructs a Pipeline from mw, applied in the given order: mw[0] is
// the outermost layer.
func New(mw ...Middleware) *Pipeline {
	return &Pipeline{mw: append([]Middleware(nil), mw...)}
}

// Handle runs mc through the full chain, with inner as the innermost Next.
func (p *Pipeline) Handle(ctx context.Context, mc Context, inner Next) (Result, error) {
	h := inner
	for i := len(p.mw) - 1; i >= 0; i-- {
		h = p.mw[i](h)
	}
	return h(ctx, mc)
}
