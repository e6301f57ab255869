package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/stepforge/agentcore/tool"
)

// InnerExecutor returns the innermost Next: it re-deserializes mc's
// (possibly middleware-modified) arguments JSON into t's typed arguments
// and invokes it. Decode failures surface as ArgumentParseFailed rather
// than a tool error, since the pipeline produced the JSON the tool
// rejected, not the caller.
func InnerExecutor(t tool.Tool) Next {
	return func(ctx context.Context, mc Context) (Result, error) {
		start := time.Now()
		out, err := t.Invoke(ctx, mc.ArgumentsJSON)
		dur := time.Since(start)
		if err != nil {
			switch {
			case errors.Is(err, tool.ErrArgumentParseFailed):
				return Result{Duration: dur}, newError(ArgumentParseFailed, t.Name(), err)
			case errors.Is(err, tool.ErrInvalidArguments):
				return Result{Duration: dur}, newError(InvalidArguments, t.Name(), err)
			}
			return Result{Duration: dur}, err
		}
		return Result{Output: out, Duration: dur, Success: true}, nil
	}
}

// Invoke runs mc through pipeline with InnerExecutor(t) as the innermost
// Next, applying the fallback-requested signal: if the chain fails with an
// error produced by RequestFallback, Invoke returns that fallback string as
// a successful Result instead of propagating the error. This is the
// type-erased outer wrapper referenced in spec §4.5's Fallback rule.
func Invoke(ctx context.Context, pipeline *Pipeline, t tool.Tool, argsJSON json.RawMessage, toolUseID, sessionID string) (Result, error) {
	mc := Context{
		ToolName:      t.Name(),
		ArgumentsJSON: argsJSON,
		ToolUseID:     toolUseID,
		SessionID:     sessionID,
	}
	res, err := pipeline.Handle(ctx, mc, InnerExecutor(t))
	if err != nil {
		if fb, ok := asFallback(err); ok {
			return Result{Output: fb.Value, Success: true}, nil
		}
		return res, err
	}
	return res, nil
}

// InvokeByName resolves name against registry before running Invoke,
// surfacing an unregistered name as a ToolNotFound pipeline error instead
// of the tool package's ErrNotFound sentinel, matching spec §7's
// execution-error taxonomy.
func InvokeByName(ctx context.Context, pipeline *Pipeline, registry *tool.Registry, name string, argsJSON json.RawMessage, toolUseID, sessionID string) (Result, error) {
	t, err := registry.Get(name)
	if err != nil {
		return Result{}, newError(ToolNotFound, name, err)
	}
	return Invoke(ctx, pipeline, t, argsJSON, toolUseID, sessionID)
}
