package middleware

import (
	"context"
	"time"

	"github.com/stepforge/agentcore/hooks"
)

// EventMiddleware emits hooks.ToolCallBegin before invocation and
// hooks.ToolCallEnd after, regardless of outcome. It is the first standard
// middleware in the chain so every downstream failure (permission, sandbox,
// retry, timeout, the tool itself) is still observed.
func EventMiddleware(bus hooks.Bus) Middleware {
	return func(next Next) Next {
		return func(ctx context.Context, mc Context) (Result, error) {
			if bus != nil {
				_ = bus.Emit(ctx, hooks.Event{
					Name: hooks.ToolCallBegin,
					At:   time.Now(),
					Payload: hooks.ToolCallBeginPayload{
						ToolUseID: mc.ToolUseID,
						ToolName:  mc.ToolName,
						Arguments: string(mc.ArgumentsJSON),
						SessionID: mc.SessionID,
					},
				})
			}

			start := time.Now()
			res, err := next(ctx, mc)
			dur := time.Since(start)

			if bus != nil {
				errText := ""
				if err != nil {
					errText = err.Error()
				}
				_ = bus.Emit(ctx, hooks.Event{
					Name: hooks.ToolCallEnd,
					At:   time.Now(),
					Payload: hooks.ToolCallEndPayload{
						ToolUseID: mc.ToolUseID,
						ToolName:  mc.ToolName,
						SessionID: mc.SessionID,
						Success:   err == nil,
						Output:    res.Output,
						Error:     errText,
						Duration:  dur,
					},
				})
			}
			return res, err
		}
	}
}
