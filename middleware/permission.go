package middleware

import (
	"context"

	"github.com/stepforge/agentcore/permission"
)

// PermissionMiddleware consults evaluator before the tool runs. A deny
// verdict fails with DeniedByRule; an ask verdict (no handler resolved it)
// fails with ApprovalRequired; an allow-with-modified-arguments verdict
// replaces mc.ArgumentsJSON so the modified input reaches every downstream
// middleware, including the inner executor's re-deserialization.
func PermissionMiddleware(evaluator *permission.Evaluator) Middleware {
	return func(next Next) Next {
		return func(ctx context.Context, mc Context) (Result, error) {
			if evaluator == nil {
				return next(ctx, mc)
			}
			v, err := evaluator.Evaluate(ctx, permission.Request{
				ToolName:      mc.ToolName,
				ArgumentsJSON: mc.ArgumentsJSON,
			})
			if err != nil {
				return Result{}, err
			}
			switch v.Kind {
			case permission.VerdictDeny:
				return Result{}, newError(DeniedByRule, v.Reason, nil)
			case permission.VerdictAsk:
				return Result{}, newError(ApprovalRequired, v.Reason, nil)
			case permission.VerdictAllowModified:
				mc.ArgumentsJSON = v.Arguments
			}
			return next(ctx, mc)
		}
	}
}
