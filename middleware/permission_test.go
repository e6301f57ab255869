package middleware

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepforge/agentcore/permission"
)

func mustRule(t *testing.T, kind permission.Kind, raw string) permission.Rule {
	t.Helper()
	r, err := permission.NewRule(kind, raw, "")
	require.NoError(t, err)
	return r
}

func passthrough() Next {
	return func(ctx context.Context, mc Context) (Result, error) {
		return Result{Output: string(mc.ArgumentsJSON), Success: true}, nil
	}
}

func TestPermissionMiddlewareDeniesWithDeniedByRule(t *testing.T) {
	e := permission.NewEvaluator()
	e.AddRule(mustRule(t, permission.Deny, "Bash"))

	p := New(PermissionMiddleware(e))
	_, err := p.Handle(context.Background(), Context{ToolName: "Bash", ArgumentsJSON: []byte(`{}`)}, passthrough())

	var pe *PipelineError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, DeniedByRule, pe.Kind)
}

func TestPermissionMiddlewareAsksWithApprovalRequired(t *testing.T) {
	e := permission.NewEvaluator()
	e.AddRule(mustRule(t, permission.Ask, "Bash"))

	p := New(PermissionMiddleware(e))
	_, err := p.Handle(context.Background(), Context{ToolName: "Bash", ArgumentsJSON: []byte(`{}`)}, passthrough())

	var pe *PipelineError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ApprovalRequired, pe.Kind)
	assert.True(t, pe.Kind.Recoverable())
}

func TestPermissionMiddlewareReplacesArgumentsOnAllowModified(t *testing.T) {
	modified := json.RawMessage(`{"path":"/safe"}`)
	e := permission.NewEvaluator(permission.WithHandler(allowModifiedHandler{args: modified}))

	p := New(PermissionMiddleware(e))
	res, err := p.Handle(context.Background(), Context{ToolName: "Read", ArgumentsJSON: []byte(`{"path":"/etc/shadow"}`)}, passthrough())
	require.NoError(t, err)
	assert.Equal(t, string(modified), res.Output)
}

// allowModifiedHandler is a delegate handler that always returns
// allow-with-modified-arguments, used to exercise PermissionMiddleware's
// argument replacement.
type allowModifiedHandler struct{ args json.RawMessage }

func (h allowModifiedHandler) Ask(context.Context, permission.Request) (permission.HandlerVerdict, error) {
	return permission.HandlerVerdict{Kind: permission.HandlerAllowModified, ModifiedArguments: h.args}, nil
}
