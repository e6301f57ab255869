package permission

import (
	"context"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepforge/agentcore/permission/sessionmemory"
)

func mustRule(t *testing.T, kind Kind, raw string) Rule {
	t.Helper()
	r, err := NewRule(kind, raw, "")
	require.NoError(t, err)
	return r
}

// TestPermissionPrecedence is scenario S4.
func TestPermissionPrecedence(t *testing.T) {
	e := NewEvaluator()
	e.AddRule(mustRule(t, Allow, "Bash"))
	e.AddRule(mustRule(t, Deny, "Bash(rm:*)"))
	e.AddRule(mustRule(t, FinalDeny, "Bash(sudo:*)"))
	e.AddRule(mustRule(t, Override, "Bash(rm:*.tmp)"))

	v, err := e.Evaluate(context.Background(), Request{
		ToolName:      "Bash",
		ArgumentsJSON: []byte(`{"command":"rm -rf /tmp/x.tmp"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, VerdictAllow, v.Kind)

	v, err = e.Evaluate(context.Background(), Request{
		ToolName:      "Bash",
		ArgumentsJSON: []byte(`{"command":"sudo reboot"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, VerdictDeny, v.Kind)
}

func TestFinalDenyCannotBeOverridden(t *testing.T) {
	e := NewEvaluator()
	e.AddRule(mustRule(t, FinalDeny, "Bash(sudo:*)"))
	e.AddRule(mustRule(t, Override, "Bash(sudo:*)"))
	e.AddRule(mustRule(t, Allow, "*"))

	v, err := e.Evaluate(context.Background(), Request{
		ToolName:      "Bash",
		ArgumentsJSON: []byte(`{"command":"sudo reboot"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, VerdictDeny, v.Kind)
}

func TestSessionMemoryShortCircuitsAlwaysAllow(t *testing.T) {
	mem := sessionmemory.NewInProcess()
	e := NewEvaluator(WithSessionMemory(mem))
	e.AddRule(mustRule(t, Ask, "Bash"))

	shape := sessionmemory.ArgsShape([]byte(`{"command":"ls"}`))
	require.NoError(t, mem.Remember(context.Background(), "Bash", shape, sessionmemory.AlwaysAllow))

	v, err := e.Evaluate(context.Background(), Request{ToolName: "Bash", ArgumentsJSON: []byte(`{"command":"ls"}`)})
	require.NoError(t, err)
	assert.Equal(t, VerdictAllow, v.Kind)
}

func TestAskBinTakesPrecedenceOverAllow(t *testing.T) {
	e := NewEvaluator()
	e.AddRule(mustRule(t, Allow, "*"))
	e.AddRule(mustRule(t, Ask, "Bash(rm:*)"))

	v, err := e.Evaluate(context.Background(), Request{ToolName: "Bash", ArgumentsJSON: []byte(`{"command":"rm -rf /"}`)})
	require.NoError(t, err)
	assert.Equal(t, VerdictAsk, v.Kind)
}

func TestPlanModeAllowsOnlyReadOnlyTools(t *testing.T) {
	e := NewEvaluator(
		WithMode(ModePlan),
		WithReadOnlyPredicate(func(name string) bool { return name == "Read" }),
	)

	v, err := e.Evaluate(context.Background(), Request{ToolName: "Read"})
	require.NoError(t, err)
	assert.Equal(t, VerdictAllow, v.Kind)

	v, err = e.Evaluate(context.Background(), Request{ToolName: "Write"})
	require.NoError(t, err)
	assert.Equal(t, VerdictDeny, v.Kind)
}

func TestAcceptEditsModeAllowsEverythingNotDenied(t *testing.T) {
	e := NewEvaluator(WithMode(ModeAcceptEdits))
	v, err := e.Evaluate(context.Background(), Request{ToolName: "Edit"})
	require.NoError(t, err)
	assert.Equal(t, VerdictAllow, v.Kind)
}

type stubHandler struct {
	verdict HandlerVerdict
	err     error
}

func (s stubHandler) Ask(context.Context, Request) (HandlerVerdict, error) {
	return s.verdict, s.err
}

func TestHandlerAlwaysAllowRecordsSessionMemory(t *testing.T) {
	mem := sessionmemory.NewInProcess()
	h := stubHandler{verdict: HandlerVerdict{Kind: HandlerAlwaysAllow}}
	e := NewEvaluator(WithSessionMemory(mem), WithHandler(h))

	req := Request{ToolName: "Bash", ArgumentsJSON: []byte(`{"command":"ls"}`)}
	v, err := e.Evaluate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, VerdictAllow, v.Kind)

	shape := sessionmemory.ArgsShape(req.ArgumentsJSON)
	d, ok, err := mem.Lookup(context.Background(), "Bash", shape)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sessionmemory.AlwaysAllow, d)
}

func TestDefaultActionIsAskWhenUnconfigured(t *testing.T) {
	e := NewEvaluator()
	v, err := e.Evaluate(context.Background(), Request{ToolName: "Unknown"})
	require.NoError(t, err)
	assert.Equal(t, VerdictAsk, v.Kind)
}

// TestFinalDenyPrecedenceProperty validates spec.md §8: whenever a
// deny-final rule matches a request, no number of allow or override rules
// registered for the same pattern, in any order, can change the verdict
// away from deny.
func TestFinalDenyPrecedenceProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("deny-final always wins regardless of surrounding allow/override rules", prop.ForAll(
		func(extraAllows int, finalFirst bool, sub string) bool {
			e := NewEvaluator()
			finalRule := mustRuleNoT(FinalDeny, fmt.Sprintf("Bash(sudo %s:*)", sub))
			overrideRule := mustRuleNoT(Override, fmt.Sprintf("Bash(sudo %s:*)", sub))

			if finalFirst {
				e.AddRule(finalRule)
			}
			for i := 0; i < extraAllows; i++ {
				e.AddRule(mustRuleNoT(Allow, "Bash"))
			}
			e.AddRule(overrideRule)
			if !finalFirst {
				e.AddRule(finalRule)
			}

			v, err := e.Evaluate(context.Background(), Request{
				ToolName:      "Bash",
				ArgumentsJSON: []byte(fmt.Sprintf(`{"command":"sudo %s reboot"}`, sub)),
			})
			return err == nil && v.Kind == VerdictDeny
		},
		gen.IntRange(0, 5),
		gen.Bool(),
		gen.OneConstOf("apt", "yum", "systemctl"),
	))

	properties.TestingRun(t)
}

func mustRuleNoT(kind Kind, raw string) Rule {
	r, err := NewRule(kind, raw, "")
	if err != nil {
		panic(err)
	}
	return r
}
