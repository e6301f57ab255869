package rulefile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepforge/agentcore/permission"
)

const jsonDoc = `{
	"permissions": {
		"defaultMode": "acceptEdits",
		"allow": ["Bash", "Read*"],
		"deny": ["Bash(rm:*)"],
		"finalDeny": ["Bash(sudo:*)"]
	}
}`

const yamlDoc = `
permissions:
  defaultMode: plan
  allow:
    - "Write"
  deny:
    - "Bash(rm:*)"
`

func TestLoadJSON(t *testing.T) {
	rf, err := LoadJSON([]byte(jsonDoc))
	require.NoError(t, err)
	assert.Equal(t, ModeAcceptEdits, rf.Permissions.DefaultMode)
	assert.Equal(t, []string{"Bash", "Read*"}, rf.Permissions.Allow)
}

func TestLoadYAML(t *testing.T) {
	rf, err := LoadYAML([]byte(yamlDoc))
	require.NoError(t, err)
	assert.Equal(t, ModePlan, rf.Permissions.DefaultMode)
	assert.Equal(t, []string{"Write"}, rf.Permissions.Allow)
}

func TestMergeAppendsWithDeduplicationAndLaterModeWins(t *testing.T) {
	a, err := LoadJSON([]byte(jsonDoc))
	require.NoError(t, err)
	b, err := LoadYAML([]byte(yamlDoc))
	require.NoError(t, err)

	merged := Merge(a, b)
	assert.Equal(t, ModePlan, merged.Permissions.DefaultMode)
	assert.ElementsMatch(t, []string{"Bash", "Read*", "Write"}, merged.Permissions.Allow)
	assert.Equal(t, []string{"Bash(rm:*)"}, merged.Permissions.Deny)
}

func TestApplyLoadsRulesIntoEvaluator(t *testing.T) {
	rf, err := LoadJSON([]byte(jsonDoc))
	require.NoError(t, err)

	e := permission.NewEvaluator(permission.WithMode(ModeOf(rf)))
	require.NoError(t, Apply(e, rf))

	v, err := e.Evaluate(context.Background(), permission.Request{
		ToolName:      "Bash",
		ArgumentsJSON: []byte(`{"command":"sudo reboot"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, permission.VerdictDeny, v.Kind)
}
