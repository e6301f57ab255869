package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePatternBareToolName(t *testing.T) {
	p, err := ParsePattern("Bash")
	require.NoError(t, err)
	assert.Equal(t, "Bash", p.ToolName)
	assert.False(t, p.HasArgPattern)
}

func TestParsePatternWithArgPattern(t *testing.T) {
	p, err := ParsePattern("Bash(rm:*)")
	require.NoError(t, err)
	assert.Equal(t, "Bash", p.ToolName)
	assert.True(t, p.HasArgPattern)
	assert.Equal(t, "rm:*", p.ArgPattern)
}

func TestParsePatternRejectsUnterminated(t *testing.T) {
	_, err := ParsePattern("Bash(rm:*")
	assert.Error(t, err)
}

func TestParsePatternRejectsEmpty(t *testing.T) {
	_, err := ParsePattern("   ")
	assert.Error(t, err)
}
