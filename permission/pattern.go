// Package permission implements the pattern-based allow/deny/ask rule
// evaluator that gates tool execution: rule bins, a strictly ordered
// evaluation protocol, and session-memory of prior interactive decisions.
package permission

import (
	"fmt"
	"strings"
)

// Pattern is a parsed permission pattern: a tool-name matcher plus an
// optional argument pattern carried in parentheses, e.g. "Bash(rm:*)".
type Pattern struct {
	Raw           string
	ToolName      string
	ArgPattern    string
	HasArgPattern bool
}

// ParsePattern parses a raw pattern string such as "Bash", "Read*",
// "A|B", or "Bash(rm:*)".
func ParsePattern(raw string) (Pattern, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Pattern{}, fmt.Errorf("permission: empty pattern")
	}
	if idx := strings.IndexByte(trimmed, '('); idx >= 0 {
		if !strings.HasSuffix(trimmed, ")") {
			return Pattern{}, fmt.Errorf("permission: malformed pattern %q: unterminated argument pattern", raw)
		}
		return Pattern{
			Raw:           trimmed,
			ToolName:      trimmed[:idx],
			ArgPattern:    trimmed[idx+1 : len(trimmed)-1],
			HasArgPattern: true,
		}, nil
	}
	return Pattern{Raw: trimmed, ToolName: trimmed}, nil
}

// MustParsePattern parses raw and panics on error. Intended for
// compile-time-known patterns (tests, static rule tables).
func MustParsePattern(raw string) Pattern {
	p, err := ParsePattern(raw)
	if err != nil {
		panic(err)
	}
	return p
}
