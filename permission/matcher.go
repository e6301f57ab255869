package permission

import (
	"encoding/json"
	"regexp"
	"strings"
	"sync"
)

// recognized field names, in priority order where order matters.
var (
	pathFields = []string{"path", "file_path", "filePath", "basePath", "directory"}
	cmdFields  = []string{"command", "executable", "argsJson"}
	separators = " /\t-\x00"
)

// Matcher resolves a Pattern against a (tool-name, arguments-JSON) pair.
type Matcher struct {
	mu     sync.Mutex
	regexC map[string]*regexp.Regexp
}

// NewMatcher constructs a ready-to-use Matcher.
func NewMatcher() *Matcher {
	return &Matcher{regexC: make(map[string]*regexp.Regexp)}
}

// Matches reports whether pattern matches the given tool invocation.
func (m *Matcher) Matches(pattern Pattern, toolName string, argsJSON []byte) bool {
	if !m.matchToolName(pattern.ToolName, toolName) {
		return false
	}
	if !pattern.HasArgPattern {
		return true
	}
	return m.matchArgPattern(pattern.ArgPattern, argsJSON)
}

func (m *Matcher) matchToolName(pattern, name string) bool {
	switch {
	case pattern == "*":
		return true
	case strings.HasSuffix(pattern, "*") && !strings.Contains(pattern, "|"):
		return strings.HasPrefix(name, strings.TrimSuffix(pattern, "*"))
	case strings.Contains(pattern, "|"):
		re, err := m.compileAlternation(pattern)
		if err != nil {
			return false
		}
		return re.MatchString(name)
	default:
		return pattern == name
	}
}

func (m *Matcher) compileAlternation(pattern string) (*regexp.Regexp, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if re, ok := m.regexC[pattern]; ok {
		return re, nil
	}
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, err
	}
	m.regexC[pattern] = re
	return re, nil
}

func (m *Matcher) matchArgPattern(argPattern string, argsJSON []byte) bool {
	switch {
	case strings.HasPrefix(argPattern, "domain:"):
		return matchDomain(strings.TrimPrefix(argPattern, "domain:"), argsJSON)
	case isCommandPattern(argPattern):
		return matchCommandPrefix(argPattern, argsJSON)
	case strings.Contains(argPattern, "*"):
		return matchPathGlob(argPattern, argsJSON)
	default:
		return strings.Contains(string(argsJSON), argPattern)
	}
}

// isCommandPattern recognizes the "PREFIX:GLOB" shape: a literal ':'
// separating a command prefix from a glob over the remainder, e.g.
// "rm:*" or "rm:*.tmp". Distinguished from the "domain:" form, which is
// handled separately, and from plain path globs, which contain no ':'.
func isCommandPattern(argPattern string) bool {
	idx := strings.IndexByte(argPattern, ':')
	return idx > 0 && !strings.HasPrefix(argPattern, "domain:")
}

func matchDomain(host string, argsJSON []byte) bool {
	var doc map[string]any
	if err := json.Unmarshal(argsJSON, &doc); err != nil {
		return false
	}
	if url, ok := doc["url"].(string); ok {
		if strings.Contains(url, host) {
			return true
		}
	}
	for k, v := range doc {
		if k == "url" {
			continue
		}
		if s, ok := v.(string); ok && strings.Contains(s, host) {
			return true
		}
	}
	return false
}

func matchCommandPrefix(argPattern string, argsJSON []byte) bool {
	idx := strings.IndexByte(argPattern, ':')
	prefix, globPart := argPattern[:idx], argPattern[idx+1:]

	cmd, ok := recognizedField(argsJSON, cmdFields)
	if !ok {
		return false
	}
	if !strings.HasPrefix(cmd, prefix) {
		return false
	}
	rest := cmd[len(prefix):]
	if rest == "" {
		return false
	}
	if !strings.ContainsRune(separators, rune(rest[0])) {
		return false
	}
	rest = rest[1:]
	if globPart == "*" {
		return true
	}
	return simpleGlobMatch(globPart, rest)
}

func matchPathGlob(argPattern string, argsJSON []byte) bool {
	var doc map[string]any
	if err := json.Unmarshal(argsJSON, &doc); err != nil {
		return false
	}
	for _, field := range pathFields {
		v, ok := doc[field].(string)
		if !ok {
			continue
		}
		if pathGlobMatch(argPattern, normalizePath(v)) {
			return true
		}
	}
	return false
}

func recognizedField(argsJSON []byte, fields []string) (string, bool) {
	var doc map[string]any
	if err := json.Unmarshal(argsJSON, &doc); err != nil {
		return "", false
	}
	for _, field := range fields {
		if s, ok := doc[field].(string); ok {
			return s, true
		}
	}
	return "", false
}
