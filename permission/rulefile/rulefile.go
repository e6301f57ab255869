// Package rulefile loads permission rule documents from JSON or YAML and
// merges multiple documents with append-with-deduplication semantics.
package rulefile

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/stepforge/agentcore/permission"
)

// DefaultMode mirrors permission.Mode's wire representation in rule files.
type DefaultMode string

const (
	ModeDefault     DefaultMode = "default"
	ModeAcceptEdits DefaultMode = "acceptEdits"
	ModeBypass      DefaultMode = "bypassPermissions"
	ModePlan        DefaultMode = "plan"
)

// ToolLevel is a named permission level a tool can be pinned to.
type ToolLevel string

// RuleFile is the on-disk shape: {"permissions": {...}}.
type RuleFile struct {
	Permissions RuleSet `json:"permissions" yaml:"permissions"`
}

// RuleSet is the body of a permissions document.
type RuleSet struct {
	DefaultMode DefaultMode          `json:"defaultMode,omitempty" yaml:"defaultMode,omitempty"`
	Allow       []string             `json:"allow,omitempty" yaml:"allow,omitempty"`
	Deny        []string             `json:"deny,omitempty" yaml:"deny,omitempty"`
	Ask         []string             `json:"ask,omitempty" yaml:"ask,omitempty"`
	FinalDeny   []string             `json:"finalDeny,omitempty" yaml:"finalDeny,omitempty"`
	ToolLevels  map[string]ToolLevel `json:"toolLevels,omitempty" yaml:"toolLevels,omitempty"`
	MaxLevel    ToolLevel            `json:"maxLevel,omitempty" yaml:"maxLevel,omitempty"`
}

// LoadJSON parses a JSON rule file document.
func LoadJSON(data []byte) (RuleFile, error) {
	var rf RuleFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return RuleFile{}, fmt.Errorf("rulefile: parse json: %w", err)
	}
	return rf, nil
}

// LoadYAML parses a YAML rule file document.
func LoadYAML(data []byte) (RuleFile, error) {
	var rf RuleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return RuleFile{}, fmt.Errorf("rulefile: parse yaml: %w", err)
	}
	return rf, nil
}

// Merge combines files in order: list-valued fields are appended with
// deduplication; scalar fields (defaultMode, maxLevel) are overwritten by
// each later file that sets them, and toolLevels entries are merged key by
// key, a later file's entry replacing an earlier one for the same tool.
func Merge(files ...RuleFile) RuleFile {
	var out RuleFile
	for _, f := range files {
		out.Permissions = mergeSets(out.Permissions, f.Permissions)
	}
	return out
}

func mergeSets(base, next RuleSet) RuleSet {
	base.Allow = dedupAppend(base.Allow, next.Allow)
	base.Deny = dedupAppend(base.Deny, next.Deny)
	base.Ask = dedupAppend(base.Ask, next.Ask)
	base.FinalDeny = dedupAppend(base.FinalDeny, next.FinalDeny)
	if next.DefaultMode != "" {
		base.DefaultMode = next.DefaultMode
	}
	if next.MaxLevel != "" {
		base.MaxLevel = next.MaxLevel
	}
	for k, v := range next.ToolLevels {
		if base.ToolLevels == nil {
			base.ToolLevels = make(map[string]ToolLevel)
		}
		base.ToolLevels[k] = v
	}
	return base
}

func dedupAppend(base, next []string) []string {
	seen := make(map[string]bool, len(base))
	for _, v := range base {
		seen[v] = true
	}
	for _, v := range next {
		if !seen[v] {
			seen[v] = true
			base = append(base, v)
		}
	}
	return base
}

// Apply loads rf's patterns into evaluator, registering each bin's
// patterns with no reason text.
func Apply(evaluator *permission.Evaluator, rf RuleFile) error {
	add := func(kind permission.Kind, patterns []string) error {
		for _, raw := range patterns {
			rule, err := permission.NewRule(kind, raw, "")
			if err != nil {
				return err
			}
			evaluator.AddRule(rule)
		}
		return nil
	}
	if err := add(permission.FinalDeny, rf.Permissions.FinalDeny); err != nil {
		return err
	}
	if err := add(permission.Deny, rf.Permissions.Deny); err != nil {
		return err
	}
	if err := add(permission.Ask, rf.Permissions.Ask); err != nil {
		return err
	}
	if err := add(permission.Allow, rf.Permissions.Allow); err != nil {
		return err
	}
	return nil
}

// ModeOf translates the rule file's wire-format mode into permission.Mode.
func ModeOf(rf RuleFile) permission.Mode {
	switch rf.Permissions.DefaultMode {
	case ModeAcceptEdits:
		return permission.ModeAcceptEdits
	case ModeBypass:
		return permission.ModeBypass
	case ModePlan:
		return permission.ModePlan
	default:
		return permission.ModeDefault
	}
}
