// Package guardrail implements step-scoped declarative policy (spec §4.6):
// a guardrail attached to a step composes with ambient policy inherited
// from ancestor steps, then feeds the composed rule set into a
// permission.Evaluator for judgment. It reuses permission's Pattern and
// Matcher rather than re-implementing argument matching.
package guardrail

import (
	"github.com/stepforge/agentcore/middleware"
	"github.com/stepforge/agentcore/permission"
)

// SandboxConfig is an alias of middleware.SandboxConfig: the guardrail
// package installs the same configuration the tool middleware pipeline
// consumes, it does not define a parallel shape.
type SandboxConfig = middleware.SandboxConfig

// Kind identifies a guardrail rule's effect, mirroring permission.Kind plus
// the ask-user and sandbox kinds unique to step-scoped policy.
type Kind string

const (
	Allow     Kind = "allow"
	Deny      Kind = "deny"
	DenyFinal Kind = "deny-final"
	Override  Kind = "override"
	AskUser   Kind = "ask-user"
	Sandbox   Kind = "sandbox"
)

// Rule is one entry in a Guardrail. Config is only meaningful for Sandbox
// rules.
type Rule struct {
	Kind    Kind
	Pattern permission.Pattern
	Config  SandboxConfig
}

// AllowRule builds an Allow rule matching raw (spec pattern grammar, e.g.
// "Bash", "Read*", "Fetch(domain:example.com)").
func AllowRule(raw string) Rule { return Rule{Kind: Allow, Pattern: permission.MustParsePattern(raw)} }

// DenyRule builds a Deny rule, overridable by a matching descendant Override.
func DenyRule(raw string) Rule { return Rule{Kind: Deny, Pattern: permission.MustParsePattern(raw)} }

// DenyFinalRule builds a DenyFinal rule. No descendant Override can remove it.
func DenyFinalRule(raw string) Rule {
	return Rule{Kind: DenyFinal, Pattern: permission.MustParsePattern(raw)}
}

// OverrideRule builds an Override rule removing a matching ancestor Deny
// (by pattern equality) from the effective set for this scope and its
// descendants.
func OverrideRule(raw string) Rule {
	return Rule{Kind: Override, Pattern: permission.MustParsePattern(raw)}
}

// AskUserRule builds an AskUser rule requiring interactive confirmation.
func AskUserRule(raw string) Rule {
	return Rule{Kind: AskUser, Pattern: permission.MustParsePattern(raw)}
}

// SandboxRule builds a Sandbox rule installing cfg for matching tools at
// this scope and nearer descendants, unless a nearer scope registers its
// own Sandbox rule.
func SandboxRule(raw string, cfg SandboxConfig) Rule {
	return Rule{Kind: Sandbox, Pattern: permission.MustParsePattern(raw), Config: cfg}
}
