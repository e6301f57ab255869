package guardrail

// Guardrail is the effective policy in force at a single scope: the rules
// attached directly to a step, before composition with any ancestor.
type Guardrail struct {
	allow, deny, denyFinal, override, askUser []Rule
	sandbox                                   *Rule
}

// New builds a Guardrail from rules, attached directly to one step.
func New(rules ...Rule) *Guardrail {
	g := &Guardrail{}
	for _, r := range rules {
		g.add(r)
	}
	return g
}

func (g *Guardrail) add(r Rule) {
	switch r.Kind {
	case Allow:
		g.allow = append(g.allow, r)
	case Deny:
		g.deny = append(g.deny, r)
	case DenyFinal:
		g.denyFinal = append(g.denyFinal, r)
	case Override:
		g.override = append(g.override, r)
	case AskUser:
		g.askUser = append(g.askUser, r)
	case Sandbox:
		rc := r
		g.sandbox = &rc
	}
}

// Merge composes child's guardrail on top of parent's ambient policy
// (spec §4.6): child's rules are added to parent's; child's Override(p)
// removes a matching parent Deny(p) (by pattern equality) from the
// resulting set, but never removes a DenyFinal; child's Sandbox rule wins
// over parent's because child is the nearer scope, the last-registered
// Sandbox rule at a single scope having already won during New/add.
//
// Either argument may be nil, meaning "no guardrail at that scope".
func Merge(parent, child *Guardrail) *Guardrail {
	if parent == nil {
		return child
	}
	if child == nil {
		return parent
	}

	eff := &Guardrail{
		denyFinal: concat(parent.denyFinal, child.denyFinal),
		askUser:   concat(parent.askUser, child.askUser),
		allow:     concat(parent.allow, child.allow),
		override:  concat(parent.override, child.override),
		deny:      append(removeOverridden(parent.deny, child.override), child.deny...),
	}
	eff.sandbox = child.sandbox
	if eff.sandbox == nil {
		eff.sandbox = parent.sandbox
	}
	return eff
}

func concat(a, b []Rule) []Rule {
	out := make([]Rule, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

// removeOverridden drops any deny rule whose pattern exactly matches an
// override rule's pattern. DenyFinal is never passed through this
// function, so it is never subject to removal.
func removeOverridden(deny, override []Rule) []Rule {
	if len(override) == 0 {
		return append([]Rule(nil), deny...)
	}
	kept := make([]Rule, 0, len(deny))
	for _, d := range deny {
		overridden := false
		for _, o := range override {
			if o.Pattern.Raw == d.Pattern.Raw {
				overridden = true
				break
			}
		}
		if !overridden {
			kept = append(kept, d)
		}
	}
	return kept
}

// Sandbox returns the effective Sandbox rule's configuration, or the zero
// SandboxConfig and false if no scope in the chain registered one.
func (g *Guardrail) Sandbox() (SandboxConfig, bool) {
	if g == nil || g.sandbox == nil {
		return SandboxConfig{}, false
	}
	return g.sandbox.Config, true
}
