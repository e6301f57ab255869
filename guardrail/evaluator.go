package guardrail

import "github.com/stepforge/agentcore/permission"

// kindMap translates a guardrail Kind into the permission.Kind bin it
// feeds, for every kind the evaluator understands. AskUser and Sandbox are
// not permission bins: AskUser maps to permission.Ask, and Sandbox never
// reaches the evaluator (it is consumed via Sandbox()/middleware instead).
var kindMap = map[Kind]permission.Kind{
	Allow:     permission.Allow,
	Deny:      permission.Deny,
	DenyFinal: permission.FinalDeny,
	Override:  permission.Override,
	AskUser:   permission.Ask,
}

// ApplyTo registers every effective rule of g (allow, deny, denyFinal,
// override, askUser) into evaluator's matching bins. Sandbox rules are not
// applied here; read them via g.Sandbox() and install them with
// middleware.SandboxMiddleware instead.
func (g *Guardrail) ApplyTo(evaluator *permission.Evaluator) {
	if g == nil {
		return
	}
	for _, bucket := range [][]Rule{g.denyFinal, g.deny, g.askUser, g.allow, g.override} {
		for _, r := range bucket {
			kind, ok := kindMap[r.Kind]
			if !ok {
				continue
			}
			evaluator.AddRule(permission.Rule{Kind: kind, Pattern: r.Pattern})
		}
	}
}
