package permission

// Kind identifies which rule bin a Rule belongs to.
type Kind string

const (
	FinalDeny Kind = "final-deny"
	Deny      Kind = "deny"
	Ask       Kind = "ask"
	Allow     Kind = "allow"
	Override  Kind = "override"
)

// Rule pairs a pattern with the bin it was registered into and an
// optional human-readable reason surfaced on deny.
type Rule struct {
	Kind    Kind
	Pattern Pattern
	Reason  string
}

// NewRule parses raw and constructs a Rule of the given kind.
func NewRule(kind Kind, raw, reason string) (Rule, error) {
	p, err := ParsePattern(raw)
	if err != nil {
		return Rule{}, err
	}
	return Rule{Kind: kind, Pattern: p, Reason: reason}, nil
}
