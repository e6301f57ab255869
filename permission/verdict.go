package permission

import "encoding/json"

// VerdictKind enumerates the terminal outcomes of an evaluation.
type VerdictKind string

const (
	VerdictAllow         VerdictKind = "allow"
	VerdictAllowModified VerdictKind = "allow-with-modified-arguments"
	VerdictAsk           VerdictKind = "ask"
	VerdictDeny          VerdictKind = "deny"
)

// Verdict is the result of evaluating a tool invocation request.
type Verdict struct {
	Kind      VerdictKind
	Arguments json.RawMessage // set when Kind == VerdictAllowModified
	Reason    string          // set when Kind == VerdictDeny
}

// AllowVerdict builds a plain allow.
func AllowVerdict() Verdict { return Verdict{Kind: VerdictAllow} }

// AllowModifiedVerdict builds an allow carrying replacement arguments.
func AllowModifiedVerdict(args json.RawMessage) Verdict {
	return Verdict{Kind: VerdictAllowModified, Arguments: args}
}

// AskVerdict builds an ask (approval-required) verdict.
func AskVerdict() Verdict { return Verdict{Kind: VerdictAsk} }

// DenyVerdict builds a deny carrying reason.
func DenyVerdict(reason string) Verdict { return Verdict{Kind: VerdictDeny, Reason: reason} }
