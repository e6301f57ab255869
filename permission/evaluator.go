package permission

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/stepforge/agentcore/permission/sessionmemory"
)

// Mode is the evaluator's ambient operating mode, consulted at step 6 of
// the evaluation protocol.
type Mode string

const (
	ModeDefault     Mode = "default"
	ModeAcceptEdits Mode = "accept-edits"
	ModeBypass      Mode = "bypass"
	ModePlan        Mode = "plan"
)

// PriorCall records one tool invocation earlier in the current turn, made
// available to delegate handlers for context-sensitive decisions.
type PriorCall struct {
	ToolName      string
	ArgumentsJSON json.RawMessage
}

// RequestContext carries session/turn identity and prior-call history.
type RequestContext struct {
	SessionID string
	TurnID    string
	History   []PriorCall
}

// Request is the input to Evaluate: the tool invocation under review.
type Request struct {
	ToolName      string
	ArgumentsJSON json.RawMessage
	Context       RequestContext
}

// HandlerVerdictKind enumerates what a delegate handler may decide.
type HandlerVerdictKind string

const (
	HandlerAllow         HandlerVerdictKind = "allow"
	HandlerAllowModified HandlerVerdictKind = "allow-with-modified-arguments"
	HandlerDeny          HandlerVerdictKind = "deny"
	HandlerAlwaysAllow   HandlerVerdictKind = "always-allow"
	HandlerBlock         HandlerVerdictKind = "block"
)

// HandlerVerdict is what a delegate (typically an interactive prompt)
// returns from Ask.
type HandlerVerdict struct {
	Kind              HandlerVerdictKind
	Reason            string
	ModifiedArguments json.RawMessage
}

// Handler is the optional step-7 delegate consulted when no rule bin,
// session memory, or mode default has resolved the request.
type Handler interface {
	Ask(ctx context.Context, req Request) (HandlerVerdict, error)
}

// ReadOnlyPredicate reports whether a tool is read-only, used by plan mode
// to decide which tools remain callable.
type ReadOnlyPredicate func(toolName string) bool

// Evaluator implements the strictly ordered permission protocol: final-deny,
// session memory, override, deny, ask, allow, mode default, delegate
// handler, and a configured default action.
type Evaluator struct {
	mu sync.Mutex

	finalDeny []Rule
	deny      []Rule
	ask       []Rule
	allow     []Rule
	override  []Rule

	matcher       *Matcher
	sessionMemory sessionmemory.Store
	mode          Mode
	readOnly      ReadOnlyPredicate
	handler       Handler
	defaultAction VerdictKind
}

// Option configures an Evaluator at construction time.
type Option func(*Evaluator)

// WithSessionMemory attaches a session-memory store for interactive-decision caching.
func WithSessionMemory(store sessionmemory.Store) Option {
	return func(e *Evaluator) { e.sessionMemory = store }
}

// WithMode sets the ambient mode consulted at evaluation step 6.
func WithMode(mode Mode) Option {
	return func(e *Evaluator) { e.mode = mode }
}

// WithReadOnlyPredicate sets the read-only classifier used by plan mode.
func WithReadOnlyPredicate(p ReadOnlyPredicate) Option {
	return func(e *Evaluator) { e.readOnly = p }
}

// WithHandler attaches the optional step-7 delegate.
func WithHandler(h Handler) Option {
	return func(e *Evaluator) { e.handler = h }
}

// WithDefaultAction sets the evaluator's step-8 fallback verdict kind
// (VerdictAllow, VerdictDeny, or VerdictAsk).
func WithDefaultAction(kind VerdictKind) Option {
	return func(e *Evaluator) { e.defaultAction = kind }
}

// NewEvaluator constructs an Evaluator with empty rule bins and the given options.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		matcher:       NewMatcher(),
		defaultAction: VerdictAsk,
		mode:          ModeDefault,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddRule registers rule into its bin (Override is its own bin, separate
// from the four named in §4.4).
func (e *Evaluator) AddRule(rule Rule) {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch rule.Kind {
	case FinalDeny:
		e.finalDeny = append(e.finalDeny, rule)
	case Deny:
		e.deny = append(e.deny, rule)
	case Ask:
		e.ask = append(e.ask, rule)
	case Allow:
		e.allow = append(e.allow, rule)
	case Override:
		e.override = append(e.override, rule)
	}
}

// Evaluate runs the strictly ordered evaluation protocol against req.
func (e *Evaluator) Evaluate(ctx context.Context, req Request) (Verdict, error) {
	e.mu.Lock()
	finalDeny := append([]Rule(nil), e.finalDeny...)
	deny := append([]Rule(nil), e.deny...)
	ask := append([]Rule(nil), e.ask...)
	allow := append([]Rule(nil), e.allow...)
	override := append([]Rule(nil), e.override...)
	mode := e.mode
	readOnly := e.readOnly
	handler := e.handler
	defaultAction := e.defaultAction
	e.mu.Unlock()

	// Step 1: final-deny bypasses everything and cannot be overridden.
	if r, ok := e.firstMatch(finalDeny, req); ok {
		return DenyVerdict(denyReason(r)), nil
	}

	shape := sessionmemory.ArgsShape(req.ArgumentsJSON)

	// Step 2: session memory.
	if e.sessionMemory != nil {
		if d, ok, err := e.sessionMemory.Lookup(ctx, req.ToolName, shape); err != nil {
			return Verdict{}, err
		} else if ok {
			switch d {
			case sessionmemory.AlwaysAllow:
				return AllowVerdict(), nil
			case sessionmemory.Blocked:
				return DenyVerdict("blocked by prior session decision"), nil
			}
		}
	}

	// Step 3: override suppresses step 4 entirely when matched.
	_, overridden := e.firstMatch(override, req)

	// Step 4: deny.
	if !overridden {
		if r, ok := e.firstMatch(deny, req); ok {
			return DenyVerdict(denyReason(r)), nil
		}
	}

	// The ask bin is matched between deny and allow: a more specific ask
	// rule takes priority over a broader allow, but never overrides deny.
	if _, ok := e.firstMatch(ask, req); ok {
		return AskVerdict(), nil
	}

	// Step 5: allow.
	if _, ok := e.firstMatch(allow, req); ok {
		return AllowVerdict(), nil
	}

	// Step 6: mode default.
	switch mode {
	case ModeAcceptEdits, ModeBypass:
		return AllowVerdict(), nil
	case ModePlan:
		if readOnly != nil && readOnly(req.ToolName) {
			return AllowVerdict(), nil
		}
		return DenyVerdict("plan mode permits only read-only tools"), nil
	}

	// Step 7: optional delegate handler.
	if handler != nil {
		hv, err := handler.Ask(ctx, req)
		if err != nil {
			return Verdict{}, err
		}
		switch hv.Kind {
		case HandlerAllow:
			return AllowVerdict(), nil
		case HandlerAllowModified:
			return AllowModifiedVerdict(hv.ModifiedArguments), nil
		case HandlerDeny:
			return DenyVerdict(hv.Reason), nil
		case HandlerAlwaysAllow:
			if e.sessionMemory != nil {
				if err := e.sessionMemory.Remember(ctx, req.ToolName, shape, sessionmemory.AlwaysAllow); err != nil {
					return Verdict{}, err
				}
			}
			return AllowVerdict(), nil
		case HandlerBlock:
			if e.sessionMemory != nil {
				if err := e.sessionMemory.Remember(ctx, req.ToolName, shape, sessionmemory.Blocked); err != nil {
					return Verdict{}, err
				}
			}
			return DenyVerdict(hv.Reason), nil
		}
	}

	// Step 8: evaluator-configured default action.
	switch defaultAction {
	case VerdictAllow:
		return AllowVerdict(), nil
	case VerdictDeny:
		return DenyVerdict("denied by default action"), nil
	default:
		return AskVerdict(), nil
	}
}

func (e *Evaluator) firstMatch(rules []Rule, req Request) (Rule, bool) {
	for _, r := range rules {
		if e.matcher.Matches(r.Pattern, req.ToolName, req.ArgumentsJSON) {
			return r, true
		}
	}
	return Rule{}, false
}

func denyReason(r Rule) string {
	if r.Reason != "" {
		return r.Reason
	}
	return "denied by rule: " + r.Pattern.Raw
}
