package middleware

import "errors"

// ErrorKind categorizes a pipeline-level failure (spec §7): permission
// errors from the evaluator, pipeline errors from the chain itself, and
// execution errors surfaced by the inner tool invocation.
type ErrorKind string

const (
	DeniedByRule     ErrorKind = "denied-by-rule"
	DeniedByHandler  ErrorKind = "denied-by-handler"
	DeniedByHook     ErrorKind = "denied-by-hook"
	DeniedByMode     ErrorKind = "denied-by-mode"
	ApprovalRequired ErrorKind = "approval-required"

	ArgumentParseFailed      ErrorKind = "argument-parse-failed"
	MiddlewareShortCircuited ErrorKind = "middleware-short-circuited"

	ToolNotFound     ErrorKind = "tool-not-found"
	InvalidArguments ErrorKind = "invalid-arguments"
)

// Recoverable reports whether a caller may re-issue the same request after
// satisfying the condition the error describes. approval-required is the
// only recoverable kind; every deny-class and pipeline error is not.
func (k ErrorKind) Recoverable() bool {
	return k == ApprovalRequired
}

// PipelineError is a structured pipeline failure carrying its category and,
// where applicable, the underlying cause.
type PipelineError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *PipelineError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *PipelineError) Unwrap() error { return e.Cause }

func newError(kind ErrorKind, msg string, cause error) *PipelineError {
	return &PipelineError{Kind: kind, Message: msg, Cause: cause}
}

// fallbackSignal is the internal fallback-requested signal (spec §7).
// Pipeline.Handle returns it like any other chain error; the type-erased
// outer wrapper (Invoke) catches it and substitutes Value for the tool's
// output, so it never surfaces to callers of Invoke.
type fallbackSignal struct {
	Value string
}

func (f *fallbackSignal) Error() string { return "fallback-requested" }

// RequestFallback returns an error that an error-hook may return to signal
// that output should be used as the tool's output instead of failing the
// invocation.
func RequestFallback(output string) error { return &fallbackSignal{Value: output} }

func asFallback(err error) (*fallbackSignal, bool) {
	var f *fallbackSignal
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
