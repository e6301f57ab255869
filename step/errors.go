package step

import "errors"

// Composition error sentinels (spec §7 "Composition errors"). Wrap with
// fmt.Errorf("%w: ...") to attach call-specific detail while preserving
// errors.Is matchability.
var (
	// ErrGateBlocked indicates a Gate blocked the pipeline. The blocking
	// reason is attached via GateBlockedError.
	ErrGateBlocked = errors.New("step: gate blocked")

	// ErrLoopConditionNotMet indicates a Loop reached max-iterations without
	// its termination condition being satisfied.
	ErrLoopConditionNotMet = errors.New("step: loop condition not met")

	// ErrParallelAllFailed indicates every child of a Parallel failed.
	ErrParallelAllFailed = errors.New("step: parallel: all children failed")

	// ErrRaceAllFailed indicates every child of a Race failed.
	ErrRaceAllFailed = errors.New("step: race: all children failed")

	// ErrRaceTimeout indicates a Race's timeout elapsed before any child
	// succeeded.
	ErrRaceTimeout = errors.New("step: race: timeout")

	// ErrRetryExhausted indicates a Retry wrapper ran out of attempts.
	ErrRetryExhausted = errors.New("step: retry exhausted")

	// ErrTimeout indicates a Timeout wrapper's deadline elapsed.
	ErrTimeout = errors.New("step: timeout")
)

// GateBlockedError carries the reason a Gate blocked the pipeline.
type GateBlockedError struct {
	Reason string
}

func (e *GateBlockedError) Error() string { return "step: gate blocked: " + e.Reason }
func (e *GateBlockedError) Unwrap() error { return ErrGateBlocked }

// AggregateError carries the per-child errors of a failed Parallel or Race,
// in declaration order.
type AggregateError struct {
	sentinel error
	Errors   []error
}

func (e *AggregateError) Error() string {
	msg := e.sentinel.Error() + ":"
	for i, err := range e.Errors {
		if i > 0 {
			msg += ";"
		}
		msg += " " + err.Error()
	}
	return msg
}

func (e *AggregateError) Unwrap() error { return e.sentinel }
