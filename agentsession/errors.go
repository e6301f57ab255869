package agentsession

import "errors"

var (
	// ErrCancelled is returned to a caller whose send was removed from the
	// wait-queue before its turn began. A caller cancelled after its turn was
	// dequeued receives its context's error (ctx.Err()) instead.
	ErrCancelled = errors.New("agentsession: cancelled")
	// ErrSessionClosed indicates the manager has been closed and no longer
	// accepts new sends.
	ErrSessionClosed = errors.New("agentsession: session closed")
)
