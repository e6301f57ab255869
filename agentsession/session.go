// Package agentsession implements the interactive session manager
// (spec §4.7): a FIFO queue of user messages processed one turn at a
// time, with cancellation that never consumes a processing slot, a
// steering buffer drained atomically at turn start, and session
// replacement that never disturbs an in-progress turn.
package agentsession

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stepforge/agentcore/agentsession/snapshot"
	"github.com/stepforge/agentcore/ctxkey"
)

// TranscriptEntry is a single exchange recorded during a turn.
type TranscriptEntry = snapshot.TranscriptEntry

// ToolCallRecord is one entry of the tool-call list a turn's Response
// reports, emitted by the middleware pipeline while the turn was in
// progress (spec §4.7's "tool-calls" field).
type ToolCallRecord struct {
	ToolUseID     string
	ToolName      string
	ArgumentsJSON []byte
	Output        string
	Success       bool
	Err           error
	Duration      time.Duration
}

// BackingResponse is what a Backing's Respond returns for a single turn.
type BackingResponse struct {
	Content    string
	RawContent string
	Entries    []TranscriptEntry
	ToolCalls  []ToolCallRecord
}

// Backing is the LLM-session protocol the manager drives (spec §6):
// respond(prompt) -> {content, entries}. A streaming variant is out of
// scope for the manager itself; callers needing streaming wrap Backing
// with their own adapter.
type Backing interface {
	Respond(ctx context.Context, prompt string) (BackingResponse, error)
}

// Response is a successful turn's result (spec §4.7).
type Response struct {
	Content           string
	RawContent        string
	TranscriptEntries []TranscriptEntry
	ToolCalls         []ToolCallRecord
	Duration          time.Duration
}

// SessionIDKey and TurnIDKey expose the identifiers of the session driving
// the current turn and of the turn itself, to any code reachable from a
// Backing's Respond call (tools, middleware, hooks).
var (
	SessionIDKey = ctxkey.NewKey("")
	TurnIDKey    = ctxkey.NewKey("")
)

type waiter struct {
	content string
	done    chan sendOutcome
}

type sendOutcome struct {
	resp Response
	err  error
}

// Manager implements the interactive session manager's state machine.
// State (busy flag, wait-queue, steering buffer, backing reference) is
// guarded by a single mutex covering all mutations and queue operations,
// per spec §5.
type Manager struct {
	mu        sync.Mutex
	sessionID string
	backing   Backing
	busy      bool
	closed    bool
	queue     []*waiter
	steering  []string
}

// Option configures a Manager at construction time.
type Option func(*Manager)

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) Option {
	return func(m *Manager) { m.sessionID = id }
}

// NewManager constructs a Manager starting idle, driven by backing.
func NewManager(backing Backing, opts ...Option) *Manager {
	m := &Manager{backing: backing, sessionID: uuid.NewString()}
	for _, o := range opts {
		o(m)
	}
	return m
}

// PendingCount reports how many sends are currently waiting on the queue,
// for diagnostics and tests. It does not include the turn in progress.
func (m *Manager) PendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// SessionID returns the manager's session identifier.
func (m *Manager) SessionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionID
}

// Steer appends fragment to the steering buffer. It is prepended to user
// content the next time a turn begins; fragments added while a drain is
// already in progress cannot race into the turn currently starting — they
// remain for the one after.
func (m *Manager) Steer(fragment string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.steering = append(m.steering, fragment)
}

// ReplaceSession installs newBacking for every future turn. The current
// turn, if any, continues using the backing reference it captured at the
// moment its own processing began.
func (m *Manager) ReplaceSession(newBacking Backing) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.backing = newBacking
}

// Close marks the session closed: every subsequent Send call returns
// ErrSessionClosed without enqueuing. A turn already in progress, and any
// waiters already queued at the time of Close, run to completion normally.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}

// Send drives one turn of the conversation with content. If the session is
// idle, the calling goroutine becomes the owning task for this turn (and
// for every turn subsequently dequeued before the session goes idle
// again). If a turn is already in progress, Send suspends on the
// wait-queue until it is this call's turn, or until ctx is cancelled.
//
// A caller cancelled before its turn begins is removed from the queue
// without consuming the processing slot and returns ErrCancelled. A caller
// cancelled after its turn has begun does not abort that turn — it
// continues to completion on the owning task — but Send still returns
// immediately with ctx.Err(), surfacing the cancellation to this caller.
func (m *Manager) Send(ctx context.Context, content string) (Response, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return Response{}, ErrSessionClosed
	}
	if !m.busy {
		m.busy = true
		m.mu.Unlock()
		return m.runLoop(ctx, content)
	}
	w := &waiter{content: content, done: make(chan sendOutcome, 1)}
	m.queue = append(m.queue, w)
	m.mu.Unlock()

	select {
	case out := <-w.done:
		return out.resp, out.err
	case <-ctx.Done():
		m.mu.Lock()
		removed := m.dequeueWaiter(w)
		m.mu.Unlock()
		if removed {
			return Response{}, ErrCancelled
		}
		return Response{}, ctx.Err()
	}
}

func (m *Manager) dequeueWaiter(w *waiter) bool {
	for i, q := range m.queue {
		if q == w {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			return true
		}
	}
	return false
}

// runLoop processes firstContent as the current turn, then keeps draining
// the wait-queue — delivering each dequeued waiter's own outcome over its
// channel — until the queue is empty, at which point it returns the
// session to idle. The entire loop runs on the context of the goroutine
// that found the session idle; queued turns do not use their own caller's
// context, matching "the turn completes on the owning task".
func (m *Manager) runLoop(ctx context.Context, firstContent string) (Response, error) {
	resp, err := m.runTurn(ctx, firstContent)
	for {
		m.mu.Lock()
		if len(m.queue) == 0 {
			m.busy = false
			m.mu.Unlock()
			break
		}
		w := m.queue[0]
		m.queue = m.queue[1:]
		m.mu.Unlock()

		wResp, wErr := m.runTurn(ctx, w.content)
		w.done <- sendOutcome{resp: wResp, err: wErr}
	}
	return resp, err
}

// runTurn drains the steering buffer and captures the backing reference
// atomically, then executes content (with any drained steering prepended)
// against that captured backing.
func (m *Manager) runTurn(ctx context.Context, content string) (Response, error) {
	m.mu.Lock()
	steer := m.steering
	m.steering = nil
	backing := m.backing
	m.mu.Unlock()

	full := content
	if len(steer) > 0 {
		full = joinSteering(steer) + content
	}

	turnID := uuid.NewString()
	ctx = SessionIDKey.With(ctx, m.sessionID)
	ctx = TurnIDKey.With(ctx, turnID)

	start := time.Now()
	out, err := backing.Respond(ctx, full)
	dur := time.Since(start)
	if err != nil {
		return Response{}, err
	}
	return Response{
		Content:           out.Content,
		RawContent:        out.RawContent,
		TranscriptEntries: out.Entries,
		ToolCalls:         out.ToolCalls,
		Duration:          dur,
	}, nil
}

func joinSteering(fragments []string) string {
	total := ""
	for _, f := range fragments {
		total += f
	}
	return total
}
