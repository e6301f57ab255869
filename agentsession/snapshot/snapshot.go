// Package snapshot implements the session persistence contract (spec §6):
// snapshot() returns {transcript, id}; restore(snapshot, backing) recreates
// a session without replaying tool calls. Store generalizes that pair so
// either the in-process or MongoDB-backed implementation can back an
// agentsession.Manager.
package snapshot

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates no snapshot is stored under the requested ID.
var ErrNotFound = errors.New("snapshot: not found")

// TranscriptEntry is one exchange recorded in a session's transcript.
type TranscriptEntry struct {
	Role    string
	Content string
}

// Snapshot is the serializable session state spec §6 describes.
type Snapshot struct {
	ID         string
	Transcript []TranscriptEntry
	UpdatedAt  time.Time
}

// Store persists and retrieves Snapshots by ID. Restoring a session from a
// Store never replays tool calls; it only reconstructs transcript state for
// a new backing to continue from.
type Store interface {
	Save(ctx context.Context, snap Snapshot) error
	Load(ctx context.Context, id string) (Snapshot, error)
}
