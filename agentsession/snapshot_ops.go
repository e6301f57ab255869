package agentsession

import (
	"context"
	"time"

	"github.com/stepforge/agentcore/agentsession/snapshot"
)

// Snapshot persists transcript under the manager's session ID via store,
// implementing spec §6's snapshot() -> {transcript, id}.
func (m *Manager) Snapshot(ctx context.Context, store snapshot.Store, transcript []TranscriptEntry) error {
	return store.Save(ctx, snapshot.Snapshot{
		ID:         m.SessionID(),
		Transcript: transcript,
		UpdatedAt:  time.Now().UTC(),
	})
}

// Restore loads the snapshot stored under id and constructs a new, idle
// Manager driven by backing, with the session ID taken from the snapshot.
// Restoring never replays tool calls; the returned transcript is for the
// caller to feed back to backing however it represents prior turns.
func Restore(ctx context.Context, store snapshot.Store, id string, backing Backing) (*Manager, []TranscriptEntry, error) {
	snap, err := store.Load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return NewManager(backing, WithSessionID(snap.ID)), snap.Transcript, nil
}
