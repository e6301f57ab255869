// Package mongosnapshot implements snapshot.Store on top of MongoDB,
// grounded on the teacher's features/session/mongo/clients/mongo.Client
// construction pattern (Options struct with an injected *mongo.Client,
// database/collection names, and a per-operation timeout).
package mongosnapshot

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/stepforge/agentcore/agentsession/snapshot"
)

const (
	defaultCollection = "agent_session_snapshots"
	defaultTimeout    = 5 * time.Second
)

// Options configures the MongoDB-backed snapshot.Store.
type Options struct {
	Client     *mongo.Client
	Database   string
	Collection string
	Timeout    time.Duration
}

// Store implements snapshot.Store by delegating to a MongoDB collection.
type Store struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// New constructs a Store. Client and Database are required; Collection and
// Timeout default to defaultCollection and defaultTimeout.
func New(opts Options) (*Store, error) {
	if opts.Client == nil {
		return nil, errors.New("mongosnapshot: client is required")
	}
	if opts.Database == "" {
		return nil, errors.New("mongosnapshot: database name is required")
	}
	collectionName := opts.Collection
	if collectionName == "" {
		collectionName = defaultCollection
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	coll := opts.Client.Database(opts.Database).Collection(collectionName)
	return &Store{coll: coll, timeout: timeout}, nil
}

type entryDocument struct {
	Role    string `bson:"role"`
	Content string `bson:"content"`
}

type snapshotDocument struct {
	ID         string          `bson:"_id"`
	Transcript []entryDocument `bson:"transcript"`
	UpdatedAt  time.Time       `bson:"updated_at"`
}

// Save upserts snap under its ID.
func (s *Store) Save(ctx context.Context, snap snapshot.Snapshot) error {
	if snap.ID == "" {
		return errors.New("mongosnapshot: snapshot id is required")
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	doc := snapshotDocument{
		ID:         snap.ID,
		Transcript: toEntryDocuments(snap.Transcript),
		UpdatedAt:  time.Now().UTC(),
	}
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": snap.ID},
		bson.M{"$set": doc},
		options.UpdateOne().SetUpsert(true),
	)
	return err
}

// Load retrieves the snapshot stored under id, or snapshot.ErrNotFound.
func (s *Store) Load(ctx context.Context, id string) (snapshot.Snapshot, error) {
	if id == "" {
		return snapshot.Snapshot{}, errors.New("mongosnapshot: snapshot id is required")
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var doc snapshotDocument
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return snapshot.Snapshot{}, snapshot.ErrNotFound
		}
		return snapshot.Snapshot{}, err
	}
	return snapshot.Snapshot{
		ID:         doc.ID,
		Transcript: fromEntryDocuments(doc.Transcript),
		UpdatedAt:  doc.UpdatedAt,
	}, nil
}

func toEntryDocuments(entries []snapshot.TranscriptEntry) []entryDocument {
	docs := make([]entryDocument, len(entries))
	for i, e := range entries {
		docs[i] = entryDocument{Role: e.Role, Content: e.Content}
	}
	return docs
}

func fromEntryDocuments(docs []entryDocument) []snapshot.TranscriptEntry {
	entries := make([]snapshot.TranscriptEntry, len(docs))
	for i, d := range docs {
		entries[i] = snapshot.TranscriptEntry{Role: d.Role, Content: d.Content}
	}
	return entries
}

var _ snapshot.Store = (*Store)(nil)
