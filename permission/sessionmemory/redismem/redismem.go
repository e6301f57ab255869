// Package redismem persists session-memory permission decisions in Redis so
// they survive process restarts and are shared across runtime instances
// serving the same session.
package redismem

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/stepforge/agentcore/permission/sessionmemory"
)

// Store is a Redis-backed sessionmemory.Store. Keys are namespaced under
// prefix so multiple sessions can share one Redis database.
type Store struct {
	rdb    *redis.Client
	prefix string
}

// New constructs a Store scoped to the given key prefix (typically the
// session id).
func New(rdb *redis.Client, prefix string) *Store {
	return &Store{rdb: rdb, prefix: prefix}
}

func (s *Store) key(toolName, argsShape string) string {
	return fmt.Sprintf("%s:permission:%s:%s", s.prefix, toolName, argsShape)
}

// Lookup fetches a previously remembered decision.
func (s *Store) Lookup(ctx context.Context, toolName, argsShape string) (sessionmemory.Decision, bool, error) {
	v, err := s.rdb.Get(ctx, s.key(toolName, argsShape)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redismem: lookup: %w", err)
	}
	return sessionmemory.Decision(v), true, nil
}

// Remember persists decision for the (toolName, argsShape) key, with no
// expiration: session memory lives for the lifetime of the session's key
// prefix, which the caller is responsible for evicting on session end.
func (s *Store) Remember(ctx context.Context, toolName, argsShape string, decision sessionmemory.Decision) error {
	if err := s.rdb.Set(ctx, s.key(toolName, argsShape), string(decision), 0).Err(); err != nil {
		return fmt.Errorf("redismem: remember: %w", err)
	}
	return nil
}

var _ sessionmemory.Store = (*Store)(nil)
