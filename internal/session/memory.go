package session

import (
	"context"
	"hash/fnv"
	"sync"
	"time"
)

const memoryShards = 32

// MemoryStore is an in-process Store backed by a sharded map. Each shard
// carries its own RWMutex, so same-token operations serialize on their
// shard while tokens hashed to other shards proceed concurrently.
//
// Expiry is lazy: Get and Renew treat an expired record as absent but
// leave it in place. Run DeleteExpired periodically to bound memory
// growth under long uptime.
type MemoryStore struct {
	shards [memoryShards]memoryShard
}

type memoryShard struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore creates an empty memory store.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{}
	for i := range s.shards {
		s.shards[i].sessions = make(map[string]Session)
	}
	return s
}

func (s *MemoryStore) shard(token string) *memoryShard {
	h := fnv.New32a()
	h.Write([]byte(token))
	return &s.shards[h.Sum32()%memoryShards]
}

// Get returns the live session for token, or ErrNotFound.
func (s *MemoryStore) Get(_ context.Context, token string) (Session, error) {
	shard := s.shard(token)
	shard.mu.RLock()
	defer shard.mu.RUnlock()

	sess, ok := shard.sessions[token]
	if !ok || sess.IsExpired() {
		return Session{}, ErrNotFound
	}
	return sess, nil
}

// Put stores sess under its token, replacing any previous record.
func (s *MemoryStore) Put(_ context.Context, sess Session) error {
	if sess.Token == "" {
		return ErrMissingToken
	}

	shard := s.shard(sess.Token)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	shard.sessions[sess.Token] = sess
	return nil
}

// Delete removes the record for token. Missing tokens are a no-op.
func (s *MemoryStore) Delete(_ context.Context, token string) error {
	shard := s.shard(token)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	delete(shard.sessions, token)
	return nil
}

// Renew extends the expiry of a live session under the shard write lock,
// so a racing renewal or deletion for the same token resolves to one
// deterministic final state.
func (s *MemoryStore) Renew(_ context.Context, token string, expiresAt time.Time) (Session, error) {
	shard := s.shard(token)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	sess, ok := shard.sessions[token]
	if !ok || sess.IsExpired() {
		return Session{}, ErrNotFound
	}

	sess.ExpiresAt = expiresAt
	shard.sessions[token] = sess
	return sess, nil
}

// DeleteExpired removes every expired record and returns the count.
func (s *MemoryStore) DeleteExpired(_ context.Context) (int, error) {
	deleted := 0
	for i := range s.shards {
		shard := &s.shards[i]
		shard.mu.Lock()
		for token, sess := range shard.sessions {
			if sess.IsExpired() {
				delete(shard.sessions, token)
				deleted++
			}
		}
		shard.mu.Unlock()
	}
	return deleted, nil
}
