package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fakeminder/fakeminder/pkg/keylock"
)

const redisKeyPrefix = "smsession:"

// RedisStore is a Store backed by Redis. Records are stored as JSON with
// a TTL matching the session expiry, so Redis expires them eagerly and
// Get never has to filter stale records itself.
//
// Redis has no compare-and-set on plain strings, so read-modify-write
// sequences (Renew) are serialized per token with an in-process keyed
// lock. That covers the single-agent deployment this store targets;
// multi-node session replication is out of scope.
type RedisStore struct {
	client *redis.Client
	locks  *keylock.KeyLock
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		locks:  keylock.New(keylock.DefaultStripes),
	}
}

func redisKey(token string) string {
	return redisKeyPrefix + token
}

// Get returns the live session for token, or ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, token string) (Session, error) {
	val, err := s.client.Get(ctx, redisKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("redis get session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return Session{}, fmt.Errorf("unmarshal session: %w", err)
	}

	// TTL and expiry are written together, but guard against clock skew
	// between the agent and the Redis server.
	if sess.IsExpired() {
		return Session{}, ErrNotFound
	}
	return sess, nil
}

// Put stores sess with a TTL running to its expiry.
func (s *RedisStore) Put(ctx context.Context, sess Session) error {
	if sess.Token == "" {
		return ErrMissingToken
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session for %q already expired", sess.User)
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := s.client.Set(ctx, redisKey(sess.Token), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

// Delete removes the record for token. Missing tokens are a no-op.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, redisKey(token)).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

// Renew extends the expiry of a live session. The per-token lock makes
// the get-then-set atomic with respect to other renewals and deletions
// for the same token.
func (s *RedisStore) Renew(ctx context.Context, token string, expiresAt time.Time) (Session, error) {
	s.locks.Lock(token)
	defer s.locks.Unlock(token)

	sess, err := s.Get(ctx, token)
	if err != nil {
		return Session{}, err
	}

	sess.ExpiresAt = expiresAt
	if err := s.Put(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// DeleteExpired is a no-op: Redis drops expired records itself.
func (s *RedisStore) DeleteExpired(context.Context) (int, error) {
	return 0, nil
}
