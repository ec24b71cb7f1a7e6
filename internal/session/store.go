package session

import (
	"context"
	"time"
)

// Store is the persistence contract for sessions, keyed by token.
// Implementations must make operations on the same token linearizable
// while keeping operations on different tokens independent.
//
// Get and Renew report an expired record as ErrNotFound. Delete of a
// missing token is a no-op.
type Store interface {
	Get(ctx context.Context, token string) (Session, error)
	Put(ctx context.Context, sess Session) error
	Delete(ctx context.Context, token string) error
	// Renew atomically extends the expiry of a live session and returns
	// the renewed record.
	Renew(ctx context.Context, token string, expiresAt time.Time) (Session, error)
	// DeleteExpired removes expired records and returns how many it
	// deleted. Backends that expire eagerly may report zero.
	DeleteExpired(ctx context.Context) (int, error)
}
