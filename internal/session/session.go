// Package session owns server-side session state for the agent: the
// session record, the store contract, and the memory and Redis store
// implementations. A session is live iff its expiry is in the future;
// every read path reports an expired record as absent regardless of
// whether it has been physically deleted.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session is a single authenticated session. Token is the opaque value
// carried in the SMSESSION cookie; ID is a stable identifier used for
// logging and never leaves the server.
type Session struct {
	ID        uuid.UUID `json:"id"`
	Token     string    `json:"token"`
	User      string    `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// New creates a session for user with a fresh unguessable token expiring
// ttl from now.
func New(user string, ttl time.Duration) (Session, error) {
	token, err := generateToken()
	if err != nil {
		return Session{}, errors.Join(ErrTokenGeneration, err)
	}

	now := time.Now()
	return Session{
		ID:        uuid.New(),
		Token:     token,
		User:      user,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}, nil
}

// IsExpired reports whether the session is no longer live.
func (s Session) IsExpired() bool {
	return !s.ExpiresAt.After(time.Now())
}

// generateToken creates a cryptographically secure random token using
// 32 bytes (256 bits) encoded as base64 URL-safe string without padding.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
