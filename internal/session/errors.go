package session

import "errors"

var (
	// ErrNotFound is returned when a token maps to no live session,
	// whether it never existed or has already expired.
	ErrNotFound = errors.New("session not found")
	// ErrTokenGeneration is returned when token generation fails.
	ErrTokenGeneration = errors.New("failed to generate session token")
	// ErrMissingToken is returned when storing a session without a token.
	ErrMissingToken = errors.New("session token is required")
)
