// Package account holds the configured user table and the one mutable
// piece of otherwise read-only configuration: the per-user failed logon
// counter. Counter mutation is serialized per user, never across users.
package account

import (
	"crypto/subtle"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/fakeminder/fakeminder/internal/config"
)

// Credential reference schemes. The credential is an opaque comparable
// value; the scheme prefix selects how it is compared. An unprefixed
// value is compared as plaintext.
const (
	schemePlain  = "plain:"
	schemeBcrypt = "bcrypt:"
)

// User is one configured account with its mutable attempt counter.
type User struct {
	Name        string
	AuthHeaders map[string]string

	credential string
	threshold  int

	mu       sync.Mutex
	attempts int
}

// VerifyPassword compares submitted against the user's credential
// reference. Plaintext references are compared in constant time.
func (u *User) VerifyPassword(submitted string) bool {
	switch {
	case strings.HasPrefix(u.credential, schemeBcrypt):
		hash := strings.TrimPrefix(u.credential, schemeBcrypt)
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(submitted)) == nil
	case strings.HasPrefix(u.credential, schemePlain):
		return constantTimeEqual(strings.TrimPrefix(u.credential, schemePlain), submitted)
	default:
		return constantTimeEqual(u.credential, submitted)
	}
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// Attempts returns the current failed logon count.
func (u *User) Attempts() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.attempts
}

// RecordFailure increments the failed logon counter and returns the new
// count.
func (u *User) RecordFailure() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.attempts++
	return u.attempts
}

// ResetAttempts clears the failed logon counter after a successful
// logon.
func (u *User) ResetAttempts() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.attempts = 0
}

// Locked reports whether the account has reached its lockout threshold.
// A non-positive threshold disables lockout for the account.
func (u *User) Locked() bool {
	if u.threshold <= 0 {
		return false
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.attempts >= u.threshold
}

// Directory is the read-only user table built from site configuration.
type Directory struct {
	users map[string]*User
}

// NewDirectory builds the user table. Users without an explicit
// lockout_threshold inherit siteminder.max_login_attempts.
func NewDirectory(site *config.Site) *Directory {
	users := make(map[string]*User, len(site.Users))
	for name, cfg := range site.Users {
		threshold := cfg.LockoutThreshold
		if threshold == 0 {
			threshold = site.SiteMinder.MaxLoginAttempts
		}
		users[name] = &User{
			Name:        name,
			AuthHeaders: cfg.AuthHeaders,
			credential:  cfg.Password,
			threshold:   threshold,
		}
	}
	return &Directory{users: users}
}

// Lookup returns the user record for name.
func (d *Directory) Lookup(name string) (*User, bool) {
	u, ok := d.users[name]
	return u, ok
}
