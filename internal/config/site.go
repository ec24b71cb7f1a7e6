package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"time"
)

// Site is the full site configuration document. It is loaded once at
// process start and read-only thereafter; the per-user login attempt
// counter lives in the account package, not here.
type Site struct {
	SiteMinder SiteMinder      `json:"siteminder"`
	TargetSite TargetSite      `json:"target_site"`
	Users      map[string]User `json:"users"`
}

// SiteMinder holds session policy settings.
type SiteMinder struct {
	SessionExpiryMinutes int `json:"session_expiry_minutes"`
	// MaxLoginAttempts is the default lockout threshold, overridable
	// per user via User.LockoutThreshold.
	MaxLoginAttempts int `json:"max_login_attempts"`
}

// TargetSite describes the protected site the agent fronts.
type TargetSite struct {
	Root string `json:"root"`
	URLs URLs   `json:"urls"`
}

// URLs names the site paths the agent routes and redirects to. All values
// are paths under the site root.
type URLs struct {
	Logoff           string `json:"logoff"`
	NotAuthenticated string `json:"not_authenticated"`
	Logon            string `json:"logon"`
	LogonSuccess     string `json:"logon_success"`
	BadLogin         string `json:"bad_login"`
	BadPassword      string `json:"bad_password"`
	AccountLocked    string `json:"account_locked"`
	// Protected is a path prefix, not an exact match.
	Protected string `json:"protected"`
}

// User is a configured account. Password is an opaque credential
// reference interpreted by the account package.
type User struct {
	Password         string            `json:"password"`
	LockoutThreshold int               `json:"lockout_threshold"`
	AuthHeaders      map[string]string `json:"auth_headers"`
}

// LoadSite reads and validates the site document at path.
func LoadSite(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read site config: %w", err)
	}

	var site Site
	if err := json.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("parse site config: %w", err)
	}

	if err := site.Validate(); err != nil {
		return nil, err
	}

	return &site, nil
}

// Validate checks the document for the fields the agent cannot run
// without. Callers treat any error as fatal.
func (s *Site) Validate() error {
	if s.TargetSite.Root == "" {
		return ErrMissingRoot
	}

	root, err := url.Parse(s.TargetSite.Root)
	if err != nil || !root.IsAbs() || root.Host == "" {
		return ErrInvalidRoot
	}

	required := map[string]string{
		"logoff":            s.TargetSite.URLs.Logoff,
		"not_authenticated": s.TargetSite.URLs.NotAuthenticated,
		"logon":             s.TargetSite.URLs.Logon,
		"logon_success":     s.TargetSite.URLs.LogonSuccess,
		"bad_login":         s.TargetSite.URLs.BadLogin,
		"bad_password":      s.TargetSite.URLs.BadPassword,
		"account_locked":    s.TargetSite.URLs.AccountLocked,
		"protected":         s.TargetSite.URLs.Protected,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%w: %s", ErrMissingURL, name)
		}
	}

	if s.SiteMinder.SessionExpiryMinutes <= 0 {
		return ErrInvalidExpiry
	}

	for name, user := range s.Users {
		if user.Password == "" {
			return fmt.Errorf("%w: user %q", ErrMissingCredential, name)
		}
	}

	return nil
}

// SessionExpiry returns the configured sliding expiry window.
func (s *Site) SessionExpiry() time.Duration {
	return time.Duration(s.SiteMinder.SessionExpiryMinutes) * time.Minute
}

// Host returns the host:port of the site root, the value of the
// x-proxied-by header.
func (s *Site) Host() string {
	root, err := url.Parse(s.TargetSite.Root)
	if err != nil {
		return ""
	}
	return root.Host
}

// Domain returns the hostname of the site root, used to scope the
// session cookie.
func (s *Site) Domain() string {
	root, err := url.Parse(s.TargetSite.Root)
	if err != nil {
		return ""
	}
	return root.Hostname()
}

// Absolute joins a configured path onto the site root for use as a
// redirect Location.
func (s *Site) Absolute(path string) string {
	return s.TargetSite.Root + path
}
