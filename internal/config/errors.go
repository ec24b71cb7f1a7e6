package config

import "errors"

var (
	// ErrMissingRoot indicates the site document has no target_site.root.
	ErrMissingRoot = errors.New("target_site.root is required")
	// ErrInvalidRoot indicates target_site.root is not an absolute URL.
	ErrInvalidRoot = errors.New("target_site.root must be an absolute URL")
	// ErrMissingURL indicates a required entry under target_site.urls is absent.
	ErrMissingURL = errors.New("required target_site.urls entry is missing")
	// ErrInvalidExpiry indicates siteminder.session_expiry_minutes is not positive.
	ErrInvalidExpiry = errors.New("siteminder.session_expiry_minutes must be positive")
	// ErrMissingCredential indicates a configured user has no credential reference.
	ErrMissingCredential = errors.New("user credential reference is required")
)
