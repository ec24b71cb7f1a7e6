// Package route classifies request paths against the configured site
// routes. Classification is a pure function with no side effects.
package route

import (
	"net/http"
	"net/url"
	"strings"
)

// Category is the routing class of a request path.
type Category int

const (
	// Public is any path outside the configured routes; it passes
	// through regardless of session state.
	Public Category = iota
	// Logoff is an exact match on the configured logoff path.
	Logoff
	// Logon is a POST to the configured logon path.
	Logon
	// Protected is any path under the configured protected prefix.
	Protected
)

// String returns the category name for logging.
func (c Category) String() string {
	switch c {
	case Logoff:
		return "logoff"
	case Logon:
		return "logon"
	case Protected:
		return "protected"
	default:
		return "public"
	}
}

// Classifier maps request paths to categories.
type Classifier struct {
	logoff    string
	logon     string
	protected string
}

// New creates a classifier for the given site paths. protected is a
// prefix; logoff and logon are exact matches.
func New(logoff, logon, protected string) *Classifier {
	return &Classifier{
		logoff:    logoff,
		logon:     logon,
		protected: protected,
	}
}

// Classify resolves exactly one category for the request, tested in
// precedence order: logoff, then POST logon, then protected prefix,
// then public. rawURL may be absolute (as a proxy sees it) or a bare
// path; only the path component is classified.
func (c *Classifier) Classify(method, rawURL string) Category {
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		path = u.Path
	}

	switch {
	case path == c.logoff:
		return Logoff
	case method == http.MethodPost && path == c.logon:
		return Logon
	case strings.HasPrefix(path, c.protected):
		return Protected
	default:
		return Public
	}
}
