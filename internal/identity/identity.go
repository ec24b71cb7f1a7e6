// Package identity injects the per-user headers a backend trusts the
// agent for.
package identity

import (
	"net/http"

	"github.com/fakeminder/fakeminder/internal/account"
)

// Injector copies a user's configured auth_headers onto an outbound
// header set.
type Injector struct {
	directory *account.Directory
}

// New creates an injector over the given user directory.
func New(directory *account.Directory) *Injector {
	return &Injector{directory: directory}
}

// Apply sets each configured header for user verbatim, preserving key
// names and values exactly as configured. Names are not validated
// against a fixed set. An unknown user or a user with no configured
// headers is a no-op.
func (i *Injector) Apply(h http.Header, user string) {
	u, ok := i.directory.Lookup(user)
	if !ok {
		return
	}
	for name, value := range u.AuthHeaders {
		// Direct map write, not Set: configured names go on the wire
		// with their exact casing, not Go's canonical form.
		h[name] = []string{value}
	}
}
