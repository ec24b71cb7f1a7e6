// Package httpd is the HTTP transport layer: it adapts the dispatcher's
// tagged decisions onto the wire, carries the request-scoped middleware
// stack, and runs the listener with graceful shutdown. Actual byte
// forwarding to the backend belongs to the Forwarder collaborator; the
// agent core never opens backend connections.
package httpd

import (
	"net/http"

	"github.com/fakeminder/fakeminder/internal/agent"
)

// Forwarder performs the actual proxying of a pass-through request to
// the protected backend.
type Forwarder interface {
	http.Handler
}

// NewHandler renders dispatcher decisions: redirects become a 302 with
// the Location header set, forwards are delegated to the forwarder.
func NewHandler(dispatcher *agent.Dispatcher, forwarder Forwarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision := dispatcher.Handle(w, r)

		switch decision.Kind {
		case agent.KindRedirect:
			w.Header().Set("Location", decision.Location)
			w.WriteHeader(http.StatusFound)
		default:
			forwarder.ServeHTTP(w, r)
		}
	})
}
