// Package agent implements the session-gated request dispatcher: it
// classifies each request, consults and mutates the session store,
// issues or revokes the SMSESSION cookie, enforces sliding expiry, and
// resolves every request into a tagged forward-or-redirect decision.
//
// The dispatcher owns no long-lived state itself; sessions live in the
// store, attempt counters in the account directory. Authentication and
// credential failures are normal redirect outcomes, never errors; store
// failures are logged and resolved fail-closed.
package agent

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/fakeminder/fakeminder/internal/account"
	"github.com/fakeminder/fakeminder/internal/config"
	"github.com/fakeminder/fakeminder/internal/cookie"
	"github.com/fakeminder/fakeminder/internal/identity"
	"github.com/fakeminder/fakeminder/internal/route"
	"github.com/fakeminder/fakeminder/internal/session"
	"github.com/fakeminder/fakeminder/pkg/logger"
)

// ProxiedByHeader is stamped on every classified request before any
// forward or redirect decision.
const ProxiedByHeader = "x-proxied-by"

// Dispatcher is the top-level per-request entry point.
type Dispatcher struct {
	site      *config.Site
	store     session.Store
	codec     *cookie.Codec
	routes    *route.Classifier
	directory *account.Directory
	injector  *identity.Injector
	expiry    time.Duration
	host      string
	log       *slog.Logger
}

// Option is a functional option for configuring the dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the structured logger. Defaults to a discard logger.
func WithLogger(log *slog.Logger) Option {
	return func(d *Dispatcher) {
		if log != nil {
			d.log = log
		}
	}
}

// New creates a dispatcher over a validated site configuration and a
// session store. The cookie codec, route classifier, user directory, and
// identity injector are derived from the site document.
func New(site *config.Site, store session.Store, opts ...Option) *Dispatcher {
	directory := account.NewDirectory(site)

	d := &Dispatcher{
		site:  site,
		store: store,
		codec: cookie.New(site.Domain()),
		routes: route.New(
			site.TargetSite.URLs.Logoff,
			site.TargetSite.URLs.Logon,
			site.TargetSite.URLs.Protected,
		),
		directory: directory,
		injector:  identity.New(directory),
		expiry:    site.SessionExpiry(),
		host:      site.Host(),
		log:       logger.Discard(),
	}

	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Handle resolves one request into a forward or redirect decision,
// mutating only the response headers (status codes and bodies belong to
// the transport layer rendering the decision).
func (d *Dispatcher) Handle(w http.ResponseWriter, r *http.Request) Decision {
	w.Header().Set(ProxiedByHeader, d.host)

	category := d.routes.Classify(r.Method, r.URL.String())

	var decision Decision
	switch category {
	case route.Logoff:
		decision = d.handleLogoff(w, r)
	case route.Logon:
		decision = d.handleLogon(w, r)
	case route.Protected:
		decision = d.validateProtected(w, r)
	default:
		// Public paths pass through regardless of session state and
		// never get a cookie.
		decision = Forward()
	}

	d.log.Debug("request dispatched",
		logger.Method(r.Method),
		logger.Path(r.URL.Path),
		slog.String("category", category.String()),
		logger.Decision(decision.Kind.String()),
		logger.Redirect(decision.Location),
	)

	return decision
}

// handleLogoff deletes the session matching the presented token, leaves
// other sessions untouched, answers the LOGGEDOFF sentinel cookie, and
// forwards so the site's own logout page renders.
func (d *Dispatcher) handleLogoff(w http.ResponseWriter, r *http.Request) Decision {
	if token, err := d.codec.ExtractToken(r); err == nil {
		if err := d.store.Delete(r.Context(), token); err != nil {
			d.log.Error("logoff: delete session", logger.Error(err))
		}
	}

	d.codec.Revoke(w)
	return Forward()
}

// redirect builds a redirect decision to a configured path under the
// site root.
func (d *Dispatcher) redirect(path string) Decision {
	return Redirect(d.site.Absolute(path))
}
