package agent

import (
	"errors"
	"net/http"
	"time"

	"github.com/fakeminder/fakeminder/internal/session"
	"github.com/fakeminder/fakeminder/pkg/logger"
)

// validateProtected runs the protected-path state machine. The observed
// states are: no cookie, unknown or expired token (indistinguishable by
// design, both redirect), and authenticated.
//
// On success the session expiry is atomically extended to now plus the
// configured window, the cookie is re-issued with the unchanged token,
// and the user's identity headers are injected.
func (d *Dispatcher) validateProtected(w http.ResponseWriter, r *http.Request) Decision {
	token, err := d.codec.ExtractToken(r)
	if err != nil {
		// No cookie at all, or only the LOGGEDOFF sentinel.
		return d.redirect(d.site.TargetSite.URLs.NotAuthenticated)
	}

	sess, err := d.store.Renew(r.Context(), token, time.Now().Add(d.expiry))
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			// Store failure, not an auth outcome. Fail closed.
			d.log.Error("validate: renew session", logger.Error(err))
		}
		return d.redirect(d.site.TargetSite.URLs.NotAuthenticated)
	}

	d.codec.Issue(w, sess.Token)
	d.injector.Apply(w.Header(), sess.User)
	// The reverse proxy copies request headers upstream, so the backend
	// sees the same identity assertion.
	d.injector.Apply(r.Header, sess.User)

	return Forward()
}
