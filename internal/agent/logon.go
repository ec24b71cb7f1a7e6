package agent

import (
	"net/http"

	"github.com/fakeminder/fakeminder/internal/session"
	"github.com/fakeminder/fakeminder/pkg/logger"
)

// Form field names follow the SiteMinder login.fcc convention.
const (
	formUser     = "USER"
	formPassword = "PASSWORD"
)

// handleLogon runs the credential state machine for a POST to the logon
// path. Each branch is terminal and resolves to a distinct configured
// redirect, so bad login, bad password, and lockout stay observable
// end-to-end.
func (d *Dispatcher) handleLogon(w http.ResponseWriter, r *http.Request) Decision {
	// Logging in as a new user invalidates whatever session the request
	// presents, live or expired, before credentials are even looked at.
	if token, err := d.codec.ExtractToken(r); err == nil {
		if err := d.store.Delete(r.Context(), token); err != nil {
			d.log.Error("logon: destroy prior session", logger.Error(err))
		}
	}

	username := r.PostFormValue(formUser)
	password := r.PostFormValue(formPassword)

	user, ok := d.directory.Lookup(username)
	if !ok {
		d.log.Info("logon rejected: unknown user", logger.User(username))
		return d.redirect(d.site.TargetSite.URLs.BadLogin)
	}

	// Lockout takes precedence over a possibly-correct password, so a
	// locked account never leaks whether the credential was right.
	if user.Locked() {
		d.log.Info("logon rejected: account locked", logger.User(username))
		return d.redirect(d.site.TargetSite.URLs.AccountLocked)
	}

	if !user.VerifyPassword(password) {
		attempts := user.RecordFailure()
		d.log.Info("logon rejected: bad password",
			logger.User(username),
			logger.Attempts(attempts),
		)
		return d.redirect(d.site.TargetSite.URLs.BadPassword)
	}

	user.ResetAttempts()

	sess, err := session.New(username, d.expiry)
	if err != nil {
		d.log.Error("logon: create session", logger.User(username), logger.Error(err))
		return d.redirect(d.site.TargetSite.URLs.BadLogin)
	}
	if err := d.store.Put(r.Context(), sess); err != nil {
		d.log.Error("logon: store session", logger.User(username), logger.Error(err))
		return d.redirect(d.site.TargetSite.URLs.BadLogin)
	}

	d.codec.Issue(w, sess.Token)
	d.log.Info("logon accepted", logger.User(username))

	return d.redirect(d.site.TargetSite.URLs.LogonSuccess)
}
