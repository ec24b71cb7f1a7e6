// Package cookie isolates all SMSESSION cookie wire handling. Every other
// component operates on a decoded token value, never on raw header text.
package cookie

import (
	"errors"
	"net/http"
)

const (
	// Name is the session cookie name, fixed by the emulated product.
	Name = "SMSESSION"
	// LoggedOff is the sentinel written on logoff instead of clearing the
	// cookie. The sentinel is itself meaningful to intermediaries that
	// inspect cookie values, so it is a deliberate part of the contract.
	LoggedOff = "LOGGEDOFF"
)

// ErrNoToken is returned when the request carries no usable session
// token: no cookie header at all, no SMSESSION cookie among others, an
// empty value, or the LOGGEDOFF sentinel.
var ErrNoToken = errors.New("no session token in request")

// Codec reads session tokens from inbound requests and writes the
// SMSESSION cookie on outbound responses.
type Codec struct {
	domain   string
	path     string
	httpOnly bool
	secure   bool
}

// Option is a functional option for configuring the codec.
type Option func(*Codec)

// WithPath sets the cookie path attribute. Defaults to "/".
func WithPath(path string) Option {
	return func(c *Codec) {
		if path != "" {
			c.path = path
		}
	}
}

// WithHTTPOnly controls the HttpOnly attribute. Defaults to true so the
// token is inaccessible to scripts.
func WithHTTPOnly(httpOnly bool) Option {
	return func(c *Codec) {
		c.httpOnly = httpOnly
	}
}

// WithSecure sets the Secure flag for HTTPS-only deployments.
func WithSecure(secure bool) Option {
	return func(c *Codec) {
		c.secure = secure
	}
}

// New creates a codec scoping cookies to the given domain.
func New(domain string, opts ...Option) *Codec {
	c := &Codec{
		domain:   domain,
		path:     "/",
		httpOnly: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ExtractToken reads the session token from the request. A malformed
// cookie header is treated identically to an absent one.
func (c *Codec) ExtractToken(r *http.Request) (string, error) {
	ck, err := r.Cookie(Name)
	if err != nil {
		return "", ErrNoToken
	}
	if ck.Value == "" || ck.Value == LoggedOff {
		return "", ErrNoToken
	}
	return ck.Value, nil
}

// Issue sets the SMSESSION cookie with the given token.
func (c *Codec) Issue(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    token,
		Path:     c.path,
		Domain:   c.domain,
		Secure:   c.secure,
		HttpOnly: c.httpOnly,
	})
}

// Revoke issues the SMSESSION cookie with the LOGGEDOFF sentinel rather
// than physically clearing it.
func (c *Codec) Revoke(w http.ResponseWriter) {
	c.Issue(w, LoggedOff)
}
