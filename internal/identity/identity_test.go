package identity_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fakeminder/fakeminder/internal/account"
	"github.com/fakeminder/fakeminder/internal/config"
	"github.com/fakeminder/fakeminder/internal/identity"
)

func TestInjector_Apply(t *testing.T) {
	t.Parallel()

	directory := account.NewDirectory(&config.Site{
		Users: map[string]config.User{
			"bob": {
				Password: "plain:test1234",
				AuthHeaders: map[string]string{
					"header1":       "auth1",
					"header2":       "auth2",
					"X-Custom-Name": "anything goes",
				},
			},
			"alice": {Password: "plain:hunter2"},
		},
	})
	injector := identity.New(directory)

	t.Run("copies configured headers verbatim", func(t *testing.T) {
		t.Parallel()

		h := make(http.Header)
		injector.Apply(h, "bob")

		// Key casing survives exactly as configured.
		assert.Equal(t, []string{"auth1"}, h["header1"])
		assert.Equal(t, []string{"auth2"}, h["header2"])
		assert.Equal(t, []string{"anything goes"}, h["X-Custom-Name"])
		assert.Len(t, h, 3)
	})

	t.Run("user without headers is a no-op", func(t *testing.T) {
		t.Parallel()

		h := make(http.Header)
		injector.Apply(h, "alice")
		assert.Empty(t, h)
	})

	t.Run("unknown user is a no-op", func(t *testing.T) {
		t.Parallel()

		h := make(http.Header)
		injector.Apply(h, "mallory")
		assert.Empty(t, h)
	})
}
