package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fakeminder/fakeminder/internal/config"
)

func validSite() *config.Site {
	return &config.Site{
		SiteMinder: config.SiteMinder{SessionExpiryMinutes: 20, MaxLoginAttempts: 3},
		TargetSite: config.TargetSite{
			Root: "http://localhost:8000",
			URLs: config.URLs{
				Logoff:           "/system/logout",
				NotAuthenticated: "/system/error/notauthenticated",
				Logon:            "/public/logon",
				LogonSuccess:     "/protected/home",
				BadLogin:         "/system/error/badlogin",
				BadPassword:      "/system/error/badpassword",
				AccountLocked:    "/system/error/accountlocked",
				Protected:        "/protected",
			},
		},
		Users: map[string]config.User{
			"bob": {Password: "plain:test1234"},
		},
	}
}

func TestSite_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid document", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, validSite().Validate())
	})

	t.Run("missing root", func(t *testing.T) {
		t.Parallel()
		site := validSite()
		site.TargetSite.Root = ""
		require.ErrorIs(t, site.Validate(), config.ErrMissingRoot)
	})

	t.Run("relative root", func(t *testing.T) {
		t.Parallel()
		site := validSite()
		site.TargetSite.Root = "/just/a/path"
		require.ErrorIs(t, site.Validate(), config.ErrInvalidRoot)
	})

	t.Run("missing url entry", func(t *testing.T) {
		t.Parallel()
		site := validSite()
		site.TargetSite.URLs.NotAuthenticated = ""
		err := site.Validate()
		require.ErrorIs(t, err, config.ErrMissingURL)
		assert.Contains(t, err.Error(), "not_authenticated")
	})

	t.Run("non-positive expiry", func(t *testing.T) {
		t.Parallel()
		site := validSite()
		site.SiteMinder.SessionExpiryMinutes = 0
		require.ErrorIs(t, site.Validate(), config.ErrInvalidExpiry)
	})

	t.Run("user without credential", func(t *testing.T) {
		t.Parallel()
		site := validSite()
		site.Users["eve"] = config.User{}
		err := site.Validate()
		require.ErrorIs(t, err, config.ErrMissingCredential)
		assert.Contains(t, err.Error(), "eve")
	})
}

func TestSite_Derived(t *testing.T) {
	t.Parallel()

	site := validSite()
	assert.Equal(t, 20*time.Minute, site.SessionExpiry())
	assert.Equal(t, "localhost:8000", site.Host())
	assert.Equal(t, "localhost", site.Domain())
	assert.Equal(t, "http://localhost:8000/protected/home", site.Absolute("/protected/home"))
}

func TestLoadSite(t *testing.T) {
	t.Parallel()

	t.Run("loads and validates a document", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.json")
		doc := `{
			"siteminder": {"session_expiry_minutes": 20, "max_login_attempts": 3},
			"target_site": {
				"root": "http://localhost:8000",
				"urls": {
					"logoff": "/system/logout",
					"not_authenticated": "/system/error/notauthenticated",
					"logon": "/public/logon",
					"logon_success": "/protected/home",
					"bad_login": "/system/error/badlogin",
					"bad_password": "/system/error/badpassword",
					"account_locked": "/system/error/accountlocked",
					"protected": "/protected"
				}
			},
			"users": {
				"bob": {
					"password": "plain:test1234",
					"auth_headers": {"header1": "auth1"}
				}
			}
		}`
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

		site, err := config.LoadSite(path)
		require.NoError(t, err)
		assert.Equal(t, 20, site.SiteMinder.SessionExpiryMinutes)
		assert.Equal(t, "auth1", site.Users["bob"].AuthHeaders["header1"])
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := config.LoadSite(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
		_, err := config.LoadSite(path)
		require.Error(t, err)
	})

	t.Run("incomplete document", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"target_site":{"root":"http://x"}}`), 0o600))
		_, err := config.LoadSite(path)
		require.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	t.Setenv("FAKEMINDER_CONFIG", "/etc/fakeminder/site.json")
	t.Setenv("SESSION_STORE", "redis")

	var cfg config.App
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "/etc/fakeminder/site.json", cfg.SitePath)
	assert.Equal(t, "redis", cfg.SessionStore)
	assert.Equal(t, 5*time.Minute, cfg.SweepInterval)
}
