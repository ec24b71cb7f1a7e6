// Package config loads process configuration from environment variables
// and the site configuration document that describes the protected site,
// its users, and the session policy.
//
// Environment loading automatically reads a .env file on first use and
// parses variables into tagged struct fields. Site configuration is a JSON
// document loaded once at startup; a malformed or incomplete document is a
// fatal startup error, never a per-request one.
package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// App holds process-level settings for the agent binary.
type App struct {
	// SitePath points at the JSON site configuration document.
	SitePath string `env:"FAKEMINDER_CONFIG" envDefault:"config.json"`

	// UpstreamURL is the protected backend forwards are proxied to.
	UpstreamURL string `env:"UPSTREAM_URL" envDefault:"http://localhost:8080"`

	// SessionStore selects the session store backend: memory or redis.
	SessionStore string `env:"SESSION_STORE" envDefault:"memory"`

	// SweepInterval controls how often expired sessions are purged from
	// the memory store. Zero disables the sweeper.
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"5m"`
}

var loadDotEnv sync.Once

// Load parses environment variables into cfg. A .env file in the working
// directory is loaded into the environment once per process, silently
// skipped when absent.
func Load(cfg any) error {
	loadDotEnv.Do(func() {
		// Missing .env is the normal production case.
		_ = godotenv.Load()
	})

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

// MustLoad is Load but panics on failure. Useful during startup where a
// configuration error must stop the process.
func MustLoad(cfg any) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
