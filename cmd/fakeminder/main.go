// Command fakeminder runs the web-access-management agent: it fronts a
// reverse proxy, gates requests on SMSESSION sessions, and forwards
// authenticated traffic to the protected backend.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http/httputil"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fakeminder/fakeminder/internal/agent"
	"github.com/fakeminder/fakeminder/internal/config"
	"github.com/fakeminder/fakeminder/internal/httpd"
	"github.com/fakeminder/fakeminder/internal/redisconn"
	"github.com/fakeminder/fakeminder/internal/session"
	"github.com/fakeminder/fakeminder/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fakeminder:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		appCfg config.App
		logCfg logger.Config
		srvCfg httpd.Config
	)
	if err := config.Load(&appCfg); err != nil {
		return err
	}
	if err := config.Load(&logCfg); err != nil {
		return err
	}
	if err := config.Load(&srvCfg); err != nil {
		return err
	}

	log := logger.New(logCfg, os.Stderr)

	// A malformed or incomplete site document must stop the process
	// before it serves a single request.
	site, err := config.LoadSite(appCfg.SitePath)
	if err != nil {
		return fmt.Errorf("site config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store session.Store
	switch appCfg.SessionStore {
	case "redis":
		var redisCfg redisconn.Config
		if err := config.Load(&redisCfg); err != nil {
			return err
		}
		client, err := redisconn.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()
		store = session.NewRedisStore(client)
	case "memory":
		memStore := session.NewMemoryStore()
		if appCfg.SweepInterval > 0 {
			go sweepExpired(ctx, memStore, appCfg.SweepInterval, log)
		}
		store = memStore
	default:
		return fmt.Errorf("unknown session store backend %q", appCfg.SessionStore)
	}

	upstream, err := url.Parse(appCfg.UpstreamURL)
	if err != nil {
		return fmt.Errorf("parse upstream URL: %w", err)
	}
	forwarder := httputil.NewSingleHostReverseProxy(upstream)

	dispatcher := agent.New(site, store, agent.WithLogger(log))

	handler := httpd.Chain(
		httpd.NewHandler(dispatcher, forwarder),
		httpd.RequestID(),
		httpd.Logging(log),
	)

	server := httpd.NewServer(srvCfg, httpd.WithLogger(log))
	if err := server.Start(ctx, handler); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// sweepExpired purges expired sessions from the memory store so memory
// stays bounded under long uptime. Liveness on read does not depend on
// the sweep.
func sweepExpired(ctx context.Context, store *session.MemoryStore, interval time.Duration, log *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, _ := store.DeleteExpired(ctx)
			if deleted > 0 {
				log.Debug("expired sessions purged", "count", deleted)
			}
		}
	}
}
