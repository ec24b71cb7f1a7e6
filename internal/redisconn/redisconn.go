// Package redisconn initializes the Redis client used by the Redis
// session store, with URL validation, retry logic, and a ping check so a
// broken connection is a startup failure rather than a per-request one.
package redisconn

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrEmptyURL is returned when no Redis connection URL is configured.
var ErrEmptyURL = errors.New("redis connection URL is required")

// Config holds Redis connection settings with environment variable
// support.
type Config struct {
	ConnectionURL string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RetryAttempts int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
}

// Connect creates a Redis client and verifies connectivity with a ping,
// retrying transient failures with the configured interval.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyURL
	}

	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	attempts := cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(cfg.RetryInterval):
			}
		}

		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			lastErr = err
			_ = client.Close()
			continue
		}
		return client, nil
	}

	return nil, fmt.Errorf("connect to redis after %d attempts: %w", attempts, lastErr)
}

// Healthcheck returns a function suitable for liveness probes.
func Healthcheck(client *redis.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
