package redisconn_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fakeminder/fakeminder/internal/redisconn"
)

func TestConnect(t *testing.T) {
	t.Parallel()

	t.Run("empty URL", func(t *testing.T) {
		t.Parallel()

		_, err := redisconn.Connect(context.Background(), redisconn.Config{})
		require.ErrorIs(t, err, redisconn.ErrEmptyURL)
	})

	t.Run("invalid URL", func(t *testing.T) {
		t.Parallel()

		_, err := redisconn.Connect(context.Background(), redisconn.Config{
			ConnectionURL: "not-a-url",
		})
		require.Error(t, err)
	})

	t.Run("connects and pings", func(t *testing.T) {
		t.Parallel()

		srv := miniredis.RunT(t)
		client, err := redisconn.Connect(context.Background(), redisconn.Config{
			ConnectionURL: "redis://" + srv.Addr(),
			RetryAttempts: 1,
		})
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close() })

		check := redisconn.Healthcheck(client)
		assert.NoError(t, check(context.Background()))
	})

	t.Run("retries exhausted against a dead server", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		// Port 1 is reserved and nothing listens there.
		_, err := redisconn.Connect(ctx, redisconn.Config{
			ConnectionURL: "redis://127.0.0.1:1",
			RetryAttempts: 2,
			RetryInterval: 10 * time.Millisecond,
		})
		require.Error(t, err)
	})
}
