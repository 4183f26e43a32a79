// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taskboard/internal/platform/redis"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewClient(t *testing.T) {
	server := miniredis.RunT(t)

	client, err := redis.NewClient(context.Background(), "redis://"+server.Addr(), discardLogger())
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, redis.Ping(context.Background(), client))

	server.Close()
	assert.Error(t, redis.Ping(context.Background(), client))
}

func TestNewClient_CacheTuning(t *testing.T) {
	server := miniredis.RunT(t)

	t.Run("Defaults", func(t *testing.T) {
		client, err := redis.NewClient(context.Background(), "redis://"+server.Addr(), discardLogger())
		require.NoError(t, err)
		defer client.Close()

		options := client.Options()
		assert.Equal(t, 1, options.MaxRetries)
		assert.True(t, options.ContextTimeoutEnabled)
		assert.Equal(t, 20, options.PoolSize)
		assert.Equal(t, 300*time.Millisecond, options.ReadTimeout)
	})

	t.Run("URLPoolSizeWins", func(t *testing.T) {
		client, err := redis.NewClient(context.Background(), "redis://"+server.Addr()+"/0?pool_size=50", discardLogger())
		require.NoError(t, err)
		defer client.Close()

		assert.Equal(t, 50, client.Options().PoolSize)
	})
}

func TestNewClient_Failures(t *testing.T) {
	t.Run("InvalidURL", func(t *testing.T) {
		_, err := redis.NewClient(context.Background(), "not-a-url", discardLogger())
		assert.ErrorContains(t, err, "redis_invalid_url")
	})

	t.Run("Unreachable", func(t *testing.T) {
		server := miniredis.RunT(t)
		addr := server.Addr()
		server.Close()

		_, err := redis.NewClient(context.Background(), "redis://"+addr, discardLogger())
		assert.ErrorContains(t, err, "redis_ping_failed")
	})
}
