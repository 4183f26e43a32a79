// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis builds the client behind the identity cache.

The request identity resolver looks up the caller's account on every
authenticated request. With REDIS_URL set, those lookups are served from
short-lived Redis snapshots (see auth.RedisIdentityCache) and fall back to
PostgreSQL on a miss or on any Redis failure.

Because every read has a database fallback, the client is tuned to fail
fast rather than to retry:

  - Timeouts are tight and follow the request context's deadline.
  - A single retry at most; a slow cache is worse than a miss.
  - The pool is sized for one GET per request plus invalidation DELs.

Redis is optional. When REDIS_URL is empty the server runs without it and
/ready skips the redis check.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Identity lookups sit on the authentication hot path.
const (
	dialTimeout  = 2 * time.Second
	readTimeout  = 300 * time.Millisecond
	writeTimeout = 300 * time.Millisecond
	pingTimeout  = 2 * time.Second

	defaultPoolSize     = 20
	defaultMinIdleConns = 4
	maxRetries          = 1
)

/*
NewClient parses a Redis URL, applies the cache tuning and verifies
connectivity.

Pool settings given in the URL (for example "?pool_size=50") take precedence
over the defaults.

Parameters:
  - context: Bounds the initial ping
  - redisURL: redis:// or rediss:// connection URL
  - logger: Startup logger

Returns:
  - *redis.Client: Connected client, owned by the caller
  - error: Invalid URL or unreachable server
*/
func NewClient(context stdctx.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis_invalid_url: %w", err)
	}

	applyCacheTuning(options)

	client := redis.NewClient(options)

	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_client_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.Int("pool_size", options.PoolSize),
		slog.Duration("read_timeout", options.ReadTimeout),
	)

	return client, nil
}

// applyCacheTuning fills in fail-fast defaults without overriding URL settings.
func applyCacheTuning(options *redis.Options) {
	options.MaxRetries = maxRetries
	options.ContextTimeoutEnabled = true

	if options.PoolSize == 0 {
		options.PoolSize = defaultPoolSize
	}
	if options.MinIdleConns == 0 {
		options.MinIdleConns = defaultMinIdleConns
	}

	options.DialTimeout = dialTimeout
	options.ReadTimeout = readTimeout
	options.WriteTimeout = writeTimeout
}

// Ping verifies that the Redis client is healthy. Used at startup and by /ready.
func Ping(context stdctx.Context, client redis.UniversalClient) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis_ping_failed: %w", err)
	}

	return nil
}
