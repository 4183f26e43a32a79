// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/taskboard/internal/platform/constants"
	"github.com/taibuivan/taskboard/internal/platform/ctxutil"
	"github.com/taibuivan/taskboard/internal/platform/sec"
)

// cachedIdentity is the Redis payload. The password hash is never cached.
type cachedIdentity struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Enabled bool   `json:"enabled"`
}

// RedisIdentityCache is a read-through cache in front of the account store.
//
// It implements [IdentityLookup] for the resolver and [IdentityInvalidator]
// for the service. Redis failures degrade to a direct store read.
type RedisIdentityCache struct {
	client redis.UniversalClient
	source IdentityLookup
	ttl    time.Duration
}

// NewIdentityCache wraps source with a Redis cache whose entries live for ttl.
func NewIdentityCache(client redis.UniversalClient, source IdentityLookup, ttl time.Duration) *RedisIdentityCache {
	return &RedisIdentityCache{client: client, source: source, ttl: ttl}
}

func identityKey(email string) string {
	return constants.RedisPrefixIdentity + NormalizeEmail(email)
}

/*
FindByEmail returns the cached identity for email, loading it from the store on a miss.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Account without PasswordHash
  - error: The store's error on a miss (dberr.ErrNotFound is not cached)
*/
func (cache *RedisIdentityCache) FindByEmail(context context.Context, email string) (*User, error) {
	email = NormalizeEmail(email)
	key := identityKey(email)
	logger := ctxutil.GetLogger(context)

	raw, err := cache.client.Get(context, key).Bytes()
	switch {
	case err == nil:
		var entry cachedIdentity
		if jsonErr := json.Unmarshal(raw, &entry); jsonErr == nil {
			return &User{
				ID:      entry.ID,
				Email:   entry.Email,
				Role:    sec.UserRole(entry.Role),
				Enabled: entry.Enabled,
			}, nil
		}
		logger.WarnContext(context, "identity_cache_corrupt_entry", slog.String("key", key))

	case !errors.Is(err, redis.Nil):
		logger.WarnContext(context, "identity_cache_read_failed", slog.Any("error", err))
	}

	user, err := cache.source.FindByEmail(context, email)
	if err != nil {
		return nil, err
	}

	cache.store(context, key, user)
	return user, nil
}

// store writes a snapshot of user. Failures are logged and ignored.
func (cache *RedisIdentityCache) store(context context.Context, key string, user *User) {
	payload, err := json.Marshal(cachedIdentity{
		ID:      user.ID,
		Email:   user.Email,
		Role:    string(user.Role),
		Enabled: user.Enabled,
	})
	if err != nil {
		return
	}

	if err := cache.client.Set(context, key, payload, cache.ttl).Err(); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "identity_cache_write_failed", slog.Any("error", err))
	}
}

/*
Invalidate removes the cached identity for email.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - error: Redis connectivity errors
*/
func (cache *RedisIdentityCache) Invalidate(context context.Context, email string) error {
	if err := cache.client.Del(context, identityKey(email)).Err(); err != nil {
		return fmt.Errorf("redis_identity_cache_invalidate_failed: %w", err)
	}
	return nil
}
