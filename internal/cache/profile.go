// Package cache holds the optional Redis read-through cache for user profiles.
// A nil *ProfileCache is valid and behaves as an always-empty cache, so the
// service runs unchanged when Redis is not configured.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tasknest/tasknest-go/internal/model"
)

const keyPrefix = "tasknest:profile:"

// ProfileCache stores password-free profile snapshots keyed by user id.
type ProfileCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewProfileCache wraps rdb. It returns nil when rdb is nil.
func NewProfileCache(rdb *redis.Client, ttl time.Duration) *ProfileCache {
	if rdb == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ProfileCache{rdb: rdb, ttl: ttl}
}

// NewRedisClient connects to addr and pings it. It returns nil when addr is
// empty or the server is unreachable.
func NewRedisClient(ctx context.Context, addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		slog.Warn("redis unavailable, profile cache disabled", "addr", addr, "error", err)
		client.Close()
		return nil
	}
	return client
}

// Get returns the cached profile for userID. Cache errors count as misses.
func (c *ProfileCache) Get(ctx context.Context, userID string) (model.UserResponse, bool) {
	if c == nil {
		return model.UserResponse{}, false
	}

	raw, err := c.rdb.Get(ctx, keyPrefix+userID).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.WarnContext(ctx, "profile cache read failed", "error", err)
		}
		return model.UserResponse{}, false
	}

	var profile model.UserResponse
	if err := json.Unmarshal(raw, &profile); err != nil {
		slog.WarnContext(ctx, "profile cache entry corrupt", "error", err)
		return model.UserResponse{}, false
	}
	return profile, true
}

// Set stores profile under its id.
func (c *ProfileCache) Set(ctx context.Context, profile model.UserResponse) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(profile)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, keyPrefix+profile.ID, raw, c.ttl).Err(); err != nil {
		slog.WarnContext(ctx, "profile cache write failed", "error", err)
	}
}

// Invalidate drops the cached profile for userID.
func (c *ProfileCache) Invalidate(ctx context.Context, userID string) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, keyPrefix+userID).Err(); err != nil {
		slog.WarnContext(ctx, "profile cache invalidate failed", "error", err)
	}
}
