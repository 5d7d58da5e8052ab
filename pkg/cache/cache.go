package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/shop-tracker/pkg/logger"
)

// Cache is a Redis-backed response cache for dashboard reads.
// Keys are namespaced by a per-owner version counter; bumping the version
// on every order write invalidates all cached reads for that owner without
// having to enumerate keys.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a cache. A nil client disables caching entirely.
func New(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) enabled() bool {
	return c != nil && c.client != nil
}

func (c *Cache) versionKey(ownerID uint) string {
	return fmt.Sprintf("orders:ver:%d", ownerID)
}

func (c *Cache) fullKey(ctx context.Context, ownerID uint, key string) (string, error) {
	ver, err := c.client.Get(ctx, c.versionKey(ownerID)).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("orders:%d:%d:%s", ownerID, ver, key), nil
}

// Get returns a cached payload for the owner-scoped key
func (c *Cache) Get(ctx context.Context, ownerID uint, key string) ([]byte, bool) {
	if !c.enabled() {
		return nil, false
	}

	fullKey, err := c.fullKey(ctx, ownerID, key)
	if err != nil {
		logger.Logger.Debug().Err(err).Msg("Cache version lookup failed")
		return nil, false
	}

	payload, err := c.client.Get(ctx, fullKey).Bytes()
	if err != nil || len(payload) == 0 {
		return nil, false
	}

	logger.Logger.Debug().
		Uint("owner_id", ownerID).
		Str("cache_key", key).
		Msg("Cache hit")
	return payload, true
}

// Set stores a payload for the owner-scoped key
func (c *Cache) Set(ctx context.Context, ownerID uint, key string, payload []byte) {
	if !c.enabled() {
		return
	}

	fullKey, err := c.fullKey(ctx, ownerID, key)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, fullKey, payload, c.ttl).Err(); err != nil {
		logger.Logger.Debug().Err(err).Msg("Cache write failed")
	}
}

// Invalidate drops every cached read for the owner by bumping the version counter
func (c *Cache) Invalidate(ctx context.Context, ownerID uint) {
	if !c.enabled() {
		return
	}

	if err := c.client.Incr(ctx, c.versionKey(ownerID)).Err(); err != nil {
		logger.Logger.Debug().Err(err).Msg("Cache invalidation failed")
	}
}
