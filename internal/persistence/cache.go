package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrCacheMiss signals the key was absent or the cache is unavailable.
var ErrCacheMiss = errors.New("cache miss")

// Cache provides small JSON value caching on top of Redis. Callers fall
// back to the source of truth on any miss or Redis failure.
type Cache struct {
	redis *Redis
}

// NewCache wraps the Redis connection.
func NewCache(r *Redis) *Cache {
	return &Cache{redis: r}
}

// GetJSON unmarshals the cached value into dest.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) error {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return ErrCacheMiss
	}
	raw, err := c.redis.Client.Get(ctx, key).Bytes()
	if err != nil {
		return ErrCacheMiss
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return ErrCacheMiss
	}
	return nil
}

// SetJSON stores value under key with the given TTL. Failures are
// swallowed; the cache is best effort.
func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.redis.Client.Set(ctx, key, raw, ttl).Err()
}

// Invalidate removes a key.
func (c *Cache) Invalidate(ctx context.Context, key string) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return
	}
	_ = c.redis.Client.Del(ctx, key).Err()
}
