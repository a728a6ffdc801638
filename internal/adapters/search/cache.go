package search

import (
	"context"
	"time"

	"hermes/internal/adapters/redis"
)

// Compile-time check
var _ Cache = (*RedisCache)(nil)

// RedisCache caches snippet lists in Redis with a fixed TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a snippet cache backed by Redis.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisCache{client: client, ttl: ttl}
}

// Get reads a cached snippet list.
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) error {
	return c.client.Get(ctx, key, dest)
}

// Set stores a snippet list with the cache TTL.
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}) error {
	return c.client.Set(ctx, key, value, c.ttl)
}
