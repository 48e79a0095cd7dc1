// Package redis provides a response cache backed by Redis, for deployments
// where answers should survive process restarts.
package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"advisor/internal/domain"
	"advisor/internal/logger"
)

const (
	keyPrefix  = "advisor:response:"
	defaultTTL = time.Hour
)

// Cache stores JSON-marshaled responses keyed by normalized query text.
// Lookup and store failures degrade to cache misses; the pipeline never
// fails because the cache is unreachable.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache creates a Redis-backed cache with the given TTL (one hour when
// non-positive).
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// Get implements domain.Cache.
func (c *Cache) Get(ctx context.Context, key string) (*domain.Response, bool) {
	val, err := c.client.Get(ctx, keyPrefix+key).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Debug("redis cache get failed: %v", err)
		return nil, false
	}
	var resp domain.Response
	if err := json.Unmarshal([]byte(val), &resp); err != nil {
		logger.Debug("redis cache entry corrupt: %v", err)
		return nil, false
	}
	return &resp, true
}

// Set implements domain.Cache.
func (c *Cache) Set(ctx context.Context, key string, resp *domain.Response) {
	val, err := json.Marshal(resp)
	if err != nil {
		logger.Debug("redis cache marshal failed: %v", err)
		return
	}
	if err := c.client.Set(ctx, keyPrefix+key, val, c.ttl).Err(); err != nil {
		logger.Debug("redis cache set failed: %v", err)
	}
}

// Purge removes every cached response.
func (c *Cache) Purge(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Debug("redis cache purge del failed: %v", err)
		}
	}
	if err := iter.Err(); err != nil {
		logger.Debug("redis cache purge scan failed: %v", err)
	}
}
