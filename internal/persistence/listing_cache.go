package persistence

import (
	"context"
	"errors"
	"time"
)

const listingCacheKey = "tiers:published"

// ListingCache stores the serialized published-tier listing in Redis with a
// short TTL. Misses and Redis failures both read through to the database.
type ListingCache struct {
	redis *Redis
	ttl   time.Duration
}

// NewListingCache wraps a Redis handle.
func NewListingCache(r *Redis, ttl time.Duration) *ListingCache {
	return &ListingCache{redis: r, ttl: ttl}
}

// Get returns the cached listing payload, or ok=false on miss or error.
func (c *ListingCache) Get(ctx context.Context) ([]byte, bool) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return nil, false
	}
	payload, err := c.redis.Client.Get(ctx, listingCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

// Set stores the listing payload for the configured TTL.
func (c *ListingCache) Set(ctx context.Context, payload []byte) error {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return errors.New("redis client not configured")
	}
	return c.redis.Client.Set(ctx, listingCacheKey, payload, c.ttl).Err()
}

// Invalidate drops the cached listing, forcing the next read to hit the DB.
func (c *ListingCache) Invalidate(ctx context.Context) error {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return errors.New("redis client not configured")
	}
	return c.redis.Client.Del(ctx, listingCacheKey).Err()
}
