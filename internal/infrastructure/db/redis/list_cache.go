package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix       = "list:"
	DefaultCacheTTL = 30 * time.Second
	scanBatch       = 100
)

// ListCache stores listing pages as JSON under list:<scope>:<key>. The
// generation of a scope lives under list:gen:<scope> and never expires.
type ListCache struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

// NewListCache returns a ListCache whose entries expire after ttl.
func NewListCache(rdb redis.UniversalClient, ttl time.Duration) *ListCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ListCache{rdb: rdb, ttl: ttl}
}

func cacheKey(scope, key string) string {
	return keyPrefix + scope + ":" + key
}

func scopePattern(scope string) string {
	return keyPrefix + scope + ":*"
}

func generationKey(scope string) string {
	return keyPrefix + "gen:" + scope
}

// Generation returns the current generation of scope. A scope that was never
// invalidated is at generation 0.
func (c *ListCache) Generation(ctx context.Context, scope string) (int64, error) {
	gen, err := c.rdb.Get(ctx, generationKey(scope)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache generation: %w", err)
	}
	return gen, nil
}

// Get decodes the cached page into dst. A miss is (false, nil).
func (c *ListCache) Get(ctx context.Context, scope, key string, dst any) (bool, error) {
	b, err := c.rdb.Get(ctx, cacheKey(scope, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get: %w", err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, fmt.Errorf("cache decode: %w", err)
	}
	return true, nil
}

// Set stores value for the configured TTL.
func (c *ListCache) Set(ctx context.Context, scope, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.rdb.Set(ctx, cacheKey(scope, key), b, c.ttl).Err()
}

// Invalidate advances the generation of scope, then removes its cached pages.
func (c *ListCache) Invalidate(ctx context.Context, scope string) error {
	if err := c.rdb.Incr(ctx, generationKey(scope)).Err(); err != nil {
		return fmt.Errorf("cache bump generation: %w", err)
	}

	iter := c.rdb.Scan(ctx, 0, scopePattern(scope), scanBatch).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}
