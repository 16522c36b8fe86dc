package cache

import (
	"context"
	"fmt"
	"time"
)

// NewCache creates a cache for the configured type. An empty type falls back
// to the no-op cache so the service can run without Redis.
func NewCache(ctx context.Context, cfg RedisConfig) (Cache, error) {
	switch cfg.Type {
	case "redis":
		c, err := NewRedisCache(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis cache: %w", err)
		}
		return c, nil
	case "", "none", "noop":
		return NewNoopCache(), nil
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.Type)
	}
}

// NoopCache is a cache that stores nothing. Every Get misses.
type NoopCache struct{}

// NewNoopCache creates a new NoopCache
func NewNoopCache() *NoopCache {
	return &NoopCache{}
}

// Get always reports a miss
func (c *NoopCache) Get(ctx context.Context, key string, value interface{}) error {
	return ErrNotFound
}

// Set discards the value
func (c *NoopCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

// Delete is a no-op
func (c *NoopCache) Delete(ctx context.Context, key string) error { return nil }

// Exists always reports absent
func (c *NoopCache) Exists(ctx context.Context, key string) (bool, error) { return false, nil }

// Flush is a no-op
func (c *NoopCache) Flush(ctx context.Context) error { return nil }

// Close is a no-op
func (c *NoopCache) Close() error { return nil }
