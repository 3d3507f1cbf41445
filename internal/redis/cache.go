// Package redis holds the optional translation cache. Everything here is
// best-effort: a dead cache never fails a request.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/omar-p/duet-call/config"
	"github.com/omar-p/duet-call/internal/translate"
)

const cacheTTL = 24 * time.Hour

// Cache stores pipeline results keyed by request hash.
type Cache struct {
	client *redis.Client
	log    *slog.Logger
}

// Connect opens the client and verifies the connection.
func Connect(cfg config.RedisConfig, log *slog.Logger) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &Cache{client: client, log: log}, nil
}

// Close releases the underlying connection.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Get reports a cached result. Lookup failures count as misses.
func (c *Cache) Get(ctx context.Context, key string) (translate.CachedResult, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("cache lookup failed", "error", err)
		}
		return translate.CachedResult{}, false
	}
	var val translate.CachedResult
	if err := json.Unmarshal(data, &val); err != nil {
		c.log.Warn("cache entry corrupt, ignoring", "key", key)
		return translate.CachedResult{}, false
	}
	return val, true
}

// Set stores a result for a day. Failures are logged and dropped.
func (c *Cache) Set(ctx context.Context, key string, val translate.CachedResult) {
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, cacheTTL).Err(); err != nil {
		c.log.Warn("cache store failed", "error", err)
	}
}
