package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"ecotrade-marketplace/internal/config"
	"ecotrade-marketplace/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultTTL is applied when SetJSON is called with a zero expiration.
const DefaultTTL = 5 * time.Minute

// Cache wraps a redis client used for read-through caching of listing
// queries. A nil client means caching is disabled and all operations
// become no-ops, so callers never need to branch on availability.
type Cache struct {
	client *redis.Client
}

// NewCache connects to redis using the given configuration. If the
// connection cannot be established the service continues without
// caching rather than failing to start.
func NewCache(cfg config.RedisConfig) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, continuing without cache", zap.Error(err))
		return &Cache{client: nil}
	}

	logger.Info("redis cache connected", zap.String("addr", cfg.Addr()))
	return &Cache{client: client}
}

// Enabled reports whether a redis connection is available.
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// GetJSON fetches key and unmarshals it into dest. It returns false on
// a miss, on any redis error, and when caching is disabled.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if !c.Enabled() {
		return false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		logger.Warn("cache entry corrupt, dropping", zap.String("key", key), zap.Error(err))
		c.client.Del(ctx, key)
		return false
	}

	return true
}

// SetJSON stores value under key in the background so the request path
// never waits on redis.
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if !c.Enabled() {
		return
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	data, err := json.Marshal(value)
	if err != nil {
		logger.Warn("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.client.Set(bgCtx, key, data, ttl).Err(); err != nil {
			logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
		}
	}()
}

// Delete removes keys from the cache. Used to invalidate listing
// queries after a product changes.
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.Warn("cache delete failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// DeleteByPattern removes all keys matching pattern, scanning in
// batches to avoid blocking redis.
func (c *Cache) DeleteByPattern(ctx context.Context, pattern string) {
	if !c.Enabled() {
		return
	}

	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.Warn("cache scan failed", zap.String("pattern", pattern), zap.Error(err))
		return
	}

	if len(keys) > 0 {
		c.Delete(ctx, keys...)
	}
}

// Close releases the underlying redis connection.
func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}
