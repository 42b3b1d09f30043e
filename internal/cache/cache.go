// Package cache is a JSON read-through cache over Redis. Concurrent misses
// for the same key share a single load.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lordsmint/portal-api/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const keyPrefix = "portal:"

// Observer counts lookups by result: hit, miss or error
type Observer interface {
	ObserveCache(result string)
}

// Cache wraps an optional Redis client. With a nil client every fetch goes
// straight to the loader (still collapsed per key).
type Cache struct {
	client   *redis.Client
	ttl      time.Duration
	logger   *zap.Logger
	observer Observer
	group    singleflight.Group
}

// NewRedisClient connects to Redis, or returns nil when no address is configured
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// New creates a cache; client may be nil
func New(client *redis.Client, ttl time.Duration, logger *zap.Logger, observer Observer) *Cache {
	return &Cache{client: client, ttl: ttl, logger: logger, observer: observer}
}

// Enabled reports whether results are stored in Redis
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// Key joins parts into a namespaced cache key
func Key(parts ...string) string {
	return keyPrefix + strings.Join(parts, ":")
}

// FetchJSON fills dest from the cache, or from loader on a miss. Redis
// failures are logged and fall through to the loader.
func (c *Cache) FetchJSON(ctx context.Context, key string, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	if loader == nil {
		return errors.New("cache: loader required")
	}

	if c.Enabled() {
		payload, err := c.client.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			c.observe("hit")
			return json.Unmarshal(payload, dest)
		case errors.Is(err, redis.Nil):
			c.observe("miss")
		default:
			c.observe("error")
			c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	ch := c.group.DoChan(key, func() (interface{}, error) {
		// The shared load must outlive whichever caller started it
		value, err := loader(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("cache: encode %s: %w", key, err)
		}
		c.store(ctx, key, raw)
		return raw, nil
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return res.Err
		}
		return json.Unmarshal(res.Val.([]byte), dest)
	}
}

// Invalidate removes keys; a disabled cache ignores the call
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if !c.Enabled() || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *Cache) store(ctx context.Context, key string, raw []byte) {
	if !c.Enabled() {
		return
	}
	if err := c.client.Set(context.WithoutCancel(ctx), key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) observe(result string) {
	if c.observer != nil {
		c.observer.ObserveCache(result)
	}
}
