package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ticket-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache is a best-effort JSON cache over Redis. Failures are logged and
// swallowed so a Redis outage never fails a request.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func New(config utils.RedisConfig, ttl time.Duration, log *zap.Logger) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewWithClient(client, ttl, log), nil
}

// NewWithClient wraps an existing client, used by tests with redismock.
func NewWithClient(client *redis.Client, ttl time.Duration, log *zap.Logger) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		log:    log.With(zap.String("component", "cache")),
	}
}

// Get unmarshals the cached value into dest and reports whether it was found.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.log.Warn("Cache get failed", zap.Error(err), zap.String("key", key))
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.log.Warn("Cache entry corrupt", zap.Error(err), zap.String("key", key))
		c.Del(ctx, key)
		return false
	}

	return true
}

func (c *Cache) Set(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("Cache marshal failed", zap.Error(err), zap.String("key", key))
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn("Cache set failed", zap.Error(err), zap.String("key", key))
	}
}

func (c *Cache) Del(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("Cache delete failed", zap.Error(err), zap.Strings("keys", keys))
	}
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// EventStatsKey is the cache key for one event's stats/availability snapshot.
// Booking writes for the event must invalidate it.
func EventStatsKey(eventID string) string {
	return "event_stats:" + eventID
}
