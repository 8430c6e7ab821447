package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"StockPulse/internal/model"
)

// RedisCache stores price histories as JSON values in Redis.
type RedisCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(ctx context.Context, addr, password string, db int) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisCache{rdb: rdb, prefix: "stockpulse:"}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (*model.PriceHistory, bool, error) {
	data, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	var h model.PriceHistory
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return &h, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, h *model.PriceHistory, ttl time.Duration) error {
	data, err := json.Marshal(h)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.prefix+key, data, ttl).Err()
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
