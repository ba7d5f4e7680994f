package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"allure-backend/models"

	"github.com/redis/go-redis/v9"
)

const settingsCacheKey = "allure:settings"

// RedisSettingsCache keeps the settings row in redis between requests.
type RedisSettingsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSettingsCache(rdb *redis.Client, ttl time.Duration) *RedisSettingsCache {
	return &RedisSettingsCache{rdb: rdb, ttl: ttl}
}

// Get returns nil without error on a cache miss.
func (c *RedisSettingsCache) Get(ctx context.Context) (*models.BoutiqueSettings, error) {
	raw, err := c.rdb.Get(ctx, settingsCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s models.BoutiqueSettings
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *RedisSettingsCache) Set(ctx context.Context, s *models.BoutiqueSettings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, settingsCacheKey, raw, c.ttl).Err()
}

func (c *RedisSettingsCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, settingsCacheKey).Err()
}
