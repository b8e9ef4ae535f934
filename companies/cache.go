package companies

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"goodjob/logger"
	"goodjob/models"
)

// Cache stores lookup results. A failing cache behaves like a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]models.CompanyRecord, bool)
	Set(ctx context.Context, key string, records []models.CompanyRecord)
}

func idKey(id string) string {
	return "company:id:" + id
}

func queryKey(name string) string {
	return "company:query:" + name
}

// RedisCache keeps lookup results as JSON strings with a TTL.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisCache(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]models.CompanyRecord, bool) {
	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("company cache get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var records []models.CompanyRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		logger.Warn("company cache entry unreadable", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return records, true
}

func (c *RedisCache) Set(ctx context.Context, key string, records []models.CompanyRecord) {
	if records == nil {
		records = []models.CompanyRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Warn("company cache set failed", zap.String("key", key), zap.Error(err))
	}
}
