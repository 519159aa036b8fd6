package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sparkd/inventory-manager/internal/models"
)

// metricsKey is the single Redis key holding the aggregated metrics payload.
const metricsKey = "metrics:categories"

// MetricsCache caches the per-category inventory metrics for a short TTL.
// Metrics are recomputed over the whole catalogue on every read, so shaving
// repeated aggregations between mutations is worthwhile.
type MetricsCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewMetricsCache creates a new MetricsCache.
func NewMetricsCache(redis *RedisClient, ttl time.Duration) *MetricsCache {
	return &MetricsCache{redis: redis, ttl: ttl}
}

// Get returns the cached metrics, or (nil, nil) on a cache miss.
func (c *MetricsCache) Get(ctx context.Context) ([]models.CategoryInventorySummary, error) {
	raw, err := c.redis.Get(ctx, metricsKey)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var out []models.CategoryInventorySummary
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to decode cached metrics: %w", err)
	}
	return out, nil
}

// Set stores the metrics payload with the configured TTL.
func (c *MetricsCache) Set(ctx context.Context, metrics []models.CategoryInventorySummary) error {
	raw, err := json.Marshal(metrics)
	if err != nil {
		return fmt.Errorf("failed to encode metrics: %w", err)
	}
	return c.redis.Set(ctx, metricsKey, string(raw), c.ttl)
}

// Invalidate drops the cached metrics; called after any product mutation.
func (c *MetricsCache) Invalidate(ctx context.Context) error {
	return c.redis.Delete(ctx, metricsKey)
}
