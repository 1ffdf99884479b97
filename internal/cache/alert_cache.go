package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/biocom/playauto-go/internal/config"
	"github.com/biocom/playauto-go/internal/domain"
)

const alertsKey = "alerts:latest"

// AlertCache holds the most recent full evaluation result. Alerts are
// recomputed on every evaluation, so a short TTL is all the invalidation
// the cache needs; Invalidate exists for write paths that change inputs.
type AlertCache interface {
	Get(ctx context.Context) ([]domain.Alert, bool, error)
	Set(ctx context.Context, alerts []domain.Alert) error
	Invalidate(ctx context.Context) error
}

type redisAlertCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopAlertCache struct{}

func NewAlertCache(cfg config.CacheConfig) (AlertCache, error) {
	if !cfg.Enabled {
		return &noopAlertCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisAlertCache{client: client, ttl: ttl}, nil
}

func NewNoopAlertCache() AlertCache {
	return &noopAlertCache{}
}

func (c *redisAlertCache) Get(ctx context.Context) ([]domain.Alert, bool, error) {
	payload, err := c.client.Get(ctx, alertsKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var alerts []domain.Alert
	if err := json.Unmarshal(payload, &alerts); err != nil {
		return nil, false, fmt.Errorf("decode alert cache: %w", err)
	}

	return alerts, true, nil
}

func (c *redisAlertCache) Set(ctx context.Context, alerts []domain.Alert) error {
	payload, err := json.Marshal(alerts)
	if err != nil {
		return fmt.Errorf("encode alert cache: %w", err)
	}

	if err := c.client.Set(ctx, alertsKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisAlertCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, alertsKey).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (n *noopAlertCache) Get(ctx context.Context) ([]domain.Alert, bool, error) {
	return nil, false, nil
}

func (n *noopAlertCache) Set(ctx context.Context, alerts []domain.Alert) error {
	return nil
}

func (n *noopAlertCache) Invalidate(ctx context.Context) error {
	return nil
}
