// Package cache provides a Redis-backed cache for the dashboard stats, the
// one read surface hot enough to be worth shielding from the database.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zahintraders/poultry_trading_app/internal/dto"
)

const dashboardKey = "dashboard:stats"

type DashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDashboardCache(client *redis.Client, ttl time.Duration) *DashboardCache {
	return &DashboardCache{client: client, ttl: ttl}
}

// Get returns the cached dashboard snapshot, reporting a miss without error
// so callers can fall through to the database.
func (c *DashboardCache) Get(ctx context.Context) (*dto.DashboardResponse, bool, error) {
	val, err := c.client.Get(ctx, dashboardKey).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var resp dto.DashboardResponse
	if err := json.Unmarshal([]byte(val), &resp); err != nil {
		return nil, false, err
	}
	return &resp, true, nil
}

func (c *DashboardCache) Set(ctx context.Context, value *dto.DashboardResponse) error {
	if value == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, dashboardKey, payload, c.ttl).Err()
}

// Invalidate drops the cached snapshot. Called after writes that change the
// stats so the next dashboard read is fresh.
func (c *DashboardCache) Invalidate(ctx context.Context) error {
	err := c.client.Del(ctx, dashboardKey).Err()
	if err == redis.Nil {
		return nil
	}
	return err
}
