package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"anganwadi/db"
	"anganwadi/model"

	"github.com/redis/go-redis/v9"
)

const (
	programListKey    = "programs:all"
	dashboardStatsKey = "dashboard:stats"

	cacheTTL = 5 * time.Minute
)

// GetPrograms returns the cached program list, or (nil, nil) on a cache
// miss or when Redis is not connected.
func GetPrograms(ctx context.Context) ([]*model.Program, error) {
	if db.RedisClient == nil {
		return nil, nil
	}

	data, err := db.RedisClient.Get(ctx, programListKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached programs: %w", err)
	}

	var programs []*model.Program
	if err := json.Unmarshal(data, &programs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached programs: %w", err)
	}

	return programs, nil
}

// SetPrograms stores the program list with a short TTL. No-op without Redis.
func SetPrograms(ctx context.Context, programs []*model.Program) error {
	if db.RedisClient == nil {
		return nil
	}

	data, err := json.Marshal(programs)
	if err != nil {
		return fmt.Errorf("failed to marshal programs for cache: %w", err)
	}

	if err := db.RedisClient.Set(ctx, programListKey, data, cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache programs: %w", err)
	}

	return nil
}

// GetStats returns cached dashboard stats, or (nil, nil) on a miss or
// when Redis is not connected.
func GetStats(ctx context.Context) (*model.DashboardStats, error) {
	if db.RedisClient == nil {
		return nil, nil
	}

	data, err := db.RedisClient.Get(ctx, dashboardStatsKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached stats: %w", err)
	}

	stats := &model.DashboardStats{}
	if err := json.Unmarshal(data, stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached stats: %w", err)
	}

	return stats, nil
}

// SetStats stores dashboard stats with a short TTL. No-op without Redis.
func SetStats(ctx context.Context, stats *model.DashboardStats) error {
	if db.RedisClient == nil {
		return nil
	}

	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats for cache: %w", err)
	}

	if err := db.RedisClient.Set(ctx, dashboardStatsKey, data, cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache stats: %w", err)
	}

	return nil
}

// InvalidatePrograms drops the cached program list and dashboard stats.
// Called after every mutation so readers never see stale records. No-op
// without Redis.
func InvalidatePrograms(ctx context.Context) error {
	if db.RedisClient == nil {
		return nil
	}

	if err := db.RedisClient.Del(ctx, programListKey, dashboardStatsKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate program cache: %w", err)
	}

	return nil
}
