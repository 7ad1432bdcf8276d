package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iamasit07/clash-of-dots/backend/internal/domain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const statsKey = "stats:aggregate"

// NewClient connects to Redis. A failed ping returns a nil client and no error,
// since the cache is optional and the stats store works without it.
func NewClient(ctx context.Context, addr, password string, log *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("could not connect to redis, stats cache disabled", zap.String("addr", addr), zap.Error(err))
		client.Close()
		return nil
	}

	log.Info("redis connected", zap.String("addr", addr))
	return client
}

// StatsCache stores the aggregate stats snapshot as JSON with a TTL.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, ttl: ttl}
}

// Load reports ok=false on a cache miss.
func (c *StatsCache) Load(ctx context.Context) (domain.Stats, bool, error) {
	data, err := c.client.Get(ctx, statsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Stats{}, false, nil
	}
	if err != nil {
		return domain.Stats{}, false, err
	}

	var stats domain.Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		return domain.Stats{}, false, fmt.Errorf("decoding cached stats: %w", err)
	}
	return stats, true, nil
}

func (c *StatsCache) Store(ctx context.Context, stats domain.Stats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, statsKey, data, c.ttl).Err()
}

func (c *StatsCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, statsKey).Err()
}
