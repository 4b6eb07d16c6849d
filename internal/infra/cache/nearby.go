package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"parkbroker/internal/pkg/config"
	"parkbroker/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
)

// Both implementations satisfy queries.NearbyCache; cache failures degrade
// to misses so search never depends on redis.
var (
	_ queries.NearbyCache = (*RedisNearbyCache)(nil)
	_ queries.NearbyCache = (*NoopNearbyCache)(nil)
)

func Connect(cfg config.RedisConfig) (*redis.Client, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

type RedisNearbyCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisNearbyCache(client *redis.Client, ttl time.Duration) *RedisNearbyCache {
	return &RedisNearbyCache{client: client, ttl: ttl}
}

func (c *RedisNearbyCache) Get(ctx context.Context, p queries.NearbyParams) ([]*queries.NearbySpotView, bool, error) {
	raw, err := c.client.Get(ctx, nearbyKey(p)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		slog.Warn("nearby cache read failed", "error", err.Error())
		return nil, false, nil
	}

	var results []*queries.NearbySpotView
	if err := json.Unmarshal(raw, &results); err != nil {
		slog.Warn("nearby cache entry corrupt, ignoring", "error", err.Error())
		return nil, false, nil
	}
	return results, true, nil
}

func (c *RedisNearbyCache) Set(ctx context.Context, p queries.NearbyParams, results []*queries.NearbySpotView) error {
	raw, err := json.Marshal(results)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, nearbyKey(p), raw, c.ttl).Err(); err != nil {
		slog.Warn("nearby cache write failed", "error", err.Error())
	}
	return nil
}

// Coordinates are rounded to ~11m so close-by searches share an entry.
func nearbyKey(p queries.NearbyParams) string {
	return fmt.Sprintf("nearby:%.4f:%.4f:%.0f:%d", p.Latitude, p.Longitude, p.RadiusM, p.Limit)
}

// NoopNearbyCache is used when no redis address is configured.
type NoopNearbyCache struct{}

func NewNoopNearbyCache() *NoopNearbyCache {
	return &NoopNearbyCache{}
}

func (NoopNearbyCache) Get(context.Context, queries.NearbyParams) ([]*queries.NearbySpotView, bool, error) {
	return nil, false, nil
}

func (NoopNearbyCache) Set(context.Context, queries.NearbyParams, []*queries.NearbySpotView) error {
	return nil
}
