package bootstrap

import (
	"context"

	"parkbroker/internal/infra/cache"
	"parkbroker/internal/pkg/config"
	"parkbroker/internal/usecase/queries"

	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewNearbyCache,
	),
)

// NewNearbyCache wires the redis-backed search cache when an address is
// configured and a no-op cache otherwise, so redis stays optional.
func NewNearbyCache(lc fx.Lifecycle, cfg config.Config) (queries.NearbyCache, error) {
	if cfg.Redis.Addr == "" {
		return cache.NewNoopNearbyCache(), nil
	}

	client, cleanup, err := cache.Connect(cfg.Redis)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return cache.NewRedisNearbyCache(client, cfg.Redis.TTL), nil
}
