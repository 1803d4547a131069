package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
)

// Module wires the Redis client and attempt counter store.
var Module = fx.Options(
	fx.Provide(newRedisClient),
	fx.Provide(newAttemptStore),
	fx.Invoke(registerLifecycle),
)

func newRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: cfg.RedisAddress})
}

func newAttemptStore(client *redis.Client, cfg *config.Config) *AttemptStore {
	return NewAttemptStore(client, cfg.AttemptTTL)
}

func registerLifecycle(lc fx.Lifecycle, client *redis.Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
