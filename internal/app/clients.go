package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/anish9011/plant/internal/clients/redis"
	"github.com/anish9011/plant/internal/platform/logger"
)

type Clients struct {
	Redis        *goredis.Client
	ProductCache *redis.ProductCache
}

func wireClients(ctx context.Context, log *logger.Logger, cfg *Config) (Clients, error) {
	log.Info("Wiring clients...")
	if !cfg.Redis.Enabled() {
		log.Info("redis not configured; product cache disabled")
		return Clients{}, nil
	}
	rdb, err := redis.NewClient(ctx, log, cfg.Redis)
	if err != nil {
		return Clients{}, fmt.Errorf("init redis: %w", err)
	}
	return Clients{
		Redis:        rdb,
		ProductCache: redis.NewProductCache(log, rdb, cfg.Redis),
	}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
