package redis

import (
	"github.com/redis/go-redis/v9"
	"github.com/vogiaan1904/swiftseats/config"
)

const clientName = "swiftseats-booking"

func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:                  cfg.Addr,
		Password:              cfg.Password,
		DB:                    cfg.DB,
		MaxRetries:            cfg.MaxRetries,
		PoolSize:              cfg.PoolSize,
		MinIdleConns:          cfg.MinIdleConns,
		ClientName:            clientName,
		ContextTimeoutEnabled: true,
	})
}
