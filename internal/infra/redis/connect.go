package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/vogiaan1904/swiftseats/config"
	"github.com/vogiaan1904/swiftseats/pkg/logger"
	pkgRedis "github.com/vogiaan1904/swiftseats/pkg/redis"
)

func Connect(ctx context.Context, l logger.Logger, cfg config.RedisConfig) (*redis.Client, error) {
	cli := pkgRedis.NewClient(cfg)

	if err := cli.Ping(ctx).Err(); err != nil {
		_ = cli.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	l.Infof(ctx, "infra.redis.Connect: connected to %s", cfg.Addr)

	return cli, nil
}

func Disconnect(ctx context.Context, l logger.Logger, cli *redis.Client) {
	if cli == nil {
		return
	}

	if err := cli.Close(); err != nil {
		l.Warnf(ctx, "infra.redis.Disconnect: %v", err)
		return
	}

	l.Info(ctx, "infra.redis.Disconnect: connection closed")
}
