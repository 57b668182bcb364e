package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vogiaan1904/swiftseats/config"
	"github.com/vogiaan1904/swiftseats/migrations"
	"github.com/vogiaan1904/swiftseats/pkg/logger"
	pkgPostgres "github.com/vogiaan1904/swiftseats/pkg/postgres"
)

// Connect opens the pool and brings the schema up to date.
func Connect(ctx context.Context, l logger.Logger, cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	pool, err := pkgPostgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	if err := migrations.Apply(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	l.Info(ctx, "infra.postgres.Connect: connected, migrations applied")

	return pool, nil
}

func Disconnect(ctx context.Context, l logger.Logger, pool *pgxpool.Pool) {
	if pool == nil {
		return
	}

	pool.Close()

	l.Info(ctx, "infra.postgres.Disconnect: pool closed")
}
