package database

import (
	"context"
	"fmt"
	"time"

	"listing-search/pkg/logger"
	"listing-search/pkg/metrics"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnectPostgres opens a pgx pool for dsn and pings it.
func ConnectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, fmt.Errorf("POSTGRES_DSN configuration is required")
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	poolConfig.MaxConns = 20
	poolConfig.MaxConnIdleTime = 5 * time.Minute

	start := time.Now()
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		metrics.DatabaseErrorsTotal.WithLabelValues("connect", "").Inc()
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		metrics.DatabaseErrorsTotal.WithLabelValues("ping", "").Inc()
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	metrics.DatabaseOperationDuration.WithLabelValues("connect", "").Observe(time.Since(start).Seconds())

	logger.GlobalLogger.Println("PostgreSQL connected successfully.")
	return pool, nil
}

func ClosePostgres(pool *pgxpool.Pool) {
	if pool == nil {
		return
	}
	pool.Close()
	logger.GlobalLogger.Println("PostgreSQL pool closed")
}
