// Package persistence owns the Postgres connection pool used by the SQL store
// and the migrate command.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DanielPopoola/payments-gateway/internal/config"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	connectTimeout = 10 * time.Second

	uniqueViolation = "23505"
)

type DB struct {
	Pool   *pgxpool.Pool
	logger *slog.Logger
}

// Connect opens a pool and waits for the first successful ping. A database
// that does not answer within connectTimeout fails startup.
func Connect(ctx context.Context, cfg *config.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	poolCfg, err := cfg.PgxConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("build pool config: %w", err)
	}

	logger = logger.With("db_host", cfg.Host, "db_name", cfg.Name)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	logger.Info("database pool ready",
		"max_conns", poolCfg.MaxConns,
		"min_conns", poolCfg.MinConns,
	)

	return &DB{Pool: pool, logger: logger}, nil
}

func (db *DB) Close() {
	stat := db.Pool.Stat()
	db.logger.Info("closing database pool",
		"acquired_conns", stat.AcquiredConns(),
		"total_conns", stat.TotalConns(),
	)
	db.Pool.Close()
}

// IsUniqueViolation reports a primary key or unique index conflict.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
