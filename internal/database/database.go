// Package database opens the storage backend selected by configuration.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MrJamesThe3rd/spendbook/internal/config"
	"github.com/MrJamesThe3rd/spendbook/internal/storage"
	"github.com/MrJamesThe3rd/spendbook/internal/storage/file"
	"github.com/MrJamesThe3rd/spendbook/internal/storage/memory"
	"github.com/MrJamesThe3rd/spendbook/internal/storage/postgres"
	"github.com/MrJamesThe3rd/spendbook/internal/storage/sqlite"
)

// NewPool connects to PostgreSQL and verifies the connection.
func NewPool(ctx context.Context, connStr string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	poolCfg.MaxConns = 25
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return pool, nil
}

// Open returns the backend for cfg.Storage.Driver and a function releasing its resources.
func Open(ctx context.Context, cfg *config.Config) (storage.Backend, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return memory.New(), func() {}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}

		return sqlite.New(db), func() { db.Close() }, nil

	case config.DriverPostgres:
		if err := postgres.Migrate(cfg.ConnectionString()); err != nil {
			return nil, nil, err
		}

		pool, err := NewPool(ctx, cfg.ConnectionString())
		if err != nil {
			return nil, nil, err
		}

		return postgres.New(pool), pool.Close, nil

	case config.DriverFile:
		b, err := file.New(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, err
		}

		return b, func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
