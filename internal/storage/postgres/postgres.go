// Package postgres stores documents in a PostgreSQL table.
package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MrJamesThe3rd/spendbook/internal/storage"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Querier is satisfied by a pool, a single connection and a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ Querier = (*pgxpool.Pool)(nil)

// Migrate applies the embedded migrations to the database at connStr, a postgres:// URL.
func Migrate(connStr string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("creating migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, migrationURL(connStr))
	if err != nil {
		return fmt.Errorf("creating migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

// migrationURL switches the scheme to the one the pgx/v5 migrate driver registers.
func migrationURL(connStr string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(connStr, scheme); ok {
			return "pgx5://" + rest
		}
	}

	return connStr
}

type Backend struct {
	querier Querier
}

func New(q Querier) *Backend {
	return &Backend{querier: q}
}

func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	var value string

	err := b.querier.QueryRow(ctx, `SELECT value FROM documents WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}

		return nil, fmt.Errorf("getting document %s: %w", key, err)
	}

	return []byte(value), nil
}

func (b *Backend) Put(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO documents (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := b.querier.Exec(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("putting document %s: %w", key, err)
	}

	return nil
}
