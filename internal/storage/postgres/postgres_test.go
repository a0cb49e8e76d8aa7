package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendbook/internal/storage"
	"github.com/MrJamesThe3rd/spendbook/internal/storage/postgres"
)

const (
	selectQuery = `SELECT value FROM documents WHERE key = \$1`
	upsertQuery = `INSERT INTO documents \(key, value, updated_at\)`
)

func TestBackend_Get(t *testing.T) {
	ctx := context.Background()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	b := postgres.New(mock)

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(selectQuery).
			WithArgs(storage.KeyBudgets).
			WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow(`{"food":500}`))

		got, err := b.Get(ctx, storage.KeyBudgets)
		require.NoError(t, err)
		assert.Equal(t, `{"food":500}`, string(got))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(selectQuery).
			WithArgs(storage.KeyExpenses).
			WillReturnError(pgx.ErrNoRows)

		_, err := b.Get(ctx, storage.KeyExpenses)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		dbErr := errors.New("connection reset")
		mock.ExpectQuery(selectQuery).
			WithArgs(storage.KeyExpenses).
			WillReturnError(dbErr)

		_, err := b.Get(ctx, storage.KeyExpenses)
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, storage.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBackend_Put(t *testing.T) {
	ctx := context.Background()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	b := postgres.New(mock)

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(upsertQuery).
			WithArgs(storage.KeyExpenses, `[]`).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		assert.NoError(t, b.Put(ctx, storage.KeyExpenses, []byte(`[]`)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		dbErr := errors.New("read-only transaction")
		mock.ExpectExec(upsertQuery).
			WithArgs(storage.KeyExpenses, `[]`).
			WillReturnError(dbErr)

		err := b.Put(ctx, storage.KeyExpenses, []byte(`[]`))
		assert.ErrorIs(t, err, dbErr)
		assert.Contains(t, err.Error(), "putting document expenses")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
