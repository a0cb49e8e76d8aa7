package database_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendbook/internal/config"
	"github.com/MrJamesThe3rd/spendbook/internal/database"
	"github.com/MrJamesThe3rd/spendbook/internal/storage"
)

func TestOpen(t *testing.T) {
	type testCase struct {
		name   string
		driver string
	}

	tests := []testCase{
		{name: "Memory", driver: config.DriverMemory},
		{name: "File", driver: config.DriverFile},
		{name: "SQLite", driver: config.DriverSQLite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()

			var cfg config.Config
			cfg.Storage.Driver = tt.driver
			cfg.Storage.Dir = dir
			cfg.Storage.SQLitePath = filepath.Join(dir, "spendbook.db")

			ctx := context.Background()

			backend, closeFn, err := database.Open(ctx, &cfg)
			require.NoError(t, err)
			defer closeFn()

			_, err = backend.Get(ctx, storage.KeyExpenses)
			assert.ErrorIs(t, err, storage.ErrNotFound)

			require.NoError(t, backend.Put(ctx, storage.KeyExpenses, []byte(`[]`)))

			got, err := backend.Get(ctx, storage.KeyExpenses)
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(got))
		})
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	var cfg config.Config
	cfg.Storage.Driver = "etcd"

	_, _, err := database.Open(context.Background(), &cfg)
	assert.ErrorContains(t, err, "unknown storage driver")
}
