package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendbook/internal/storage"
	"github.com/MrJamesThe3rd/spendbook/internal/storage/file"
)

func TestBackend(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "data")

	b, err := file.New(dir)
	require.NoError(t, err)

	_, err = b.Get(ctx, storage.KeyExpenses)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, b.Put(ctx, storage.KeyExpenses, []byte(`[]`)))
	require.NoError(t, b.Put(ctx, storage.KeyExpenses, []byte(`[{"id":1}]`)))

	got, err := b.Get(ctx, storage.KeyExpenses)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "expenses.json", entries[0].Name())
}
