package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendbook/internal/storage"
	"github.com/MrJamesThe3rd/spendbook/internal/storage/memory"
)

func TestBackend_CopiesValues(t *testing.T) {
	ctx := context.Background()
	b := memory.New()

	_, err := b.Get(ctx, storage.KeyBudgets)
	require.ErrorIs(t, err, storage.ErrNotFound)

	value := []byte(`{"food":1}`)
	require.NoError(t, b.Put(ctx, storage.KeyBudgets, value))
	value[2] = 'X'

	got, err := b.Get(ctx, storage.KeyBudgets)
	require.NoError(t, err)
	assert.Equal(t, `{"food":1}`, string(got))
}
