// Package memory is a process-local storage backend.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/MrJamesThe3rd/spendbook/internal/storage"
)

type Backend struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func New() *Backend {
	return &Backend{docs: make(map[string][]byte)}
}

func (b *Backend) Get(_ context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, ok := b.docs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}

	return slices.Clone(data), nil
}

func (b *Backend) Put(_ context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.docs[key] = slices.Clone(value)

	return nil
}
