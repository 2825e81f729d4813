package snapshot

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/creationhub/internal/common"
)

// MemoryBackend keeps blobs for the life of the process.
type MemoryBackend struct {
	mu    sync.RWMutex
	blobs map[Kind][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{blobs: make(map[Kind][]byte)}
}

func (b *MemoryBackend) Load(_ context.Context, kind Kind) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	blob, ok := b.blobs[kind]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return slices.Clone(blob), nil
}

func (b *MemoryBackend) Save(_ context.Context, kind Kind, blob []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blobs[kind] = slices.Clone(blob)
	return nil
}

func (b *MemoryBackend) Close() error { return nil }
