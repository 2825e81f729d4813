package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/creationhub/internal/common"
	"github.com/dmitrijs2005/creationhub/internal/filex"
)

// FileBackend stores each kind as <dir>/<kind>.json.
type FileBackend struct {
	dir string
}

// NewFileBackend creates dir if it does not exist.
func NewFileBackend(dir string) (*FileBackend, error) {
	if dir == "" {
		dir = "data"
	}
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error preparing snapshot dir: %w", err)
	}
	return &FileBackend{dir: abs}, nil
}

func (b *FileBackend) path(kind Kind) string {
	return filepath.Join(b.dir, string(kind)+".json")
}

func (b *FileBackend) Load(_ context.Context, kind Kind) ([]byte, error) {
	blob, err := os.ReadFile(b.path(kind))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", kind, err)
	}
	return blob, nil
}

func (b *FileBackend) Save(_ context.Context, kind Kind, blob []byte) error {
	return filex.WriteFileAtomic(b.path(kind), blob)
}

func (b *FileBackend) Close() error { return nil }
