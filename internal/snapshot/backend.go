// Package snapshot persists the four stores as independent whole-store
// blobs. A Backend only moves bytes per Kind; the Gateway encodes stores as
// JSON and rebuilds them, yielding empty stores for kinds never saved.
package snapshot

import (
	"context"
	"fmt"
)

// Kind names one persisted store.
type Kind string

const (
	KindIdentity   Kind = "identity"
	KindContainers Kind = "containers"
	KindEvents     Kind = "events"
	KindMessages   Kind = "messages"
)

// Kinds lists every store kind in save order.
var Kinds = []Kind{KindIdentity, KindContainers, KindEvents, KindMessages}

// Backend stores one blob per kind. Load returns common.ErrorNotFound when
// the kind was never saved.
type Backend interface {
	Load(ctx context.Context, kind Kind) ([]byte, error)
	Save(ctx context.Context, kind Kind, blob []byte) error
	Close() error
}

// batchSaver is implemented by backends that can write all kinds in one
// transaction.
type batchSaver interface {
	SaveBatch(ctx context.Context, blobs map[Kind][]byte) error
}

// Backend names accepted by Open.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// Options selects and configures a backend for Open.
type Options struct {
	Backend     string
	Dir         string
	SQLiteDSN   string
	PostgresDSN string
	S3          S3Options
	Redis       RedisOptions
}

// Open builds the backend named by opts.Backend.
func Open(ctx context.Context, opts Options) (Backend, error) {
	switch opts.Backend {
	case BackendFile, "":
		return NewFileBackend(opts.Dir)
	case BackendSQLite:
		return OpenSQLite(ctx, opts.SQLiteDSN)
	case BackendPostgres:
		return OpenPostgres(ctx, opts.PostgresDSN)
	case BackendS3:
		return NewS3Backend(ctx, opts.S3)
	case BackendRedis:
		return NewRedisBackend(ctx, opts.Redis)
	case BackendMemory:
		return NewMemoryBackend(), nil
	}
	return nil, fmt.Errorf("unknown snapshot backend %q", opts.Backend)
}
