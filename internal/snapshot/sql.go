package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/creationhub/internal/common"
	"github.com/dmitrijs2005/creationhub/internal/dbx"
	"github.com/dmitrijs2005/creationhub/internal/snapshot/migrations"
	"github.com/pressly/goose/v3"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// runMigrations applies the embedded migrations of one dialect.
func runMigrations(ctx context.Context, db *sql.DB, dialect, dir string) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, dir)
}

type queries struct {
	load string
	save string
}

// SQLBackend keeps blobs in a snapshots table keyed by kind.
type SQLBackend struct {
	db *sql.DB
	q  queries
}

func (b *SQLBackend) Load(ctx context.Context, kind Kind) ([]byte, error) {
	var blob []byte
	err := b.db.QueryRowContext(ctx, b.q.load, string(kind)).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return blob, nil
}

func (b *SQLBackend) Save(ctx context.Context, kind Kind, blob []byte) error {
	return b.save(ctx, b.db, kind, blob)
}

// SaveBatch writes all blobs in one transaction.
func (b *SQLBackend) SaveBatch(ctx context.Context, blobs map[Kind][]byte) error {
	return dbx.WithTx(ctx, b.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, kind := range Kinds {
			blob, ok := blobs[kind]
			if !ok {
				continue
			}
			if err := b.save(ctx, tx, kind, blob); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *SQLBackend) save(ctx context.Context, db dbx.DBTX, kind Kind, blob []byte) error {
	if _, err := db.ExecContext(ctx, b.q.save, string(kind), blob); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (b *SQLBackend) Close() error {
	return b.db.Close()
}
