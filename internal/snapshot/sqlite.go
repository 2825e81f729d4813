package snapshot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/creationhub/internal/dbx"
	"github.com/dmitrijs2005/creationhub/internal/snapshot/migrations"
	_ "modernc.org/sqlite"
)

var sqliteQueries = queries{
	load: `SELECT payload FROM snapshots WHERE kind = ?`,
	save: `
		INSERT INTO snapshots (kind, payload, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(kind) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP
	`,
}

// OpenSQLite opens a SQLite database and migrates it.
func OpenSQLite(ctx context.Context, dsn string) (*SQLBackend, error) {
	db, err := dbx.Open(ctx, "sqlite", dsn)
	if err != nil {
		return nil, err
	}

	b, err := NewSQLiteBackend(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return b, nil
}

// NewSQLiteBackend migrates db and wraps it.
func NewSQLiteBackend(ctx context.Context, db *sql.DB) (*SQLBackend, error) {
	if err := runMigrations(ctx, db, "sqlite3", migrations.SQLiteDir); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return &SQLBackend{db: db, q: sqliteQueries}, nil
}
