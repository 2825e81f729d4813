package snapshot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/creationhub/internal/dbx"
	"github.com/dmitrijs2005/creationhub/internal/snapshot/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
)

var postgresQueries = queries{
	load: `SELECT payload FROM snapshots WHERE kind = $1`,
	save: `
		INSERT INTO snapshots (kind, payload, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (kind) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()
	`,
}

// OpenPostgres connects through pgx and migrates the database.
func OpenPostgres(ctx context.Context, dsn string) (*SQLBackend, error) {
	db, err := dbx.Open(ctx, "pgx", dsn)
	if err != nil {
		return nil, err
	}

	b, err := NewPostgresBackend(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return b, nil
}

// NewPostgresBackend migrates db and wraps it.
func NewPostgresBackend(ctx context.Context, db *sql.DB) (*SQLBackend, error) {
	if err := runMigrations(ctx, db, "pgx", migrations.PostgresDir); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return &SQLBackend{db: db, q: postgresQueries}, nil
}
