package snapshot

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/creationhub/internal/common"
	"github.com/dmitrijs2005/creationhub/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupSQLite(t *testing.T, name string) *SQLBackend {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	b, err := NewSQLiteBackend(context.Background(), db)
	require.NoError(t, err)
	return b
}

func TestSQLiteBackend_LoadSave(t *testing.T) {
	ctx := context.Background()
	b := setupSQLite(t, "snapshot_load_save")

	_, err := b.Load(ctx, KindMessages)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, b.Save(ctx, KindMessages, []byte("one")))
	require.NoError(t, b.Save(ctx, KindMessages, []byte("two")))

	got, err := b.Load(ctx, KindMessages)
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))
}

func TestSQLiteBackend_Gateway(t *testing.T) {
	ctx := context.Background()
	g := NewGateway(setupSQLite(t, "snapshot_gateway"), logging.Nop())

	want := populated(t)
	require.NoError(t, g.SaveAll(ctx, want))
	got, err := g.LoadAll(ctx)
	require.NoError(t, err)
	assertSameStores(t, want, got)
}

func TestSQLiteBackend_MigrationsIdempotent(t *testing.T) {
	b := setupSQLite(t, "snapshot_migrate_twice")

	_, err := NewSQLiteBackend(context.Background(), b.db)
	assert.NoError(t, err)
}

func TestOpenSQLite_FileSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "creationhub.db")

	b, err := OpenSQLite(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, b.Save(ctx, KindIdentity, []byte(`{"users":[]}`)))
	require.NoError(t, b.Close())

	b, err = OpenSQLite(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	got, err := b.Load(ctx, KindIdentity)
	require.NoError(t, err)
	assert.JSONEq(t, `{"users":[]}`, string(got))
}
