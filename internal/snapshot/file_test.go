package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/creationhub/internal/common"
	"github.com/dmitrijs2005/creationhub/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileBackend_LoadSave(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "snapshots")

	b, err := NewFileBackend(dir)
	require.NoError(t, err)

	_, err = b.Load(ctx, KindIdentity)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, b.Save(ctx, KindIdentity, []byte(`{"users":[]}`)))
	got, err := b.Load(ctx, KindIdentity)
	require.NoError(t, err)
	assert.JSONEq(t, `{"users":[]}`, string(got))
	assert.FileExists(t, filepath.Join(dir, "identity.json"))
}

func TestFileBackend_LoadError(t *testing.T) {
	dir := t.TempDir()
	b, err := NewFileBackend(dir)
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "events.json"), 0o700))

	_, err = b.Load(context.Background(), KindEvents)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}

func TestFileBackend_Gateway(t *testing.T) {
	ctx := context.Background()
	b, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)
	g := NewGateway(b, logging.Nop())

	want := populated(t)
	require.NoError(t, g.SaveAll(ctx, want))
	got, err := g.LoadAll(ctx)
	require.NoError(t, err)
	assertSameStores(t, want, got)
}
