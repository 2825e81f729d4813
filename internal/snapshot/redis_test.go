package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/creationhub/internal/common"
	"github.com/dmitrijs2005/creationhub/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*RedisBackend, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	b, err := NewRedisBackend(context.Background(), RedisOptions{Addr: mr.Addr(), Prefix: "creationhub:", Timeout: time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b, mr
}

func TestRedisBackend_LoadSave(t *testing.T) {
	ctx := context.Background()
	b, mr := setupRedis(t)

	_, err := b.Load(ctx, KindIdentity)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, b.Save(ctx, KindIdentity, []byte("blob")))
	got, err := b.Load(ctx, KindIdentity)
	require.NoError(t, err)
	assert.Equal(t, "blob", string(got))

	raw, err := mr.Get("creationhub:identity")
	require.NoError(t, err)
	assert.Equal(t, "blob", raw)
}

func TestRedisBackend_Gateway(t *testing.T) {
	ctx := context.Background()
	b, mr := setupRedis(t)
	g := NewGateway(b, logging.Nop())

	want := populated(t)
	require.NoError(t, g.SaveAll(ctx, want))
	for _, k := range Kinds {
		assert.True(t, mr.Exists("creationhub:"+string(k)), k)
	}

	got, err := g.LoadAll(ctx)
	require.NoError(t, err)
	assertSameStores(t, want, got)
}

func TestRedisBackend_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = NewRedisBackend(context.Background(), RedisOptions{Addr: addr, DialTimeout: 100 * time.Millisecond})
	assert.ErrorContains(t, err, "redis ping")
}

func TestRedisBackend_LoadError(t *testing.T) {
	b, mr := setupRedis(t)
	mr.SetError("READONLY")

	_, err := b.Load(context.Background(), KindEvents)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}
