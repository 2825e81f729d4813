package app

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/creationhub/internal/config"
	"github.com/dmitrijs2005/creationhub/internal/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.SnapshotBackend = snapshot.BackendFile
	c.SnapshotDir = t.TempDir()
	c.LogLevel = "error"
	return c
}

func runScript(t *testing.T, c *config.Config, lines ...string) *App {
	t.Helper()

	a, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	a.in = strings.NewReader(strings.Join(lines, "\n") + "\n")
	a.out = &bytes.Buffer{}

	require.NoError(t, a.Run(context.Background()))
	return a
}

func TestApp_StoresSurviveRestart(t *testing.T) {
	c := testConfig(t)

	runScript(t, c, "trial guest", "exit")

	a, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.backend.Close() })

	_, err = a.stores.Users.IDByUsername("guest")
	assert.NoError(t, err)
}

func TestApp_CancelledContextStillSaves(t *testing.T) {
	c := testConfig(t)

	a, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	a.in = strings.NewReader("")
	a.out = &bytes.Buffer{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, a.Run(ctx))

	fb, err := snapshot.NewFileBackend(c.SnapshotDir)
	require.NoError(t, err)
	_, err = fb.Load(context.Background(), snapshot.KindIdentity)
	assert.NoError(t, err)
}

func TestNewApp_UnknownBackend(t *testing.T) {
	c := testConfig(t)
	c.SnapshotBackend = "tape"

	_, err := NewApp(context.Background(), c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown snapshot backend")
}
