package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Setenv("CREATIONHUB_CONFIG", "")

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"snapshot_backend": "s3",
		"snapshot_dir":     "snaps",
		"postgres_dsn":     "pg",
		"s3_access_key":    "user",
		"s3_secret_key":    "password",
		"s3_bucket":        "bucket",
		"s3_region":        "region",
		"s3_base_endpoint": "base_endpoint",
		"s3_prefix":        "prefix",
		"redis_addr":       "redis:6379",
		"redis_db":         4,
		"redis_timeout":    "2s",
		"session_secret":   "my_secret_key",
		"session_ttl":      "1h",
		"log_level":        "warn",
		"log_format":       "text",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "s3", cfg.SnapshotBackend)
		assert.Equal(t, "snaps", cfg.SnapshotDir)
		assert.Equal(t, "pg", cfg.PostgresDSN)
		assert.Equal(t, "user", cfg.S3AccessKey)
		assert.Equal(t, "password", cfg.S3SecretKey)
		assert.Equal(t, "bucket", cfg.S3Bucket)
		assert.Equal(t, "region", cfg.S3Region)
		assert.Equal(t, "base_endpoint", cfg.S3BaseEndpoint)
		assert.Equal(t, "prefix", cfg.S3Prefix)
		assert.Equal(t, "redis:6379", cfg.RedisAddr)
		assert.Equal(t, 4, cfg.RedisDB)
		assert.Equal(t, 2*time.Second, cfg.RedisTimeout)
		assert.Equal(t, "my_secret_key", cfg.SessionSecret)
		assert.Equal(t, time.Hour, cfg.SessionTTL)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
	})

	t.Run("absent keys keep current values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{"log_level": "debug"})
		os.Args = []string{"testbin", "-c", partial}

		cfg := &Config{SQLiteDSN: "keep.db", SessionTTL: time.Minute}
		parseJson(cfg)

		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "keep.db", cfg.SQLiteDSN)
		assert.Equal(t, time.Minute, cfg.SessionTTL)
	})

	t.Run("env var is used without flags", func(t *testing.T) {
		os.Args = []string{"testbin"}
		t.Setenv("CREATIONHUB_CONFIG", pathFlag)

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "s3", cfg.SnapshotBackend)
	})

	t.Run("no config and no flags → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{SnapshotBackend: "file", SessionSecret: "key", SessionTTL: 2 * time.Minute}
		parseJson(cfg)

		assert.Equal(t, "file", cfg.SnapshotBackend)
		assert.Equal(t, "key", cfg.SessionSecret)
		assert.Equal(t, 2*time.Minute, cfg.SessionTTL)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "nope.json")}

		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
