package config

import (
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/creationhub/internal/snapshot"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, snapshot.BackendFile, c.SnapshotBackend)
	assert.Equal(t, "data", c.SnapshotDir)
	assert.Equal(t, "creationhub.db", c.SQLiteDSN)
	assert.Equal(t, "creationhub", c.S3Bucket)
	assert.Equal(t, "us-east-1", c.S3Region)
	assert.Equal(t, "127.0.0.1:6379", c.RedisAddr)
	assert.Equal(t, 3*time.Second, c.RedisTimeout)
	assert.Equal(t, "secretKey", c.SessionSecret)
	assert.Equal(t, 30*time.Minute, c.SessionTTL)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "json", c.LogFormat)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Setenv("CREATIONHUB_CONFIG", "")
	os.Args = []string{"testbin"}

	c := LoadConfig()
	require.NotNil(t, c, "LoadConfig must not return nil")

	var want Config
	want.LoadDefaults()
	assert.Empty(t, cmp.Diff(&want, c))
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Setenv("CREATIONHUB_CONFIG", "")

	path := writeTempJSON(t, "", "", map[string]any{
		"snapshot_backend": "sqlite",
		"sqlite_dsn":       "from-json.db",
		"session_ttl":      "5m",
	})
	os.Args = []string{"testbin", "-c", path, "-l", "from-flag.db"}

	c := LoadConfig()

	assert.Equal(t, "sqlite", c.SnapshotBackend)
	assert.Equal(t, "from-flag.db", c.SQLiteDSN)
	assert.Equal(t, 5*time.Minute, c.SessionTTL)
}

func TestConfig_SnapshotOptions(t *testing.T) {
	c := &Config{
		SnapshotBackend: snapshot.BackendRedis,
		SnapshotDir:     "dir",
		SQLiteDSN:       "lite.db",
		PostgresDSN:     "pg",
		S3AccessKey:     "ak",
		S3SecretKey:     "sk",
		S3Bucket:        "bucket",
		S3Region:        "eu-west-1",
		S3BaseEndpoint:  "http://minio:9000",
		S3Prefix:        "snap",
		RedisAddr:       "redis:6379",
		RedisUsername:   "user",
		RedisPassword:   "pass",
		RedisDB:         2,
		RedisPrefix:     "ch:",
		RedisTimeout:    time.Second,
	}

	want := snapshot.Options{
		Backend:     snapshot.BackendRedis,
		Dir:         "dir",
		SQLiteDSN:   "lite.db",
		PostgresDSN: "pg",
		S3: snapshot.S3Options{
			Region:       "eu-west-1",
			BaseEndpoint: "http://minio:9000",
			AccessKey:    "ak",
			SecretKey:    "sk",
			Bucket:       "bucket",
			Prefix:       "snap",
		},
		Redis: snapshot.RedisOptions{
			Addr:        "redis:6379",
			Username:    "user",
			Password:    "pass",
			DB:          2,
			Prefix:      "ch:",
			DialTimeout: time.Second,
			Timeout:     time.Second,
		},
	}

	assert.Empty(t, cmp.Diff(want, c.SnapshotOptions()))
}
