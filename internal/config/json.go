package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/creationhub/internal/flagx"
	"github.com/dmitrijs2005/creationhub/internal/timex"
)

// JsonConfig is the DTO read from the JSON config file. Durations use
// timex.Duration so both "30m" and integer nanoseconds are accepted.
//
// Only keys present in the file override the current value.
type JsonConfig struct {
	SnapshotBackend *string         `json:"snapshot_backend"`
	SnapshotDir     *string         `json:"snapshot_dir"`
	SQLiteDSN       *string         `json:"sqlite_dsn"`
	PostgresDSN     *string         `json:"postgres_dsn"`
	S3AccessKey     *string         `json:"s3_access_key"`
	S3SecretKey     *string         `json:"s3_secret_key"`
	S3Bucket        *string         `json:"s3_bucket"`
	S3Region        *string         `json:"s3_region"`
	S3BaseEndpoint  *string         `json:"s3_base_endpoint"`
	S3Prefix        *string         `json:"s3_prefix"`
	RedisAddr       *string         `json:"redis_addr"`
	RedisUsername   *string         `json:"redis_username"`
	RedisPassword   *string         `json:"redis_password"`
	RedisDB         *int            `json:"redis_db"`
	RedisPrefix     *string         `json:"redis_prefix"`
	RedisTimeout    *timex.Duration `json:"redis_timeout"`
	SessionSecret   *string         `json:"session_secret"`
	SessionTTL      *timex.Duration `json:"session_ttl"`
	LogLevel        *string         `json:"log_level"`
	LogFormat       *string         `json:"log_format"`
}

// parseJson overlays values from a JSON file onto config.
//
// The file path comes from the -c/-config flag or, failing that, the
// CREATIONHUB_CONFIG environment variable. With neither set nothing is
// loaded. An unreadable file or invalid JSON panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	setString(&config.SnapshotBackend, c.SnapshotBackend)
	setString(&config.SnapshotDir, c.SnapshotDir)
	setString(&config.SQLiteDSN, c.SQLiteDSN)
	setString(&config.PostgresDSN, c.PostgresDSN)
	setString(&config.S3AccessKey, c.S3AccessKey)
	setString(&config.S3SecretKey, c.S3SecretKey)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3Prefix, c.S3Prefix)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.RedisUsername, c.RedisUsername)
	setString(&config.RedisPassword, c.RedisPassword)
	setString(&config.RedisPrefix, c.RedisPrefix)
	setString(&config.SessionSecret, c.SessionSecret)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)

	if c.RedisDB != nil {
		config.RedisDB = *c.RedisDB
	}
	if c.RedisTimeout != nil {
		config.RedisTimeout = c.RedisTimeout.Duration
	}
	if c.SessionTTL != nil {
		config.SessionTTL = c.SessionTTL.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
