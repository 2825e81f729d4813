package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/creationhub/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-m string   snapshot backend (file, sqlite, postgres, s3, redis, memory)
//	-f string   snapshot directory for the file backend
//	-l string   SQLite DSN
//	-d string   PostgreSQL DSN
//	-u string   S3 access key
//	-p string   S3 secret key
//	-b string   S3 bucket
//	-g string   S3 region
//	-e string   S3 base endpoint
//	-r string   Redis address
//	-w string   Redis password
//	-n int      Redis database number
//	-s string   session secret
//	-t int      session validity, minutes
//	-v string   log level
//	-o string   log format (json or text)
//
// os.Args is filtered with flagx.FilterArgs first so the -c/-config flag
// handled by parseJson does not trip the FlagSet.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-m", "-f", "-l", "-d", "-u", "-p", "-b", "-g", "-e",
		"-r", "-w", "-n", "-s", "-t", "-v", "-o",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.SnapshotBackend, "m", config.SnapshotBackend, "snapshot backend")
	fs.StringVar(&config.SnapshotDir, "f", config.SnapshotDir, "snapshot directory")
	fs.StringVar(&config.SQLiteDSN, "l", config.SQLiteDSN, "SQLite DSN")
	fs.StringVar(&config.PostgresDSN, "d", config.PostgresDSN, "PostgreSQL DSN")

	fs.StringVar(&config.S3AccessKey, "u", config.S3AccessKey, "S3 access key")
	fs.StringVar(&config.S3SecretKey, "p", config.S3SecretKey, "S3 secret key")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "Redis address")
	fs.StringVar(&config.RedisPassword, "w", config.RedisPassword, "Redis password")
	fs.IntVar(&config.RedisDB, "n", config.RedisDB, "Redis database")

	fs.StringVar(&config.SessionSecret, "s", config.SessionSecret, "session secret")
	sessionTTL := fs.Int("t", int(config.SessionTTL.Minutes()), "session validity (in minutes)")

	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "o", config.LogFormat, "log format")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionTTL = time.Duration(*sessionTTL) * time.Minute
}
