package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/creationhub/internal/common"
	"github.com/redis/go-redis/v9"
)

type RedisOptions struct {
	Addr        string
	Username    string
	Password    string
	DB          int
	Prefix      string
	DialTimeout time.Duration
	Timeout     time.Duration
}

// RedisBackend stores each kind under the key <prefix><kind>.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

// NewRedisBackend connects and pings the server.
func NewRedisBackend(ctx context.Context, opts RedisOptions) (*RedisBackend, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Username:     opts.Username,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.Timeout,
		WriteTimeout: opts.Timeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisBackend{client: client, prefix: opts.Prefix}, nil
}

func (b *RedisBackend) key(kind Kind) string {
	return b.prefix + string(kind)
}

func (b *RedisBackend) Load(ctx context.Context, kind Kind) ([]byte, error) {
	blob, err := b.client.Get(ctx, b.key(kind)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", kind, err)
	}
	return blob, nil
}

func (b *RedisBackend) Save(ctx context.Context, kind Kind, blob []byte) error {
	if err := b.client.Set(ctx, b.key(kind), blob, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", kind, err)
	}
	return nil
}

// SaveBatch writes all blobs in one MULTI/EXEC.
func (b *RedisBackend) SaveBatch(ctx context.Context, blobs map[Kind][]byte) error {
	_, err := b.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for _, kind := range Kinds {
			if blob, ok := blobs[kind]; ok {
				p.Set(ctx, b.key(kind), blob, 0)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save: %w", err)
	}
	return nil
}

func (b *RedisBackend) Close() error {
	return b.client.Close()
}
