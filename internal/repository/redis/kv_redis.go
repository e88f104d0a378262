package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"

	"sahaya/internal/config"
	"sahaya/internal/repository"
)

// KVRedis is a Redis implementation of repository.KeyValueRepository.
// Values are plain strings without expiry; SET replaces a value atomically.
type KVRedis struct {
	client goredis.UniversalClient
}

// NewKVRedis connects to the configured Redis instance.
func NewKVRedis(cfg config.RedisConfig) *KVRedis {
	return NewKVRedisFromClient(goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}))
}

// NewKVRedisFromClient wraps an existing client.
func NewKVRedisFromClient(client goredis.UniversalClient) *KVRedis {
	return &KVRedis{client: client}
}

var _ repository.KeyValueRepository = (*KVRedis)(nil)

func (r *KVRedis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, repository.ErrEmptyKey
	}
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (r *KVRedis) Put(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return repository.ErrEmptyKey
	}
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *KVRedis) Delete(ctx context.Context, key string) error {
	if key == "" {
		return repository.ErrEmptyKey
	}
	return r.client.Del(ctx, key).Err()
}

func (r *KVRedis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (r *KVRedis) Close() error {
	return r.client.Close()
}
