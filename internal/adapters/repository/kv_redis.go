package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/examtrack/core/internal/ports"
)

// RedisKVStore implements the persistence gateway over Redis. The two
// application records are small, so values are stored without expiry.
type RedisKVStore struct {
	client *redis.Client
}

// NewRedisKVStore creates a Redis-backed key-value store.
func NewRedisKVStore(client *redis.Client) ports.KeyValueStore {
	return &RedisKVStore{client: client}
}

func (s *RedisKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	blob, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ports.ErrKeyNotFound
		}
		return nil, fmt.Errorf("get record %q: %w", key, err)
	}
	return blob, nil
}

func (s *RedisKVStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("set record %q: %w", key, err)
	}
	return nil
}
