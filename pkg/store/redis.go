package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStorage persists collection snapshots in Redis, for deployments
// where several site instances share one durable cache.
type RedisStorage struct {
	client *redis.Client
	prefix string
}

// NewRedisStorage creates a Redis-backed storage. Keys are stored as
// "<prefix>:<key>"; an empty prefix defaults to "travel".
func NewRedisStorage(client *redis.Client, prefix string) *RedisStorage {
	if client == nil {
		panic("redis client cannot be nil")
	}
	if prefix == "" {
		prefix = "travel"
	}
	return &RedisStorage{client: client, prefix: prefix}
}

// Load implements Storage.
func (s *RedisStorage) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+":"+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

// Save implements Storage. Entries do not expire; the list is replaced
// wholesale on every accepted mutation.
func (s *RedisStorage) Save(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, s.prefix+":"+key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
