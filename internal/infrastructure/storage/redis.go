package storage

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/driano-gael/joticket/domain"
)

// RedisStore implements domain.KeyValueStore using Redis. Entries carry no
// TTL: tokens and the cart survive until explicitly cleared, matching the
// persisted-store semantics the storefront relies on across reloads.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed store
func NewRedisStore(addr, password string, db int) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
	}
}

// NewRedisStoreFromClient wraps an existing client, used by tests
func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Ping verifies connectivity
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Get implements domain.KeyValueStore
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", domain.ErrKeyNotFound
		}
		return "", err
	}
	return v, nil
}

// Set implements domain.KeyValueStore
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

// Delete implements domain.KeyValueStore
func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}
