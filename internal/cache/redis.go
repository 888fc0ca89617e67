package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Store backed by a remote Redis instance.
//
// Entries are written with a backend TTL so the cache cannot grow without
// bound: the authentication protocol never evicts stale session entries
// itself, it only rejects them at read time.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps an existing go-redis client. A zero ttl disables the
// backend expiry.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Read returns the bytes stored under key, or nil when absent.
func (s *RedisStore) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, newError(ReasonReadFailed, err)
	}
	return data, nil
}

// Write stores data under key.
func (s *RedisStore) Write(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return newError(ReasonWriteFailed, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error; only a
// transport failure is.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return newError(ReasonDeleteFailed, err)
	}
	return nil
}
