package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound reports that a key does not exist. Callers must never receive
// it for a store that was merely unreachable; infrastructure failures are
// returned as wrapped errors instead.
var ErrNotFound = errors.New("store: key not found")

// SessionStore is the networked key-value contract the session subsystem is
// built on: opaque string blobs with a per-key TTL, no multi-key
// transactions and no compare-and-swap. GetDel is the one atomic primitive,
// used to arbitrate which debounce waiter delivers a burst.
type SessionStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	GetDel(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
	// RefreshTTL slides the expiry of an existing key. Refreshing a missing
	// key is a no-op, not an error.
	RefreshTTL(ctx context.Context, key string, ttl time.Duration) error
}

// redisAPI is the minimal Redis interface required by RedisSessionStore.
// Defined here for testability.
type redisAPI interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	GetDel(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RedisSessionStore implements SessionStore on a Redis client.
type RedisSessionStore struct {
	api redisAPI
}

func NewRedisSessionStore(api redisAPI) (*RedisSessionStore, error) {
	if api == nil {
		return nil, errors.New("store: redis api must not be nil")
	}
	return &RedisSessionStore{api: api}, nil
}

func (s *RedisSessionStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.api.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("store: get %q: %w", key, err)
	}
	return value, nil
}

func (s *RedisSessionStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.api.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("store: set %q: %w", key, err)
	}
	return nil
}

func (s *RedisSessionStore) GetDel(ctx context.Context, key string) (string, error) {
	value, err := s.api.GetDel(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("store: getdel %q: %w", key, err)
	}
	return value, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, key string) error {
	if err := s.api.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("store: delete %q: %w", key, err)
	}
	return nil
}

func (s *RedisSessionStore) RefreshTTL(ctx context.Context, key string, ttl time.Duration) error {
	if err := s.api.Expire(ctx, key, ttl).Err(); err != nil {
		return fmt.Errorf("store: refresh ttl %q: %w", key, err)
	}
	return nil
}
