package repository

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// RedisKVRepository stores key-value pairs in Redis without expiry.
type RedisKVRepository struct {
	client goredis.Cmdable
	prefix string
}

// NewRedisKVRepository creates a repository on client. Every key is stored
// as prefix+key, so several stores can share one Redis database.
func NewRedisKVRepository(client goredis.Cmdable, prefix string) *RedisKVRepository {
	return &RedisKVRepository{client: client, prefix: prefix}
}

// Get fetches the value stored under key; ok is false on a miss.
func (r *RedisKVRepository) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return v, true, nil
}

// Set stores value under key, replacing any previous value.
func (r *RedisKVRepository) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}
