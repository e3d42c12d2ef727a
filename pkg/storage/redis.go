package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisAdapter stores each collection blob under a prefixed redis key.
type RedisAdapter struct {
	client *redis.Client
	prefix string
}

func NewRedisAdapter(addr, prefix string) *RedisAdapter {
	if addr == "" {
		addr = "localhost:6379"
	}
	if prefix == "" {
		prefix = "character-studio"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	return &RedisAdapter{client: client, prefix: prefix}
}

func (r *RedisAdapter) key(key string) string {
	return r.prefix + ":" + key
}

func (r *RedisAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: redis get %s: %w", key, err)
	}
	return data, nil
}

func (r *RedisAdapter) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("storage: redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisAdapter) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("storage: redis del %s: %w", key, err)
	}
	return nil
}

func (r *RedisAdapter) Keys(ctx context.Context) ([]string, error) {
	full, err := r.client.Keys(ctx, r.prefix+":*").Result()
	if err != nil {
		return nil, fmt.Errorf("storage: redis keys: %w", err)
	}
	keys := make([]string, 0, len(full))
	for _, k := range full {
		keys = append(keys, strings.TrimPrefix(k, r.prefix+":"))
	}
	return keys, nil
}

func (r *RedisAdapter) Close() error {
	return r.client.Close()
}
