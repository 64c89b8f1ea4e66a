package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/classroom-tracker/pkg/config"
	appErrors "github.com/noah-isme/classroom-tracker/pkg/errors"
)

// RedisStateRepository stores each state key as a Redis string without expiry.
type RedisStateRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisStateRepository constructs a Redis-backed state repository.
func NewRedisStateRepository(client *redis.Client, prefix string) *RedisStateRepository {
	return &RedisStateRepository{client: client, prefix: prefix}
}

// Driver names the backend for metrics and logs.
func (r *RedisStateRepository) Driver() string {
	return config.StoreDriverRedis
}

// Get retrieves and unmarshals the stored value into the provided destination.
func (r *RedisStateRepository) Get(ctx context.Context, key string, dest interface{}) error {
	if r.client == nil {
		return appErrors.ErrKeyNotFound
	}

	raw, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return appErrors.ErrKeyNotFound
		}
		return fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("unmarshal state %s: %w", key, err)
	}

	return nil
}

// Set marshals the provided value and stores it under key.
func (r *RedisStateRepository) Set(ctx context.Context, key string, value interface{}) error {
	if r.client == nil {
		return fmt.Errorf("redis client not configured")
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal state %s: %w", key, err)
	}

	if err := r.client.Set(ctx, r.prefix+key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}

	return nil
}

// Close releases the underlying Redis connection if present.
func (r *RedisStateRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
