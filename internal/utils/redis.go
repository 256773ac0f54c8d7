package utils

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient wraps the Redis client for convenient use as the
// application's read-through cache port. All methods tolerate a nil
// receiver (Redis is optional at runtime): reads miss, writes no-op.
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient creates a new Redis wrapper.
func NewRedisClient(client *redis.Client) *RedisClient {
	return &RedisClient{
		client: client,
		ctx:    context.Background(),
	}
}

// Set stores a value with a TTL. Non-string values are JSON encoded.
func (r *RedisClient) Set(key string, value interface{}, ttl time.Duration) error {
	if r == nil || r.client == nil {
		return nil
	}
	var data string
	switch v := value.(type) {
	case string:
		data = v
	default:
		jsonData, err := json.Marshal(value)
		if err != nil {
			return err
		}
		data = string(jsonData)
	}

	return r.client.Set(r.ctx, key, data, ttl).Err()
}

// Get returns the raw value for a key.
func (r *RedisClient) Get(key string) (string, error) {
	if r == nil || r.client == nil {
		return "", redis.Nil
	}
	return r.client.Get(r.ctx, key).Result()
}

// GetJSON reads and decodes a JSON value into dest.
func (r *RedisClient) GetJSON(key string, dest interface{}) error {
	if r == nil || r.client == nil {
		return redis.Nil
	}
	data, err := r.client.Get(r.ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

// Remember is the read-through cache primitive: on a hit, decode the
// cached JSON into dest; on a miss, run produce (which must fill dest)
// and store the result with the given TTL. Cache write failures are
// logged, never surfaced: the produced value is already in dest.
func (r *RedisClient) Remember(key string, ttl time.Duration, dest interface{}, produce func() error) error {
	if err := r.GetJSON(key, dest); err == nil {
		return nil
	}
	if err := produce(); err != nil {
		return err
	}
	if err := r.Set(key, dest, ttl); err != nil {
		log.Printf("⚠️ cache write failed for %s: %v", key, err)
	}
	return nil
}

// Forget drops a cached key. Mutation services call this right next to
// the write that invalidates the key.
func (r *RedisClient) Forget(keys ...string) error {
	if r == nil || r.client == nil || len(keys) == 0 {
		return nil
	}
	return r.client.Del(r.ctx, keys...).Err()
}

// ForgetPattern drops every key matching a glob pattern (used for
// parameterized dashboard keys).
func (r *RedisClient) ForgetPattern(pattern string) error {
	if r == nil || r.client == nil {
		return nil
	}
	keys, err := r.client.Keys(r.ctx, pattern).Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(r.ctx, keys...).Err()
}

// Increment increments a counter key and returns the new value.
func (r *RedisClient) Increment(key string) (int64, error) {
	if r == nil || r.client == nil {
		return 0, redis.Nil
	}
	return r.client.Incr(r.ctx, key).Result()
}

// Exists reports whether a key exists.
func (r *RedisClient) Exists(key string) (bool, error) {
	if r == nil || r.client == nil {
		return false, nil
	}
	count, err := r.client.Exists(r.ctx, key).Result()
	return count > 0, err
}
