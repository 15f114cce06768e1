package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrNotFound = errors.New("key not found in cache")
	ErrNil      = redis.Nil
)

// raiseCounter sets KEYS[1] to ARGV[1] when the stored counter is lower
var raiseCounter = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
local target = tonumber(ARGV[1])
if target > current then
	redis.call('SET', KEYS[1], target)
	return target
end
return current
`)

// replaceField sets field ARGV[1] of hash KEYS[1] only when it already exists
var replaceField = redis.NewScript(`
if redis.call('HEXISTS', KEYS[1], ARGV[1]) == 1 then
	redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
	return 1
end
return 0
`)

// RedisCache wraps redis client with common cache operations
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache instance
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &RedisCache{
		client: client,
	}, nil
}

// Ping checks the connection
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Increment increments a counter and returns the new value
func (r *RedisCache) Increment(ctx context.Context, key string) (int64, error) {
	return r.client.Incr(ctx, key).Result()
}

// RaiseCounter moves the counter at key up to value; it never lowers it
func (r *RedisCache) RaiseCounter(ctx context.Context, key string, value int64) (int64, error) {
	return raiseCounter.Run(ctx, r.client, []string{key}, value).Int64()
}

// HSetJSON stores a JSON-encoded value in a hash field
func (r *RedisCache) HSetJSON(ctx context.Context, key string, field string, value interface{}) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.HSet(ctx, key, field, jsonData).Err()
}

// HReplaceJSON overwrites an existing hash field with JSON; it reports
// false without writing when the field is missing
func (r *RedisCache) HReplaceJSON(ctx context.Context, key string, field string, value interface{}) (bool, error) {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return false, err
	}

	replaced, err := replaceField.Run(ctx, r.client, []string{key}, field, jsonData).Int()
	if err != nil {
		return false, err
	}
	return replaced == 1, nil
}

// HGetJSON retrieves and decodes a JSON value from a hash field
func (r *RedisCache) HGetJSON(ctx context.Context, key string, field string, dest interface{}) error {
	val, err := r.client.HGet(ctx, key, field).Result()
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

// HGetAll gets all fields from a hash
func (r *RedisCache) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return r.client.HGetAll(ctx, key).Result()
}

// HDel deletes fields from a hash
func (r *RedisCache) HDel(ctx context.Context, key string, fields ...string) error {
	return r.client.HDel(ctx, key, fields...).Err()
}

// Delete removes keys from cache
func (r *RedisCache) Delete(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

// Close closes the Redis connection
func (r *RedisCache) Close() error {
	return r.client.Close()
}
