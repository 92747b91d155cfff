package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// hitScript prunes, counts and conditionally records in one round trip so
// concurrent gateways cannot both take the last slot.
var hitScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
if count >= limit then
  return 0
end
redis.call('ZADD', key, now, ARGV[4])
redis.call('PEXPIRE', key, window)
return 1
`)

// sweepScript prunes one identity and returns what is left. Redis drops a
// sorted set once it is empty, so no DEL is issued; a Hit arriving between
// two sweep steps can never be erased.
var sweepScript = redis.NewScript(`
redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', ARGV[1])
return redis.call('ZCARD', KEYS[1])
`)

// RedisStore is a Store shared by several gateway processes. Each identity
// maps to a sorted set scored by Unix milliseconds. Keys carry a TTL equal
// to the window, so Redis reclaims abandoned identities on its own; Sweep
// prunes and counts, each key in one atomic script.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// RedisOptions configures a RedisStore.
type RedisOptions struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// NewRedisStore connects to Redis and verifies the connection with PING.
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}
	return NewRedisStoreFromClient(client, opts.KeyPrefix), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// Hit implements Store.
func (s *RedisStore) Hit(ctx context.Context, identity string, now time.Time, window time.Duration, limit int) (bool, error) {
	res, err := hitScript.Run(ctx, s.client, []string{s.prefix + identity},
		now.UnixMilli(), window.Milliseconds(), limit, uuid.NewString(),
	).Int64()
	if err != nil {
		return false, fmt.Errorf("rate limit script failed: %w", err)
	}
	return res == 1, nil
}

// Sweep implements Store.
func (s *RedisStore) Sweep(ctx context.Context, now time.Time, window time.Duration) (int, error) {
	cutoff := now.UnixMilli() - window.Milliseconds()

	tracked := 0
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 256).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		n, err := sweepScript.Run(ctx, s.client, []string{key}, cutoff).Int64()
		if err != nil {
			return tracked, fmt.Errorf("failed to sweep %s: %w", key, err)
		}
		if n > 0 {
			tracked++
		}
	}
	if err := iter.Err(); err != nil {
		return tracked, fmt.Errorf("failed to scan limiter keys: %w", err)
	}
	return tracked, nil
}

// Ping checks connectivity. The readiness check calls it.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close implements Store.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
