package ratelimit

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// takeScript implements prune-check-append atomically on the Redis side so
// concurrent replicas cannot double-admit the last slot. Timestamps live in a
// sorted set scored by unix nanoseconds.
//
// KEYS[1] = actor key
// ARGV[1] = now (unix nanos), ARGV[2] = window (nanos), ARGV[3] = limit
//
// Returns {1, 0} on admission or {0, nanos until oldest entry expires}.
var takeScript = goredis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
if count >= limit then
  local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
  local retry = (tonumber(oldest[2]) + window) - now
  if retry < 0 then retry = 0 end
  return {0, retry}
end
redis.call('ZADD', key, now, now)
redis.call('PEXPIRE', key, math.ceil(window / 1000000))
return {1, 0}
`)

// RedisStore shares the sliding window across service replicas through a Redis
// sorted set per actor.
type RedisStore struct {
	client    goredis.UniversalClient
	keyPrefix string
}

func NewRedisStore(client goredis.UniversalClient) *RedisStore {
	return &RedisStore{
		client:    client,
		keyPrefix: "quill:ratelimit:",
	}
}

func (s *RedisStore) Take(ctx context.Context, actorID string, now time.Time, window time.Duration, limit int) (bool, time.Duration, error) {
	key := s.keyPrefix + actorID
	res, err := takeScript.Run(ctx, s.client, []string{key},
		now.UnixNano(), window.Nanoseconds(), limit).Int64Slice()
	if err != nil {
		return false, 0, fmt.Errorf("redis take: %w", err)
	}
	if len(res) != 2 {
		return false, 0, fmt.Errorf("redis take: unexpected reply %v", res)
	}
	if res[0] == 1 {
		return true, 0, nil
	}
	return false, time.Duration(res[1]), nil
}
