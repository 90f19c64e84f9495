package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps attempt timestamps in a Redis sorted set per key,
// scored by nanosecond timestamp, so counts are shared across processes.
type RedisStore struct {
	rdb    *redis.Client
	window time.Duration
}

// NewRedisStore creates a RedisStore. The window sets the key TTL so
// idle addresses expire on their own.
func NewRedisStore(rdb *redis.Client, window time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, window: window}
}

func (s *RedisStore) key(addr string) string {
	return "login_attempts:" + addr
}

// Prune drops entries before cutoff and returns the remaining count.
func (s *RedisStore) Prune(ctx context.Context, addr string, cutoff time.Time) (int, error) {
	key := s.key(addr)
	max := "(" + strconv.FormatInt(cutoff.UnixNano(), 10)
	if err := s.rdb.ZRemRangeByScore(ctx, key, "-inf", max).Err(); err != nil {
		return 0, err
	}
	count, err := s.rdb.ZCard(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// Add records an attempt for the key and refreshes its TTL.
func (s *RedisStore) Add(ctx context.Context, addr string, at time.Time) error {
	key := s.key(addr)
	pipe := s.rdb.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(at.UnixNano()),
		Member: strconv.FormatInt(at.UnixNano(), 10),
	})
	pipe.Expire(ctx, key, s.window)
	_, err := pipe.Exec(ctx)
	return err
}
