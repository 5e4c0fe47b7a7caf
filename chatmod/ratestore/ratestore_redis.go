package ratestore

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisRatePrefix string = "msgrate/"

// RedisRateStore keeps one sorted set per channel/user pair, scored by
// observation time in unix milliseconds. Members carry a process-local
// sequence number so two messages in the same millisecond both count.
type RedisRateStore struct {
	Client *redis.Client

	seq atomic.Uint64
}

var _ RateStore = (*RedisRateStore)(nil)

func NewRedisRateStore(redisURL string) (*RedisRateStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	// check redis connection
	_, err = rdb.Ping(context.TODO()).Result()
	if err != nil {
		return nil, err
	}
	return &RedisRateStore{Client: rdb}, nil
}

func (s *RedisRateStore) Observe(ctx context.Context, channelID, userID string, at time.Time) error {
	key := redisRatePrefix + rateKey(channelID, userID)
	ms := at.UnixMilli()
	member := strconv.FormatInt(ms, 10) + "-" + strconv.FormatUint(s.seq.Add(1), 10)

	// record, prune, and TTL refresh in a single redis round-trip
	multi := s.Client.Pipeline()
	multi.ZAdd(ctx, key, redis.Z{Score: float64(ms), Member: member})
	multi.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(at.Add(-rateRetention).UnixMilli(), 10))
	multi.Expire(ctx, key, rateRetention)
	_, err := multi.Exec(ctx)
	return err
}

func (s *RedisRateStore) CountSince(ctx context.Context, channelID, userID string, since time.Time) (int, error) {
	key := redisRatePrefix + rateKey(channelID, userID)
	c, err := s.Client.ZCount(ctx, key, strconv.FormatInt(since.UnixMilli(), 10), "+inf").Result()
	if err == redis.Nil {
		return 0, nil
	} else if err != nil {
		return 0, err
	}
	return int(c), nil
}
