package warnstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisWarningPrefix string = "warned/"

// warnings are only read back within the escalation window, which is minutes;
// a day of retention outlives any sane window config
const redisWarningTTL = 24 * time.Hour

// RedisWarningStore keeps one sorted set per channel, member per user, scored
// by warning time in unix milliseconds. ZADD GT gives the never-regress
// behavior without a read-modify-write.
type RedisWarningStore struct {
	Client *redis.Client
}

var _ WarningStore = (*RedisWarningStore)(nil)

func NewRedisWarningStore(redisURL string) (*RedisWarningStore, error) {
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
	return &RedisWarningStore{Client: rdb}, nil
}

func (s *RedisWarningStore) LastWarning(ctx context.Context, channelID, userID string) (time.Time, bool, error) {
	score, err := s.Client.ZScore(ctx, redisWarningPrefix+channelID, userID).Result()
	if err == redis.Nil {
		return time.Time{}, false, nil
	} else if err != nil {
		return time.Time{}, false, err
	}
	return time.UnixMilli(int64(score)), true, nil
}

func (s *RedisWarningStore) RecordWarning(ctx context.Context, channelID, userID string, at time.Time) error {
	key := redisWarningPrefix + channelID

	// update and TTL refresh in a single redis round-trip
	multi := s.Client.Pipeline()
	multi.ZAddGT(ctx, key, redis.Z{Score: float64(at.UnixMilli()), Member: userID})
	multi.Expire(ctx, key, redisWarningTTL)
	_, err := multi.Exec(ctx)
	return err
}
