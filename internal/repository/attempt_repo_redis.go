package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/flightbooking/internal/pricing"
	"github.com/redis/go-redis/v9"
)

// RedisAttemptRepository keeps each flight's attempts in a sorted set scored
// by unix milliseconds. Keys expire after the retention window so idle
// flights vanish without a sweep.
type RedisAttemptRepository struct {
	client    *redis.Client
	retention time.Duration
}

func NewRedisAttemptRepository(client *redis.Client, retention time.Duration) *RedisAttemptRepository {
	return &RedisAttemptRepository{client: client, retention: retention}
}

func (r *RedisAttemptRepository) Load(ctx context.Context, flightID string) ([]time.Time, error) {
	members, err := r.client.ZRange(ctx, attemptsKey(flightID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	attempts := make([]time.Time, 0, len(members))
	for _, m := range members {
		at, err := decodeAttempt(m)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, at)
	}
	if len(attempts) == 0 {
		return nil, nil
	}
	return attempts, nil
}

// Save rewrites the whole set inside one MULTI/EXEC.
func (r *RedisAttemptRepository) Save(ctx context.Context, flightID string, attempts []time.Time) error {
	key := attemptsKey(flightID)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(attempts) == 0 {
			return nil
		}
		members := make([]redis.Z, 0, len(attempts))
		for i, at := range attempts {
			members = append(members, redis.Z{Score: float64(at.UnixMilli()), Member: encodeAttempt(at, i)})
		}
		pipe.ZAdd(ctx, key, members...)
		pipe.PExpire(ctx, key, r.retention)
		return nil
	})
	return err
}

func (r *RedisAttemptRepository) SweepBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	upper := "(" + strconv.FormatInt(cutoff.UnixMilli(), 10)
	iter := r.client.Scan(ctx, 0, attemptsKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if err := r.client.ZRemRangeByScore(ctx, key, "-inf", upper).Err(); err != nil {
			return deleted, err
		}
		left, err := r.client.ZCard(ctx, key).Result()
		if err != nil {
			return deleted, err
		}
		if left == 0 {
			deleted++
		}
	}
	return deleted, iter.Err()
}

const attemptsKeyPrefix = "attempts:flight:"

func attemptsKey(flightID string) string {
	return attemptsKeyPrefix + flightID
}

// encodeAttempt keeps members unique when two attempts share a timestamp.
func encodeAttempt(at time.Time, seq int) string {
	return fmt.Sprintf("%s#%d", at.UTC().Format(time.RFC3339Nano), seq)
}

func decodeAttempt(member string) (time.Time, error) {
	ts, _, _ := strings.Cut(member, "#")
	at, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode attempt %q: %w", member, err)
	}
	return at, nil
}

var _ pricing.AttemptStore = (*RedisAttemptRepository)(nil)
