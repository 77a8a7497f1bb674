package bucket

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"propertyguard/internal/ratelimit/models"
)

// keyPrefix namespaces limiter keys away from the other Redis users.
const keyPrefix = "ratelimit:"

// RedisStore keeps sliding windows in sorted sets so every replica counts
// against the same budget. Members score on their millisecond timestamp;
// each check trims expired members before counting.
type RedisStore struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Allow records one request against the key if the window has room.
func (s *RedisStore) Allow(ctx context.Context, key string, limit int, span time.Duration) (*models.RateLimitResult, error) {
	now := time.Now()
	redisKey := keyPrefix + key
	cutoff := strconv.FormatInt(now.Add(-span).UnixMilli(), 10)

	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", cutoff)
	countCmd := pipe.ZCard(ctx, redisKey)
	oldestCmd := pipe.ZRangeWithScores(ctx, redisKey, 0, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("count window %s: %w", key, err)
	}

	count := int(countCmd.Val())
	resetAt := now.Add(span)
	if oldest := oldestCmd.Val(); len(oldest) > 0 {
		resetAt = time.UnixMilli(int64(oldest[0].Score)).Add(span)
	}

	if count >= limit {
		return &models.RateLimitResult{
			Allowed:    false,
			Limit:      limit,
			Remaining:  0,
			ResetAt:    resetAt,
			RetryAfter: retryAfterSeconds(now, resetAt),
		}, nil
	}

	record := s.client.TxPipeline()
	record.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixMilli()),
		Member: uuid.NewString(),
	})
	record.Expire(ctx, redisKey, span)
	if _, err := record.Exec(ctx); err != nil {
		return nil, fmt.Errorf("record request %s: %w", key, err)
	}

	return &models.RateLimitResult{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - count - 1,
		ResetAt:   resetAt,
	}, nil
}

// Reset clears the window for a key.
func (s *RedisStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("reset window %s: %w", key, err)
	}
	return nil
}
