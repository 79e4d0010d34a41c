package ratelimit

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:"

// Config holds configuration for the Redis rate limiter
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface with INCR and EXPIRE
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed rate limiter
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// Allow increments the window counter for the key. The first hit of a
// window starts its expiry.
func (r *redisRepository) Allow(ctx context.Context, input *AllowInput) (*AllowOutput, error) {
	if input == nil || input.Key == "" || input.Limit <= 0 || input.Window <= 0 {
		return nil, errors.New("input requires a key, a positive limit and a positive window")
	}

	key := keyPrefix + input.Key

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	ttl, err := r.client.PTTL(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read rate limit ttl: %w", err)
	}
	if count == 1 || ttl < 0 {
		if err := r.client.PExpire(ctx, key, input.Window).Err(); err != nil {
			return nil, fmt.Errorf("failed to set rate limit window: %w", err)
		}
		ttl = input.Window
	}

	remaining := input.Limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return &AllowOutput{
		Allowed:    int(count) <= input.Limit,
		Remaining:  remaining,
		RetryAfter: ttl,
	}, nil
}
