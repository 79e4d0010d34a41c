package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/mysterybox/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// StreamKey is the Redis stream holding audit records
	StreamKey = "audit:events"

	defaultMaxLen = 10000

	fieldAction    = "action"
	fieldActorID   = "actor_id"
	fieldGameID    = "game_id"
	fieldDetails   = "details"
	fieldCreatedAt = "created_at"
)

// Config holds configuration for the Redis audit repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// MaxLen caps the stream length; zero uses the default
	MaxLen int64
}

// redisRepository implements the Repository interface using a Redis stream
type redisRepository struct {
	client *redis.Client
	maxLen int64
}

// NewRedis creates a new Redis-backed audit repository
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

	maxLen := cfg.MaxLen
	if maxLen <= 0 {
		maxLen = defaultMaxLen
	}

	return &redisRepository{
		client: cfg.RedisClient,
		maxLen: maxLen,
	}, nil
}

// Append adds a record to the audit stream
func (r *redisRepository) Append(ctx context.Context, input *AppendInput) error {
	if input == nil || input.Record == nil {
		return errors.New("input and record cannot be nil")
	}

	details, err := json.Marshal(input.Record.Details)
	if err != nil {
		return fmt.Errorf("failed to marshal audit details: %w", err)
	}

	err = r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey,
		MaxLen: r.maxLen,
		Values: map[string]interface{}{
			fieldAction:    string(input.Record.Action),
			fieldActorID:   input.Record.ActorID,
			fieldGameID:    input.Record.GameID,
			fieldDetails:   string(details),
			fieldCreatedAt: input.Record.CreatedAt.UTC().Format(time.RFC3339Nano),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to append audit record: %w", err)
	}

	return nil
}

// ListRecent returns up to Count records, newest first
func (r *redisRepository) ListRecent(ctx context.Context, input *ListRecentInput) ([]*models.AuditRecord, error) {
	if input == nil || input.Count <= 0 {
		return nil, errors.New("input and a positive count are required")
	}

	messages, err := r.client.XRevRangeN(ctx, StreamKey, "+", "-", input.Count).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read audit stream: %w", err)
	}

	records := make([]*models.AuditRecord, 0, len(messages))
	for _, message := range messages {
		record, err := decodeRecord(message.Values)
		if err != nil {
			return nil, fmt.Errorf("failed to decode audit record %s: %w", message.ID, err)
		}
		records = append(records, record)
	}

	return records, nil
}

func decodeRecord(values map[string]interface{}) (*models.AuditRecord, error) {
	field := func(name string) string {
		v, _ := values[name].(string)
		return v
	}

	record := &models.AuditRecord{
		Action:  models.AuditAction(field(fieldAction)),
		ActorID: field(fieldActorID),
		GameID:  field(fieldGameID),
	}

	if raw := field(fieldDetails); raw != "" && raw != "null" {
		if err := json.Unmarshal([]byte(raw), &record.Details); err != nil {
			return nil, err
		}
	}

	if raw := field(fieldCreatedAt); raw != "" {
		createdAt, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, err
		}
		record.CreatedAt = createdAt
	}

	return record, nil
}
