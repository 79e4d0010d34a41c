package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/mysterybox/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	gameKeyPrefix  = "game:"
	activeGameKey  = "game:active"
	allGamesKey    = "games"
	submissionsKey = ":submissions"
	usedKey        = ":used:"
	refsKey        = ":refs"

	maxTxRetries = 100
)

// getter is satisfied by both *redis.Client and *redis.Tx
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// Config holds configuration for the Redis game repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed game repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func gameKey(gameID string) string {
	return gameKeyPrefix + gameID
}

func gameSubmissionsKey(gameID string) string {
	return gameKeyPrefix + gameID + submissionsKey
}

func gameUsedKey(gameID, participantRef string) string {
	return gameKeyPrefix + gameID + usedKey + participantRef
}

func gameRefsKey(gameID string) string {
	return gameKeyPrefix + gameID + refsKey
}

// CreateGame persists a new game and points the active game key at it
func (r *redisRepository) CreateGame(ctx context.Context, input *CreateGameInput) error {
	if input == nil || input.Game == nil || input.Game.ID == "" {
		return errors.New("input, game and game ID cannot be empty")
	}

	gameJSON, err := json.Marshal(input.Game)
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	txf := func(tx *redis.Tx) error {
		activeID, err := tx.Get(ctx, activeGameKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("failed to get active game: %w", err)
		}
		if activeID != "" {
			return ErrActiveGameExists
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, gameKey(input.Game.ID), gameJSON, 0)
			pipe.Set(ctx, activeGameKey, input.Game.ID, 0)
			pipe.SAdd(ctx, allGamesKey, input.Game.ID)
			return nil
		})
		return err
	}

	return r.watch(ctx, txf, activeGameKey)
}

// GetGame retrieves a game by ID from Redis
func (r *redisRepository) GetGame(ctx context.Context, input *GetGameInput) (*models.Game, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	return getGame(ctx, r.client, input.GameID)
}

// GetActiveGame retrieves the game the active key points at
func (r *redisRepository) GetActiveGame(ctx context.Context, input *GetActiveGameInput) (*models.Game, error) {
	activeID, err := r.client.Get(ctx, activeGameKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoActiveGame
		}
		return nil, fmt.Errorf("failed to get active game: %w", err)
	}

	game, err := getGame(ctx, r.client, activeID)
	if errors.Is(err, ErrGameNotFound) {
		return nil, ErrNoActiveGame
	}
	return game, err
}

// UpdateActiveGame watches the active pointer and the game itself, so a
// concurrent transition makes this one retry against fresh state.
func (r *redisRepository) UpdateActiveGame(ctx context.Context, input *UpdateActiveGameInput) (*models.Game, error) {
	if input == nil || input.Update == nil {
		return nil, errors.New("input and update cannot be nil")
	}

	var updated *models.Game
	txf := func(tx *redis.Tx) error {
		activeID, err := tx.Get(ctx, activeGameKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrNoActiveGame
			}
			return fmt.Errorf("failed to get active game: %w", err)
		}
		if input.ExpectedGameID != "" && activeID != input.ExpectedGameID {
			return ErrGameChanged
		}

		if err := tx.Watch(ctx, gameKey(activeID)).Err(); err != nil {
			return fmt.Errorf("failed to watch game: %w", err)
		}

		game, err := getGame(ctx, tx, activeID)
		if err != nil {
			if errors.Is(err, ErrGameNotFound) {
				return ErrNoActiveGame
			}
			return err
		}

		if err := input.Update(game); err != nil {
			return err
		}

		gameJSON, err := json.Marshal(game)
		if err != nil {
			return fmt.Errorf("failed to marshal game: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, gameKey(game.ID), gameJSON, 0)
			if !game.Status.IsActive() {
				pipe.Del(ctx, activeGameKey)
			}
			return nil
		})
		if err != nil {
			return err
		}

		updated = game
		return nil
	}

	if err := r.watch(ctx, txf, activeGameKey); err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteAllGames removes every game, its submissions and quota counters
func (r *redisRepository) DeleteAllGames(ctx context.Context, input *DeleteAllGamesInput) (*DeleteAllGamesOutput, error) {
	gameIDs, err := r.client.SMembers(ctx, allGamesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	keys := []string{activeGameKey, allGamesKey}
	for _, gameID := range gameIDs {
		refs, err := r.client.SMembers(ctx, gameRefsKey(gameID)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to list participants of game %s: %w", gameID, err)
		}
		for _, ref := range refs {
			keys = append(keys, gameUsedKey(gameID, ref))
		}
		keys = append(keys, gameKey(gameID), gameSubmissionsKey(gameID), gameRefsKey(gameID))
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, keys...)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to delete games: %w", err)
	}

	return &DeleteAllGamesOutput{
		GamesDeleted: len(gameIDs),
	}, nil
}

// CreateSubmission checks the game status and the participant's used count
// and appends the submission in one optimistic transaction.
func (r *redisRepository) CreateSubmission(ctx context.Context, input *CreateSubmissionInput) (*CreateSubmissionOutput, error) {
	if input == nil || input.Submission == nil {
		return nil, errors.New("input and submission cannot be nil")
	}

	submission := *input.Submission
	ref := submission.ParticipantRef()
	if submission.GameID == "" || ref == "" {
		return nil, errors.New("game ID and participant cannot be empty")
	}

	usedKey := gameUsedKey(submission.GameID, ref)
	var used int

	txf := func(tx *redis.Tx) error {
		game, err := getGame(ctx, tx, submission.GameID)
		if err != nil {
			return err
		}
		if !game.Status.IsAccepting() {
			return ErrGameNotAccepting
		}

		count, err := tx.Get(ctx, usedKey).Int()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("failed to get submission count: %w", err)
		}
		if count >= input.Quota {
			return ErrQuotaExceeded
		}

		submission.SubmissionNumber = count + 1
		submissionJSON, err := json.Marshal(&submission)
		if err != nil {
			return fmt.Errorf("failed to marshal submission: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.RPush(ctx, gameSubmissionsKey(submission.GameID), submissionJSON)
			pipe.Set(ctx, usedKey, submission.SubmissionNumber, 0)
			pipe.SAdd(ctx, gameRefsKey(submission.GameID), ref)
			return nil
		})
		if err != nil {
			return err
		}

		used = submission.SubmissionNumber
		return nil
	}

	if err := r.watch(ctx, txf, gameKey(submission.GameID), usedKey); err != nil {
		return nil, err
	}

	return &CreateSubmissionOutput{
		Submission: &submission,
		Used:       used,
	}, nil
}

// ListSubmissions retrieves all submissions of a game in arrival order
func (r *redisRepository) ListSubmissions(ctx context.Context, input *ListSubmissionsInput) ([]*models.Submission, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	entries, err := r.client.LRange(ctx, gameSubmissionsKey(input.GameID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	submissions := make([]*models.Submission, 0, len(entries))
	for _, entry := range entries {
		var submission models.Submission
		if err := json.Unmarshal([]byte(entry), &submission); err != nil {
			return nil, fmt.Errorf("failed to unmarshal submission: %w", err)
		}
		submissions = append(submissions, &submission)
	}

	return submissions, nil
}

// CountSubmissions counts a game's submissions, or one participant's when ParticipantRef is set
func (r *redisRepository) CountSubmissions(ctx context.Context, input *CountSubmissionsInput) (int, error) {
	if input == nil || input.GameID == "" {
		return 0, errors.New("input and game ID cannot be empty")
	}

	if input.ParticipantRef == "" {
		count, err := r.client.LLen(ctx, gameSubmissionsKey(input.GameID)).Result()
		if err != nil {
			return 0, fmt.Errorf("failed to count submissions: %w", err)
		}
		return int(count), nil
	}

	count, err := r.client.Get(ctx, gameUsedKey(input.GameID, input.ParticipantRef)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to count submissions: %w", err)
	}

	return count, nil
}

// watch runs txf in a WATCH/MULTI transaction, retrying when a watched key changed
func (r *redisRepository) watch(ctx context.Context, txf func(tx *redis.Tx) error, keys ...string) error {
	for i := 0; i < maxTxRetries; i++ {
		err := r.client.Watch(ctx, txf, keys...)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return ErrTooMuchContention
}

func getGame(ctx context.Context, client getter, gameID string) (*models.Game, error) {
	gameJSON, err := client.Get(ctx, gameKey(gameID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	var game models.Game
	if err := json.Unmarshal([]byte(gameJSON), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &game, nil
}
