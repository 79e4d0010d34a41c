package participant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/mysterybox/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	participantKeyPrefix = "participant:"
	phoneKeyPrefix       = "participant:phone:"
	codeKeyPrefix        = "participant:code:"
	allParticipantsKey   = "participants"
	rewardKeyPrefix      = "referral:reward:"

	maxTxRetries = 100
)

// Config holds configuration for the Redis participant repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// getter is satisfied by both *redis.Client and *redis.Tx
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// NewRedis creates a new Redis-backed participant repository
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

func participantKey(id string) string {
	return participantKeyPrefix + id
}

func phoneKey(phone string) string {
	return phoneKeyPrefix + phone
}

func codeKey(code string) string {
	return codeKeyPrefix + strings.ToUpper(code)
}

func rewardKey(referredID string) string {
	return rewardKeyPrefix + referredID
}

// CreateParticipant stores the participant and claims its phone and referral code
func (r *redisRepository) CreateParticipant(ctx context.Context, input *CreateParticipantInput) error {
	if input == nil || input.Participant == nil {
		return errors.New("input and participant cannot be nil")
	}

	p := input.Participant
	if p.ID == "" || p.Phone == "" || p.OwnReferralCode == "" {
		return errors.New("participant ID, phone and referral code cannot be empty")
	}

	participantJSON, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal participant: %w", err)
	}

	txf := func(tx *redis.Tx) error {
		taken, err := tx.Exists(ctx, phoneKey(p.Phone)).Result()
		if err != nil {
			return fmt.Errorf("failed to check phone: %w", err)
		}
		if taken > 0 {
			return ErrPhoneAlreadyRegistered
		}

		taken, err = tx.Exists(ctx, codeKey(p.OwnReferralCode)).Result()
		if err != nil {
			return fmt.Errorf("failed to check referral code: %w", err)
		}
		if taken > 0 {
			return ErrReferralCodeTaken
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, participantKey(p.ID), participantJSON, 0)
			pipe.Set(ctx, phoneKey(p.Phone), p.ID, 0)
			pipe.Set(ctx, codeKey(p.OwnReferralCode), p.ID, 0)
			pipe.SAdd(ctx, allParticipantsKey, p.ID)
			return nil
		})
		return err
	}

	return r.watch(ctx, txf, phoneKey(p.Phone), codeKey(p.OwnReferralCode))
}

// GetParticipant retrieves a participant by ID from Redis
func (r *redisRepository) GetParticipant(ctx context.Context, input *GetParticipantInput) (*models.Participant, error) {
	if input == nil || input.ParticipantID == "" {
		return nil, errors.New("input and participant ID cannot be empty")
	}

	return getParticipant(ctx, r.client, input.ParticipantID)
}

// GetParticipantByPhone resolves the phone index and loads the participant
func (r *redisRepository) GetParticipantByPhone(ctx context.Context, input *GetParticipantByPhoneInput) (*models.Participant, error) {
	if input == nil || input.Phone == "" {
		return nil, errors.New("input and phone cannot be empty")
	}

	return r.getByIndex(ctx, phoneKey(input.Phone))
}

// GetParticipantByReferralCode resolves the referral code index, ignoring case
func (r *redisRepository) GetParticipantByReferralCode(ctx context.Context, input *GetParticipantByReferralCodeInput) (*models.Participant, error) {
	if input == nil || input.ReferralCode == "" {
		return nil, errors.New("input and referral code cannot be empty")
	}

	return r.getByIndex(ctx, codeKey(input.ReferralCode))
}

// UpdateProfile updates the non-empty descriptive fields of a participant
func (r *redisRepository) UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*models.Participant, error) {
	if input == nil || input.ParticipantID == "" {
		return nil, errors.New("input and participant ID cannot be empty")
	}

	key := participantKey(input.ParticipantID)
	var updated *models.Participant

	txf := func(tx *redis.Tx) error {
		p, err := getParticipant(ctx, tx, input.ParticipantID)
		if err != nil {
			return err
		}

		input.Apply(p)

		participantJSON, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to marshal participant: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, participantJSON, 0)
			return nil
		})
		if err != nil {
			return err
		}

		updated = p
		return nil
	}

	if err := r.watch(ctx, txf, key); err != nil {
		return nil, err
	}

	return updated, nil
}

// GrantReferralReward watches the reward row and the referrer, so two
// registrations of the same participant can never both increment the referrer.
func (r *redisRepository) GrantReferralReward(ctx context.Context, input *GrantReferralRewardInput) (*GrantReferralRewardOutput, error) {
	if input == nil || input.ReferrerID == "" || input.ReferredID == "" {
		return nil, errors.New("input, referrer ID and referred ID cannot be empty")
	}

	output := &GrantReferralRewardOutput{}
	txf := func(tx *redis.Tx) error {
		referrer, err := getParticipant(ctx, tx, input.ReferrerID)
		if err != nil {
			return err
		}

		exists, err := tx.Exists(ctx, rewardKey(input.ReferredID)).Result()
		if err != nil {
			return fmt.Errorf("failed to check referral reward: %w", err)
		}
		if exists > 0 {
			output.Granted = false
			output.Referrer = referrer
			return nil
		}

		referrer.ExtraGuesses++
		referrer.UpdatedAt = input.CreatedAt

		referrerJSON, err := json.Marshal(referrer)
		if err != nil {
			return fmt.Errorf("failed to marshal participant: %w", err)
		}
		rewardJSON, err := json.Marshal(&models.ReferralReward{
			ReferrerID: input.ReferrerID,
			ReferredID: input.ReferredID,
			Granted:    true,
			CreatedAt:  input.CreatedAt,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal referral reward: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, participantKey(referrer.ID), referrerJSON, 0)
			pipe.Set(ctx, rewardKey(input.ReferredID), rewardJSON, 0)
			return nil
		})
		if err != nil {
			return err
		}

		output.Granted = true
		output.Referrer = referrer
		return nil
	}

	if err := r.watch(ctx, txf, rewardKey(input.ReferredID), participantKey(input.ReferrerID)); err != nil {
		return nil, err
	}

	return output, nil
}

// GetReferralReward retrieves the reward row of a referred participant
func (r *redisRepository) GetReferralReward(ctx context.Context, input *GetReferralRewardInput) (*models.ReferralReward, error) {
	if input == nil || input.ReferredID == "" {
		return nil, errors.New("input and referred ID cannot be empty")
	}

	rewardJSON, err := r.client.Get(ctx, rewardKey(input.ReferredID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrReferralRewardNotFound
		}
		return nil, fmt.Errorf("failed to get referral reward: %w", err)
	}

	var reward models.ReferralReward
	if err := json.Unmarshal([]byte(rewardJSON), &reward); err != nil {
		return nil, fmt.Errorf("failed to unmarshal referral reward: %w", err)
	}

	return &reward, nil
}

// ResetExtraGuesses zeroes every participant's extra guesses, one transaction per participant
func (r *redisRepository) ResetExtraGuesses(ctx context.Context, input *ResetExtraGuessesInput) (*ResetExtraGuessesOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	ids, err := r.client.SMembers(ctx, allParticipantsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	output := &ResetExtraGuessesOutput{}
	for _, id := range ids {
		reset := false
		txf := func(tx *redis.Tx) error {
			p, err := getParticipant(ctx, tx, id)
			if err != nil {
				return err
			}
			if p.ExtraGuesses == 0 {
				return nil
			}

			p.ExtraGuesses = 0
			p.UpdatedAt = input.UpdatedAt
			participantJSON, err := json.Marshal(p)
			if err != nil {
				return fmt.Errorf("failed to marshal participant: %w", err)
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, participantKey(id), participantJSON, 0)
				return nil
			})
			if err != nil {
				return err
			}

			reset = true
			return nil
		}

		if err := r.watch(ctx, txf, participantKey(id)); err != nil {
			if errors.Is(err, ErrParticipantNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to reset participant %s: %w", id, err)
		}
		if reset {
			output.ParticipantsReset++
		}
	}

	return output, nil
}

func (r *redisRepository) getByIndex(ctx context.Context, indexKey string) (*models.Participant, error) {
	id, err := r.client.Get(ctx, indexKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to resolve participant index: %w", err)
	}

	return getParticipant(ctx, r.client, id)
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

func getParticipant(ctx context.Context, client getter, id string) (*models.Participant, error) {
	participantJSON, err := client.Get(ctx, participantKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	var p models.Participant
	if err := json.Unmarshal([]byte(participantJSON), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal participant: %w", err)
	}

	return &p, nil
}
