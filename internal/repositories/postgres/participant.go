package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/mysterybox/internal/models"
	participantrepo "github.com/KirkDiggler/mysterybox/internal/repositories/participant"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const participantColumns = `id, name, phone, neighborhood, city, own_referral_code, referred_by_code, extra_guesses, created_at, updated_at`

// participantRepository implements the participant Repository interface using PostgreSQL
type participantRepository struct {
	pool *pgxpool.Pool
}

// NewParticipantRepository creates a PostgreSQL-backed participant repository
func NewParticipantRepository(cfg *Config) (*participantRepository, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &participantRepository{
		pool: cfg.Pool,
	}, nil
}

// CreateParticipant inserts the participant; unique indexes guard phone and referral code
func (r *participantRepository) CreateParticipant(ctx context.Context, input *participantrepo.CreateParticipantInput) error {
	if input == nil || input.Participant == nil {
		return errors.New("input and participant cannot be nil")
	}

	p := input.Participant
	if p.ID == "" || p.Phone == "" || p.OwnReferralCode == "" {
		return errors.New("participant ID, phone and referral code cannot be empty")
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO public_participants (`+participantColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, p.ID, p.Name, p.Phone, p.Neighborhood, p.City, p.OwnReferralCode,
		strings.ToUpper(p.ReferredByCode), p.ExtraGuesses, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err, phoneConstraint):
			return participantrepo.ErrPhoneAlreadyRegistered
		case isUniqueViolation(err, referralCodeIndex):
			return participantrepo.ErrReferralCodeTaken
		}
		return fmt.Errorf("failed to create participant: %w", err)
	}

	return nil
}

// GetParticipant retrieves a participant by ID
func (r *participantRepository) GetParticipant(ctx context.Context, input *participantrepo.GetParticipantInput) (*models.Participant, error) {
	if input == nil || input.ParticipantID == "" {
		return nil, errors.New("input and participant ID cannot be empty")
	}

	return r.getBy(ctx, r.pool, `id = $1`, input.ParticipantID)
}

// GetParticipantByPhone retrieves a participant by phone
func (r *participantRepository) GetParticipantByPhone(ctx context.Context, input *participantrepo.GetParticipantByPhoneInput) (*models.Participant, error) {
	if input == nil || input.Phone == "" {
		return nil, errors.New("input and phone cannot be empty")
	}

	return r.getBy(ctx, r.pool, `phone = $1`, input.Phone)
}

// GetParticipantByReferralCode retrieves the owner of a referral code, ignoring case
func (r *participantRepository) GetParticipantByReferralCode(ctx context.Context, input *participantrepo.GetParticipantByReferralCodeInput) (*models.Participant, error) {
	if input == nil || input.ReferralCode == "" {
		return nil, errors.New("input and referral code cannot be empty")
	}

	return r.getBy(ctx, r.pool, `upper(own_referral_code) = upper($1)`, input.ReferralCode)
}

// UpdateProfile locks the participant row and writes back the non-empty fields
func (r *participantRepository) UpdateProfile(ctx context.Context, input *participantrepo.UpdateProfileInput) (*models.Participant, error) {
	if input == nil || input.ParticipantID == "" {
		return nil, errors.New("input and participant ID cannot be empty")
	}

	var updated *models.Participant
	err := runSerializable(ctx, r.pool, participantrepo.ErrTooMuchContention, func(tx pgx.Tx) error {
		p, err := r.getBy(ctx, tx, `id = $1 FOR UPDATE`, input.ParticipantID)
		if err != nil {
			return err
		}

		input.Apply(p)

		_, err = tx.Exec(ctx, `
			UPDATE public_participants
			SET name = $2, neighborhood = $3, city = $4, referred_by_code = $5, updated_at = $6
			WHERE id = $1
		`, p.ID, p.Name, p.Neighborhood, p.City, p.ReferredByCode, p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to update participant: %w", err)
		}

		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// GrantReferralReward inserts the reward row and credits the referrer in one
// transaction. The reward's primary key makes the grant idempotent per referred participant.
func (r *participantRepository) GrantReferralReward(ctx context.Context, input *participantrepo.GrantReferralRewardInput) (*participantrepo.GrantReferralRewardOutput, error) {
	if input == nil || input.ReferrerID == "" || input.ReferredID == "" {
		return nil, errors.New("input, referrer ID and referred ID cannot be empty")
	}

	var output *participantrepo.GrantReferralRewardOutput
	err := runSerializable(ctx, r.pool, participantrepo.ErrTooMuchContention, func(tx pgx.Tx) error {
		referrer, err := r.getBy(ctx, tx, `id = $1 FOR UPDATE`, input.ReferrerID)
		if err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `
			INSERT INTO referral_rewards (referred_id, referrer_id, granted, created_at)
			VALUES ($1, $2, true, $3)
			ON CONFLICT (referred_id) DO NOTHING
		`, input.ReferredID, input.ReferrerID, input.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert referral reward: %w", err)
		}
		if tag.RowsAffected() == 0 {
			output = &participantrepo.GrantReferralRewardOutput{Granted: false, Referrer: referrer}
			return nil
		}

		referrer.ExtraGuesses++
		referrer.UpdatedAt = input.CreatedAt
		_, err = tx.Exec(ctx, `
			UPDATE public_participants
			SET extra_guesses = $2, updated_at = $3
			WHERE id = $1
		`, referrer.ID, referrer.ExtraGuesses, referrer.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to credit referrer: %w", err)
		}

		output = &participantrepo.GrantReferralRewardOutput{Granted: true, Referrer: referrer}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// GetReferralReward retrieves the reward row of a referred participant
func (r *participantRepository) GetReferralReward(ctx context.Context, input *participantrepo.GetReferralRewardInput) (*models.ReferralReward, error) {
	if input == nil || input.ReferredID == "" {
		return nil, errors.New("input and referred ID cannot be empty")
	}

	var reward models.ReferralReward
	err := r.pool.QueryRow(ctx, `
		SELECT referrer_id, referred_id, granted, created_at
		FROM referral_rewards
		WHERE referred_id = $1
	`, input.ReferredID).Scan(&reward.ReferrerID, &reward.ReferredID, &reward.Granted, &reward.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, participantrepo.ErrReferralRewardNotFound
		}
		return nil, fmt.Errorf("failed to get referral reward: %w", err)
	}

	return &reward, nil
}

// ResetExtraGuesses zeroes the extra guesses of every participant that has any
func (r *participantRepository) ResetExtraGuesses(ctx context.Context, input *participantrepo.ResetExtraGuessesInput) (*participantrepo.ResetExtraGuessesOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE public_participants
		SET extra_guesses = 0, updated_at = $1
		WHERE extra_guesses <> 0
	`, input.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reset extra guesses: %w", err)
	}

	return &participantrepo.ResetExtraGuessesOutput{
		ParticipantsReset: int(tag.RowsAffected()),
	}, nil
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *participantRepository) getBy(ctx context.Context, q querier, where string, arg any) (*models.Participant, error) {
	var p models.Participant
	err := q.QueryRow(ctx, `SELECT `+participantColumns+` FROM public_participants WHERE `+where, arg).Scan(
		&p.ID, &p.Name, &p.Phone, &p.Neighborhood, &p.City, &p.OwnReferralCode,
		&p.ReferredByCode, &p.ExtraGuesses, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, participantrepo.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	return &p, nil
}
