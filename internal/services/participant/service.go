package participant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/KirkDiggler/mysterybox/internal/common/clock"
	"github.com/KirkDiggler/mysterybox/internal/common/uuid"
	"github.com/KirkDiggler/mysterybox/internal/models"
	participantRepo "github.com/KirkDiggler/mysterybox/internal/repositories/participant"
	"github.com/KirkDiggler/mysterybox/internal/services/audit"
	"github.com/rs/zerolog"
)

const (
	referralCodeLength = 8
	maxCodeAttempts    = 3
	minPhoneDigits     = 10
	maxPhoneDigits     = 13
)

// service implements the Service interface
type service struct {
	participantRepo participantRepo.Repository
	audit           audit.Service
	clock           clock.Clock
	uuid            uuid.UUID
	logger          zerolog.Logger
}

// New creates a new participant service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.ParticipantRepo == nil {
		return nil, ErrNilParticipantRepo
	}

	if cfg.Audit == nil {
		return nil, ErrNilAudit
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUID == nil {
		return nil, ErrNilUUID
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = cfg.Logger.With().Str("component", "participant").Logger()
	}

	return &service{
		participantRepo: cfg.ParticipantRepo,
		audit:           cfg.Audit,
		clock:           cfg.Clock,
		uuid:            cfg.UUID,
		logger:          logger,
	}, nil
}

// Register creates the participant on first contact and updates the profile
// afterwards. A referral code grants its owner one extra guess, at most once
// per registered participant.
func (s *service) Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrMissingName
	}

	phone, err := NormalizePhone(input.Phone)
	if err != nil {
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(input.ReferralCode))

	var referrer *models.Participant
	if code != "" {
		referrer, err = s.participantRepo.GetParticipantByReferralCode(ctx, &participantRepo.GetParticipantByReferralCodeInput{
			ReferralCode: code,
		})
		if err != nil && !errors.Is(err, participantRepo.ErrParticipantNotFound) {
			return nil, fmt.Errorf("failed to resolve referral code: %w", err)
		}
	}

	p, created, err := s.upsert(ctx, &RegisterInput{
		Name:         name,
		Phone:        phone,
		Neighborhood: strings.TrimSpace(input.Neighborhood),
		City:         strings.TrimSpace(input.City),
	}, referrer)
	if err != nil {
		return nil, err
	}

	if created {
		s.audit.Emit(ctx, &audit.EmitInput{
			Action:  models.AuditActionParticipantJoined,
			ActorID: p.ID,
			Details: map[string]string{"referralCode": code},
		})
	}

	output := &RegisterOutput{
		Participant: p,
		Created:     created,
		Referral:    ReferralNone,
	}

	switch {
	case code == "":
	case referrer == nil:
		output.Referral = ReferralUnknownCode
	case referrer.ID == p.ID:
		output.Referral = ReferralSelf
	default:
		granted, err := s.participantRepo.GrantReferralReward(ctx, &participantRepo.GrantReferralRewardInput{
			ReferrerID: referrer.ID,
			ReferredID: p.ID,
			CreatedAt:  s.clock.Now(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to grant referral reward: %w", err)
		}

		output.Referral = ReferralAlreadyGranted
		if granted.Granted {
			output.Referral = ReferralGranted
			s.audit.Emit(ctx, &audit.EmitInput{
				Action:  models.AuditActionReferralGranted,
				ActorID: p.ID,
				Details: map[string]string{
					"referrerId":   referrer.ID,
					"extraGuesses": fmt.Sprintf("%d", granted.Referrer.ExtraGuesses),
				},
			})
		}
	}

	s.logger.Info().
		Str("participant_id", p.ID).
		Bool("created", created).
		Str("referral", string(output.Referral)).
		Msg("participant registered")

	return output, nil
}

// upsert creates the participant or updates the existing profile for the phone
func (s *service) upsert(ctx context.Context, input *RegisterInput, referrer *models.Participant) (*models.Participant, bool, error) {
	existing, err := s.participantRepo.GetParticipantByPhone(ctx, &participantRepo.GetParticipantByPhoneInput{
		Phone: input.Phone,
	})
	if err != nil && !errors.Is(err, participantRepo.ErrParticipantNotFound) {
		return nil, false, fmt.Errorf("failed to look up phone: %w", err)
	}

	if existing == nil {
		p, err := s.create(ctx, input, referrer)
		if err == nil {
			return p, true, nil
		}
		if !errors.Is(err, participantRepo.ErrPhoneAlreadyRegistered) {
			return nil, false, err
		}

		// lost a race with a concurrent registration of the same phone
		existing, err = s.participantRepo.GetParticipantByPhone(ctx, &participantRepo.GetParticipantByPhoneInput{
			Phone: input.Phone,
		})
		if err != nil {
			return nil, false, fmt.Errorf("failed to look up phone: %w", err)
		}
	}

	update := &participantRepo.UpdateProfileInput{
		ParticipantID: existing.ID,
		Name:          input.Name,
		Neighborhood:  input.Neighborhood,
		City:          input.City,
		UpdatedAt:     s.clock.Now(),
	}
	if referrer != nil && referrer.ID != existing.ID {
		update.ReferredByCode = referrer.OwnReferralCode
	}

	p, err := s.participantRepo.UpdateProfile(ctx, update)
	if err != nil {
		return nil, false, fmt.Errorf("failed to update participant: %w", err)
	}

	return p, false, nil
}

func (s *service) create(ctx context.Context, input *RegisterInput, referrer *models.Participant) (*models.Participant, error) {
	now := s.clock.Now()
	p := &models.Participant{
		ID:           s.uuid.NewUUID(),
		Name:         input.Name,
		Phone:        input.Phone,
		Neighborhood: input.Neighborhood,
		City:         input.City,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if referrer != nil {
		p.ReferredByCode = referrer.OwnReferralCode
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		p.OwnReferralCode = s.uuid.NewCode(referralCodeLength)

		err := s.participantRepo.CreateParticipant(ctx, &participantRepo.CreateParticipantInput{
			Participant: p,
		})
		if err == nil {
			return p, nil
		}
		if errors.Is(err, participantRepo.ErrPhoneAlreadyRegistered) {
			return nil, err
		}
		if !errors.Is(err, participantRepo.ErrReferralCodeTaken) {
			return nil, fmt.Errorf("failed to create participant: %w", err)
		}
	}

	return nil, ErrReferralCodeSpace
}

// GetParticipant retrieves a participant by ID
func (s *service) GetParticipant(ctx context.Context, input *GetParticipantInput) (*models.Participant, error) {
	if input == nil || strings.TrimSpace(input.ParticipantID) == "" {
		return nil, ErrMissingIdentity
	}

	p, err := s.participantRepo.GetParticipant(ctx, &participantRepo.GetParticipantInput{
		ParticipantID: strings.TrimSpace(input.ParticipantID),
	})
	if err != nil {
		if errors.Is(err, participantRepo.ErrParticipantNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	return p, nil
}

// Resolve prefers the participant ID; otherwise it looks up the phone and
// registers the participant when the phone is new.
func (s *service) Resolve(ctx context.Context, input *ResolveInput) (*models.Participant, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if strings.TrimSpace(input.ParticipantID) != "" {
		return s.GetParticipant(ctx, &GetParticipantInput{ParticipantID: input.ParticipantID})
	}

	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Phone) == "" {
		return nil, ErrMissingIdentity
	}

	phone, err := NormalizePhone(input.Phone)
	if err != nil {
		return nil, err
	}

	p, err := s.participantRepo.GetParticipantByPhone(ctx, &participantRepo.GetParticipantByPhoneInput{Phone: phone})
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, participantRepo.ErrParticipantNotFound) {
		return nil, fmt.Errorf("failed to look up phone: %w", err)
	}

	output, err := s.Register(ctx, &RegisterInput{Name: input.Name, Phone: phone})
	if err != nil {
		return nil, err
	}

	return output.Participant, nil
}

// ResetExtraGuesses returns every participant to the base quota
func (s *service) ResetExtraGuesses(ctx context.Context, input *ResetExtraGuessesInput) (*ResetExtraGuessesOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	output, err := s.participantRepo.ResetExtraGuesses(ctx, &participantRepo.ResetExtraGuessesInput{
		UpdatedAt: s.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reset extra guesses: %w", err)
	}

	return &ResetExtraGuessesOutput{
		ParticipantsReset: output.ParticipantsReset,
	}, nil
}

// NormalizePhone keeps the digits of a phone number and checks their count
func NormalizePhone(phone string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)

	if digits == "" {
		return "", ErrMissingPhone
	}
	if len(digits) < minPhoneDigits || len(digits) > maxPhoneDigits {
		return "", ErrInvalidPhone
	}

	return digits, nil
}
