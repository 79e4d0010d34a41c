package participant

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/mysterybox/internal/repositories/participant Repository

import (
	"context"

	"github.com/KirkDiggler/mysterybox/internal/models"
)

// Repository defines the interface for participant and referral persistence
type Repository interface {
	// CreateParticipant persists a participant with a unique phone and referral code
	CreateParticipant(ctx context.Context, input *CreateParticipantInput) error

	// GetParticipant retrieves a participant by ID
	GetParticipant(ctx context.Context, input *GetParticipantInput) (*models.Participant, error)

	// GetParticipantByPhone retrieves a participant by phone
	GetParticipantByPhone(ctx context.Context, input *GetParticipantByPhoneInput) (*models.Participant, error)

	// GetParticipantByReferralCode retrieves the owner of a referral code
	GetParticipantByReferralCode(ctx context.Context, input *GetParticipantByReferralCodeInput) (*models.Participant, error)

	// UpdateProfile updates the descriptive fields of a participant
	UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*models.Participant, error)

	// GrantReferralReward gives the referrer one extra guess unless the referred participant was already rewarded
	GrantReferralReward(ctx context.Context, input *GrantReferralRewardInput) (*GrantReferralRewardOutput, error)

	// GetReferralReward retrieves the reward row of a referred participant
	GetReferralReward(ctx context.Context, input *GetReferralRewardInput) (*models.ReferralReward, error)

	// ResetExtraGuesses sets every participant's extra guesses back to zero
	ResetExtraGuesses(ctx context.Context, input *ResetExtraGuessesInput) (*ResetExtraGuessesOutput, error)
}
