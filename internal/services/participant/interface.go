package participant

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/mysterybox/internal/services/participant Service

import (
	"context"

	"github.com/KirkDiggler/mysterybox/internal/models"
)

// Service registers participants and keeps the referral ledger
type Service interface {
	// Register creates or updates a participant and applies a referral code once
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// GetParticipant retrieves a participant by ID
	GetParticipant(ctx context.Context, input *GetParticipantInput) (*models.Participant, error)

	// Resolve finds the participant behind a submission, registering name+phone when unknown
	Resolve(ctx context.Context, input *ResolveInput) (*models.Participant, error)

	// ResetExtraGuesses returns every participant to the base quota
	ResetExtraGuesses(ctx context.Context, input *ResetExtraGuessesInput) (*ResetExtraGuessesOutput, error)
}
