package participant

import (
	"github.com/KirkDiggler/mysterybox/internal/common/clock"
	"github.com/KirkDiggler/mysterybox/internal/common/uuid"
	"github.com/KirkDiggler/mysterybox/internal/models"
	participantRepo "github.com/KirkDiggler/mysterybox/internal/repositories/participant"
	"github.com/KirkDiggler/mysterybox/internal/services/audit"
	"github.com/rs/zerolog"
)

// Config holds configuration for the participant service
type Config struct {
	ParticipantRepo participantRepo.Repository
	Audit           audit.Service
	Clock           clock.Clock
	UUID            uuid.UUID
	Logger          *zerolog.Logger
}

// ReferralOutcome describes what happened to the referral code of a registration
type ReferralOutcome string

const (
	// ReferralNone means no code was given
	ReferralNone ReferralOutcome = "none"

	// ReferralGranted means the referrer received an extra guess
	ReferralGranted ReferralOutcome = "granted"

	// ReferralAlreadyGranted means this participant had already earned someone a bonus
	ReferralAlreadyGranted ReferralOutcome = "already_granted"

	// ReferralUnknownCode means the code matched nobody
	ReferralUnknownCode ReferralOutcome = "unknown_code"

	// ReferralSelf means the participant used their own code
	ReferralSelf ReferralOutcome = "self_referral"
)

// RegisterInput contains the registration form
type RegisterInput struct {
	Name         string
	Phone        string
	Neighborhood string
	City         string
	ReferralCode string
}

// RegisterOutput contains the registered participant
type RegisterOutput struct {
	Participant *models.Participant

	// Created is false when the phone was already registered
	Created bool

	Referral ReferralOutcome
}

// GetParticipantInput identifies a participant
type GetParticipantInput struct {
	ParticipantID string
}

// ResolveInput identifies a participant by ID or by name and phone
type ResolveInput struct {
	ParticipantID string
	Name          string
	Phone         string
}

// ResetExtraGuessesInput contains parameters for clearing referral bonuses
type ResetExtraGuessesInput struct {
}

// ResetExtraGuessesOutput reports how many participants lost a bonus
type ResetExtraGuessesOutput struct {
	ParticipantsReset int
}
