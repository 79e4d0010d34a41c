package moderation

import (
	"time"

	"github.com/KirkDiggler/mysterybox/internal/models"
	"github.com/KirkDiggler/mysterybox/internal/provider"
	"github.com/rs/zerolog"
)

// Config holds configuration for the moderation service
type Config struct {
	// Provider is the optional AI backend; nil means blocklist only
	Provider provider.TextProvider

	// ExtraBlockedTerms extend the built-in blocklist
	ExtraBlockedTerms []string

	// ProviderTimeout bounds a single provider call
	ProviderTimeout time.Duration

	// Logger receives fallback warnings
	Logger *zerolog.Logger
}

// ModerateInput contains the guess to moderate
type ModerateInput struct {
	Guess string
}

// ModerateOutput contains the moderation decision
type ModerateOutput struct {
	Decision Decision
}

// Verdict is the outcome shared by every decision source
type Verdict struct {
	// Approved indicates the guess may be stored
	Approved bool

	// CorrectedGuess is the text to store, equal to the original when nothing was fixed
	CorrectedGuess string

	// Reason explains a rejection or a correction
	Reason string

	// NeedsReview flags the guess for a human
	NeedsReview bool
}

// Decision is either a LocalDecision or a ProviderDecision
type Decision interface {
	// Verdict returns the outcome
	Verdict() Verdict

	// Source reports which tier decided
	Source() models.ModerationSource

	isDecision()
}

// LocalDecision is produced by the keyword blocklist
type LocalDecision struct {
	Result Verdict

	// BlockedTerm is the blocklist entry that matched, if any
	BlockedTerm string

	// FallbackCause is the provider failure that led here, nil when no provider is configured
	FallbackCause error
}

// Verdict returns the outcome
func (d LocalDecision) Verdict() Verdict { return d.Result }

// Source reports the local tier
func (d LocalDecision) Source() models.ModerationSource { return models.ModerationSourceLocal }

func (LocalDecision) isDecision() {}

// ProviderDecision is produced by the external text provider
type ProviderDecision struct {
	Result Verdict

	// Provider names the backend that answered
	Provider string
}

// Verdict returns the outcome
func (d ProviderDecision) Verdict() Verdict { return d.Result }

// Source reports the provider tier
func (d ProviderDecision) Source() models.ModerationSource { return models.ModerationSourceProvider }

func (ProviderDecision) isDecision() {}

// providerVerdict is the JSON contract with the provider
type providerVerdict struct {
	Approved       *bool  `json:"approved"`
	CorrectedGuess string `json:"correctedGuess"`
	Reason         string `json:"reason"`
	NeedsReview    bool   `json:"needsReview"`
}
