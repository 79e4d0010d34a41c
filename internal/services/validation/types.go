package validation

import (
	"time"

	"github.com/KirkDiggler/mysterybox/internal/provider"
	"github.com/KirkDiggler/mysterybox/internal/textmatch"
	"github.com/rs/zerolog"
)

// Config holds configuration for the validation service
type Config struct {
	// Provider is the optional AI backend; nil means orthographic checks only
	Provider provider.TextProvider

	// ProviderTimeout bounds each provider attempt
	ProviderTimeout time.Duration

	// Logger receives fallback warnings
	Logger *zerolog.Logger
}

// ValidateInput contains the guess and the answer it is compared to
type ValidateInput struct {
	Guess  string
	Answer string

	// LocalOnly skips the provider even when one is configured
	LocalOnly bool

	// MaxProviderCalls caps attempts, retries included, below the default of two.
	// Zero keeps the default.
	MaxProviderCalls int
}

// ValidateOutput contains the judgement
type ValidateOutput struct {
	Judgement Judgement

	// ProviderCalls is the number of provider attempts made, retries included
	ProviderCalls int
}

// Assessment is the outcome shared by every judgement source
type Assessment struct {
	IsCorrect  bool
	Confidence float64
	Reason     string
}

// Judgement is either a LocalJudgement or a ProviderJudgement
type Judgement interface {
	Assessment() Assessment
	isJudgement()
}

// LocalJudgement comes from the edit-distance matcher
type LocalJudgement struct {
	Result Assessment
	Match  textmatch.Result

	// FallbackCause is the provider failure that left the local rejection standing
	FallbackCause error
}

// Assessment returns the outcome
func (j LocalJudgement) Assessment() Assessment { return j.Result }

func (LocalJudgement) isJudgement() {}

// ProviderJudgement comes from the external text provider after a local miss
type ProviderJudgement struct {
	Result   Assessment
	Match    textmatch.Result
	Provider string
}

// Assessment returns the outcome
func (j ProviderJudgement) Assessment() Assessment { return j.Result }

func (ProviderJudgement) isJudgement() {}

// providerVerdict is the JSON contract with the provider
type providerVerdict struct {
	IsCorrect  *bool   `json:"isCorrect"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}
