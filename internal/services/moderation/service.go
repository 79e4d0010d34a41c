package moderation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/mysterybox/internal/provider"
	"github.com/rs/zerolog"
)

const (
	defaultProviderTimeout = 4 * time.Second
	blockedReason          = "guess contains a blocked term"
	providerRejectedReason = "guess rejected by moderation"
)

// service implements the Service interface
type service struct {
	provider        provider.TextProvider
	blocklist       *blocklist
	providerTimeout time.Duration
	logger          zerolog.Logger
}

// New creates a new moderation service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	timeout := cfg.ProviderTimeout
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = cfg.Logger.With().Str("component", "moderation").Logger()
	}

	return &service{
		provider:        cfg.Provider,
		blocklist:       newBlocklist(cfg.ExtraBlockedTerms),
		providerTimeout: timeout,
		logger:          logger,
	}, nil
}

// Moderate runs the guess through the provider, falling back to the local blocklist.
// Provider failures never surface to the caller.
func (s *service) Moderate(ctx context.Context, input *ModerateInput) (*ModerateOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	guess := strings.TrimSpace(input.Guess)
	if guess == "" {
		return nil, ErrEmptyGuess
	}

	if s.provider == nil {
		return &ModerateOutput{Decision: s.moderateLocally(guess, nil)}, nil
	}

	decision, err := s.moderateWithProvider(ctx, guess)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("provider", s.provider.Name()).
			Msg("moderation provider failed, falling back to blocklist")
		return &ModerateOutput{Decision: s.moderateLocally(guess, err)}, nil
	}

	return &ModerateOutput{Decision: decision}, nil
}

func (s *service) moderateWithProvider(ctx context.Context, guess string) (Decision, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.providerTimeout)
	defer cancel()

	output, err := s.provider.Complete(callCtx, &provider.CompleteInput{
		System: moderationInstructions,
		Prompt: "Guess: " + guess,
	})
	if err != nil {
		return nil, err
	}

	var parsed providerVerdict
	if err := provider.DecodeJSON(output.Text, &parsed); err != nil {
		return nil, err
	}
	if parsed.Approved == nil {
		return nil, ErrUnparsableVerdict
	}

	corrected := strings.TrimSpace(parsed.CorrectedGuess)
	if corrected == "" {
		corrected = guess
	}

	reason := strings.TrimSpace(parsed.Reason)
	if !*parsed.Approved && reason == "" {
		reason = providerRejectedReason
	}

	return ProviderDecision{
		Result: Verdict{
			Approved:       *parsed.Approved,
			CorrectedGuess: corrected,
			Reason:         reason,
			NeedsReview:    parsed.NeedsReview,
		},
		Provider: s.provider.Name(),
	}, nil
}

func (s *service) moderateLocally(guess string, cause error) LocalDecision {
	term, blocked := s.blocklist.find(guess)

	decision := LocalDecision{
		Result: Verdict{
			Approved:       !blocked,
			CorrectedGuess: guess,
			NeedsReview:    blocked,
		},
		FallbackCause: cause,
	}

	if blocked {
		decision.BlockedTerm = term
		decision.Result.Reason = fmt.Sprintf("%s: %q", blockedReason, term)
	}

	return decision
}
