package validation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/mysterybox/internal/provider"
	"github.com/KirkDiggler/mysterybox/internal/textmatch"
	"github.com/rs/zerolog"
)

const (
	defaultProviderTimeout = 5 * time.Second
	maxProviderAttempts    = 2

	orthographicMatchReason = "orthographic match"
)

// service implements the Service interface
type service struct {
	provider        provider.TextProvider
	providerTimeout time.Duration
	logger          zerolog.Logger
}

// New creates a new validation service
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
		logger = cfg.Logger.With().Str("component", "validation").Logger()
	}

	return &service{
		provider:        cfg.Provider,
		providerTimeout: timeout,
		logger:          logger,
	}, nil
}

// Validate accepts orthographic matches immediately and asks the provider about the rest.
// Provider failures leave the local rejection standing.
func (s *service) Validate(ctx context.Context, input *ValidateInput) (*ValidateOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if strings.TrimSpace(input.Answer) == "" {
		return nil, ErrEmptyAnswer
	}

	match := textmatch.Match(input.Guess, input.Answer)
	if match.IsCorrect {
		return &ValidateOutput{
			Judgement: LocalJudgement{
				Result: Assessment{
					IsCorrect:  true,
					Confidence: match.Confidence,
					Reason:     orthographicMatchReason,
				},
				Match: match,
			},
		}, nil
	}

	local := LocalJudgement{
		Result: Assessment{
			IsCorrect:  false,
			Confidence: match.Confidence,
			Reason:     localRejectionReason(match),
		},
		Match: match,
	}

	if s.provider == nil || input.LocalOnly || match.NormalizedGuess == "" {
		return &ValidateOutput{Judgement: local}, nil
	}

	judgement, calls, err := s.validateWithProvider(ctx, input, match)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("provider", s.provider.Name()).
			Int("attempts", calls).
			Msg("validation provider failed, keeping local rejection")
		local.FallbackCause = err
		return &ValidateOutput{Judgement: local, ProviderCalls: calls}, nil
	}

	return &ValidateOutput{Judgement: judgement, ProviderCalls: calls}, nil
}

func (s *service) validateWithProvider(ctx context.Context, input *ValidateInput, match textmatch.Result) (Judgement, int, error) {
	prompt := fmt.Sprintf("Answer: %s\nGuess: %s", strings.TrimSpace(input.Answer), strings.TrimSpace(input.Guess))

	var (
		output *provider.CompleteOutput
		err    error
		calls  int
	)
	attempts := maxProviderAttempts
	if input.MaxProviderCalls > 0 && input.MaxProviderCalls < attempts {
		attempts = input.MaxProviderCalls
	}
	for calls < attempts {
		calls++
		output, err = s.complete(ctx, prompt)
		if err == nil || !provider.IsTransient(err) || ctx.Err() != nil {
			break
		}
	}
	if err != nil {
		return nil, calls, err
	}

	var parsed providerVerdict
	if err := provider.DecodeJSON(output.Text, &parsed); err != nil {
		return nil, calls, err
	}
	if parsed.IsCorrect == nil {
		return nil, calls, ErrUnparsableVerdict
	}

	return ProviderJudgement{
		Result: Assessment{
			IsCorrect:  *parsed.IsCorrect,
			Confidence: clamp(parsed.Confidence),
			Reason:     strings.TrimSpace(parsed.Reason),
		},
		Match:    match,
		Provider: s.provider.Name(),
	}, calls, nil
}

func (s *service) complete(ctx context.Context, prompt string) (*provider.CompleteOutput, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.providerTimeout)
	defer cancel()

	return s.provider.Complete(callCtx, &provider.CompleteInput{
		System: validationInstructions,
		Prompt: prompt,
	})
}

func localRejectionReason(match textmatch.Result) string {
	if match.NormalizedGuess == "" {
		return "guess is empty after normalization"
	}
	return fmt.Sprintf("edit distance %d exceeds tolerance %d", match.Distance, match.Tolerance)
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
