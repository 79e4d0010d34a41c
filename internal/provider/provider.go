// Package provider talks to the optional AI text backend used to moderate and
// validate guesses. Every backend is treated as unreliable: callers fall back
// to deterministic logic on any error.
package provider

//go:generate mockgen -package=mocks -destination=mocks/mock_provider.go github.com/KirkDiggler/mysterybox/internal/provider TextProvider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// TextProvider sends an instruction and a prompt to a language model and
// returns its raw text reply.
type TextProvider interface {
	// Complete runs a single prompt
	Complete(ctx context.Context, input *CompleteInput) (*CompleteOutput, error)

	// Name identifies the backend in logs and audit records
	Name() string
}

// CompleteInput contains parameters for a completion
type CompleteInput struct {
	// System holds the instructions for the model
	System string

	// Prompt is the user content to evaluate
	Prompt string
}

// CompleteOutput contains the raw reply of the model
type CompleteOutput struct {
	Text string
}

// ProviderError is a custom error type for provider failures
type ProviderError string

// Error implements the error interface
func (e ProviderError) Error() string {
	return string(e)
}

const (
	ErrEmptyResponse    ProviderError = "provider returned an empty response"
	ErrNoJSONObject     ProviderError = "no json object found in provider response"
	ErrUnterminatedJSON ProviderError = "unterminated json object in provider response"
	ErrNilConfig        ProviderError = "config cannot be nil"
	ErrMissingBaseURL   ProviderError = "base URL cannot be empty"
	ErrMissingModel     ProviderError = "model cannot be empty"
)

// TransientError marks failures worth retrying: timeouts, rate limits and 5xx replies
type TransientError struct {
	Err error
}

// Error implements the error interface
func (e *TransientError) Error() string {
	return fmt.Sprintf("transient provider failure: %v", e.Err)
}

// Unwrap returns the underlying error
func (e *TransientError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is worth a retry
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var transient *TransientError
	if errors.As(err, &transient) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// DecodeJSON extracts the first JSON object from a model reply and decodes it into v.
// Models often wrap JSON in prose or code fences.
func DecodeJSON(text string, v any) error {
	blob, err := extractJSONObject(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(blob), v); err != nil {
		return fmt.Errorf("failed to decode provider json: %w", err)
	}
	return nil
}

func extractJSONObject(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyResponse
	}

	start := strings.Index(raw, "{")
	if start < 0 {
		return "", ErrNoJSONObject
	}

	inString := false
	escape := false
	depth := 0
	for i := start; i < len(raw); i++ {
		ch := raw[i]
		if inString {
			if escape {
				escape = false
				continue
			}
			if ch == '\\' {
				escape = true
				continue
			}
			if ch == '"' {
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], nil
			}
		}
	}

	return "", ErrUnterminatedJSON
}
