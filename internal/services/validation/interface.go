package validation

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/mysterybox/internal/services/validation Service

import "context"

// Service decides whether a guess names the hidden product
type Service interface {
	// Validate checks the guess orthographically first and semantically second
	Validate(ctx context.Context, input *ValidateInput) (*ValidateOutput, error)
}
