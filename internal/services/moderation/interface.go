package moderation

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/mysterybox/internal/services/moderation Service

import "context"

// Service decides whether a guess may be stored and how it should be spelled
type Service interface {
	// Moderate runs the guess through the provider, falling back to the local blocklist
	Moderate(ctx context.Context, input *ModerateInput) (*ModerateOutput, error)
}
