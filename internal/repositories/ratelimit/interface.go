package ratelimit

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/mysterybox/internal/repositories/ratelimit Repository

import "context"

// Repository counts requests per key in fixed windows
type Repository interface {
	// Allow records one request for the key and reports whether it fits in the window
	Allow(ctx context.Context, input *AllowInput) (*AllowOutput, error)
}
