package game

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/mysterybox/internal/repositories/game Repository

import (
	"context"

	"github.com/KirkDiggler/mysterybox/internal/models"
)

// Repository defines the interface for game and submission persistence.
// At most one game may be accepting or closed at a time.
type Repository interface {
	// CreateGame persists a new game and makes it the active game
	CreateGame(ctx context.Context, input *CreateGameInput) error

	// GetGame retrieves a game by ID
	GetGame(ctx context.Context, input *GetGameInput) (*models.Game, error)

	// GetActiveGame retrieves the accepting or closed game
	GetActiveGame(ctx context.Context, input *GetActiveGameInput) (*models.Game, error)

	// UpdateActiveGame applies a mutation to the active game atomically
	UpdateActiveGame(ctx context.Context, input *UpdateActiveGameInput) (*models.Game, error)

	// DeleteAllGames removes every game and submission
	DeleteAllGames(ctx context.Context, input *DeleteAllGamesInput) (*DeleteAllGamesOutput, error)

	// CreateSubmission stores a guess if the game accepts it and the participant has quota left
	CreateSubmission(ctx context.Context, input *CreateSubmissionInput) (*CreateSubmissionOutput, error)

	// ListSubmissions retrieves all submissions of a game in arrival order
	ListSubmissions(ctx context.Context, input *ListSubmissionsInput) ([]*models.Submission, error)

	// CountSubmissions counts submissions of a game, optionally for one participant
	CountSubmissions(ctx context.Context, input *CountSubmissionsInput) (int, error)
}
