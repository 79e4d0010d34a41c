package game

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/mysterybox/internal/services/game Service

import (
	"context"
)

// Service runs the mystery box game: one live game at a time, moving from
// accepting to closed to finished
type Service interface {
	// Start creates an accepting game for a product with its first clue revealed
	Start(ctx context.Context, input *StartInput) (*StartOutput, error)

	// RevealClue reveals the next clue of the live game
	RevealClue(ctx context.Context, input *RevealClueInput) (*RevealClueOutput, error)

	// EndSubmissions closes the accepting game
	EndSubmissions(ctx context.Context, input *EndSubmissionsInput) (*EndSubmissionsOutput, error)

	// DrawWinner draws uniformly among submissions judged correct
	DrawWinner(ctx context.Context, input *DrawWinnerInput) (*DrawWinnerOutput, error)

	// DrawWinnerFromAll draws uniformly among every submission
	DrawWinnerFromAll(ctx context.Context, input *DrawWinnerInput) (*DrawWinnerOutput, error)

	// Reset deletes every game and submission and clears extra guesses
	Reset(ctx context.Context, input *ResetInput) (*ResetOutput, error)

	// GetLive returns the public view of the live game
	GetLive(ctx context.Context, input *GetLiveInput) (*GetLiveOutput, error)

	// SubmitGuess moderates and stores a guess within the participant's quota
	SubmitGuess(ctx context.Context, input *SubmitGuessInput) (*SubmitGuessOutput, error)

	// GetQuota reports how many guesses a participant has left in a game
	GetQuota(ctx context.Context, input *GetQuotaInput) (*GetQuotaOutput, error)
}
