package game

import (
	"time"

	"github.com/KirkDiggler/mysterybox/internal/common/clock"
	"github.com/KirkDiggler/mysterybox/internal/common/uuid"
	"github.com/KirkDiggler/mysterybox/internal/models"
	"github.com/KirkDiggler/mysterybox/internal/picker"
	gameRepo "github.com/KirkDiggler/mysterybox/internal/repositories/game"
	productRepo "github.com/KirkDiggler/mysterybox/internal/repositories/product"
	"github.com/KirkDiggler/mysterybox/internal/services/audit"
	"github.com/KirkDiggler/mysterybox/internal/services/moderation"
	"github.com/KirkDiggler/mysterybox/internal/services/participant"
	"github.com/KirkDiggler/mysterybox/internal/services/validation"
	"github.com/rs/zerolog"
)

// Config holds configuration for the game service
type Config struct {
	GameRepo           gameRepo.Repository
	ProductRepo        productRepo.Repository
	ParticipantService participant.Service
	ModerationService  moderation.Service
	ValidationService  validation.Service
	Audit              audit.Service
	Picker             picker.Picker
	Clock              clock.Clock
	UUID               uuid.UUID

	// MaxProviderCallsPerDraw caps provider calls during one draw; later
	// submissions are judged locally
	MaxProviderCallsPerDraw int

	// DrawTimeout bounds the validation phase of a draw
	DrawTimeout time.Duration

	// MaxGuessLength is the longest guess accepted, in characters
	MaxGuessLength int

	Logger *zerolog.Logger
}

// StartInput contains parameters for starting a game
type StartInput struct {
	ProductID string
	ActorID   string
}

// StartOutput contains the started game
type StartOutput struct {
	Game      *models.Game
	FirstClue string
}

// RevealClueInput contains parameters for revealing a clue
type RevealClueInput struct {
	ActorID string
}

// RevealClueOutput contains the revealed clue
type RevealClueOutput struct {
	Game       *models.Game
	Clue       string
	ClueNumber int
}

// EndSubmissionsInput contains parameters for closing a game
type EndSubmissionsInput struct {
	ActorID string
}

// EndSubmissionsOutput contains the closed game. TotalSubmissions is nil
// when the submissions could not be counted.
type EndSubmissionsOutput struct {
	Game             *models.Game
	TotalSubmissions *int
}

// DrawWinnerInput contains parameters for drawing a winner
type DrawWinnerInput struct {
	ActorID string
}

// DrawWinnerOutput contains the finished game and its winner
type DrawWinnerOutput struct {
	Game   *models.Game
	Winner *models.Submission

	// Participant is the winner's record, nil for legacy phone submissions
	Participant *models.Participant

	TotalSubmissions int

	// CorrectSubmissions is the size of the candidate set the winner came from
	CorrectSubmissions int

	// ProviderCalls is how many provider calls the validation phase made
	ProviderCalls int
}

// ResetInput contains parameters for resetting the game engine
type ResetInput struct {
	ActorID string
}

// ResetOutput reports what the reset removed
type ResetOutput struct {
	GamesDeleted      int
	ParticipantsReset int
}

// GetLiveInput contains parameters for reading the live game
type GetLiveInput struct {
}

// GetLiveOutput is the public snapshot of the live game. It never carries the answer.
type GetLiveOutput struct {
	GameID          string
	Status          models.GameStatus
	RevealedClues   []string
	TotalClues      int
	SubmissionCount int
	CreatedAt       time.Time
}

// SubmitGuessInput contains a guess and who made it
type SubmitGuessInput struct {
	// GameID, when set, must be the live game
	GameID string

	ParticipantID string
	Name          string
	Phone         string

	Guess string
}

// SubmitGuessOutput contains the stored submission
type SubmitGuessOutput struct {
	Submission *models.Submission

	// Corrected indicates the stored guess differs from the typed one
	Corrected bool

	// NeedsReview indicates moderation flagged the guess for a human
	NeedsReview bool

	Quota     int
	Used      int
	Remaining int
}

// GetQuotaInput identifies the participant and, optionally, the game
type GetQuotaInput struct {
	ParticipantID string

	// GameID defaults to the live game
	GameID string
}

// GetQuotaOutput reports a participant's quota in a game
type GetQuotaOutput struct {
	GameID    string
	Quota     int
	Used      int
	Remaining int
}
