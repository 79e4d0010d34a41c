package game

import "fmt"

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig             GameError = "config cannot be nil"
	ErrNilGameRepo           GameError = "game repository cannot be nil"
	ErrNilProductRepo        GameError = "product repository cannot be nil"
	ErrNilParticipantService GameError = "participant service cannot be nil"
	ErrNilModerationService  GameError = "moderation service cannot be nil"
	ErrNilValidationService  GameError = "validation service cannot be nil"
	ErrNilAudit              GameError = "audit service cannot be nil"
	ErrNilPicker             GameError = "picker cannot be nil"
	ErrNilClock              GameError = "clock cannot be nil"
	ErrNilUUIDGenerator      GameError = "UUID generator cannot be nil"
	ErrNilInput              GameError = "input cannot be nil"

	// Validation
	ErrMissingProductID  GameError = "product id is required"
	ErrInsufficientClues GameError = "product must have 5 clues"
	ErrMissingGuess      GameError = "guess is required"
	ErrGuessTooLong      GameError = "guess is too long"

	// Not found
	ErrProductNotFound GameError = "product not found"
	ErrNoActiveGame    GameError = "no active game"
	ErrNoAcceptingGame GameError = "no game is accepting submissions"
	ErrNoClosedGame    GameError = "no closed game to draw"

	// Conflict
	ErrActiveGameExists   GameError = "an active game already exists"
	ErrMaxCluesRevealed   GameError = "all clues have already been revealed"
	ErrGameNotAccepting   GameError = "game is not accepting submissions"
	ErrGameNotLive        GameError = "game is not the live game"
	ErrDrawConflict       GameError = "game changed during the draw"
	ErrQuotaExceeded      GameError = "submission quota exceeded"
	ErrNoWinnerCandidates GameError = "no winner candidates"

	// Moderation
	ErrModerationRejected GameError = "guess rejected by moderation"
)

// QuotaExceededError reports a participant who has used every guess
type QuotaExceededError struct {
	Quota int
	Used  int
}

// Error implements the error interface
func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("%s: %d of %d guesses used, %d remaining", ErrQuotaExceeded, e.Used, e.Quota, e.Remaining())
}

// Is matches ErrQuotaExceeded
func (e *QuotaExceededError) Is(target error) bool {
	return target == ErrQuotaExceeded
}

// Remaining is the number of guesses left
func (e *QuotaExceededError) Remaining() int {
	if e.Used >= e.Quota {
		return 0
	}
	return e.Quota - e.Used
}

// NoWinnerCandidatesError reports a draw with nobody to pick
type NoWinnerCandidatesError struct {
	TotalSubmissions int
}

// Error implements the error interface
func (e *NoWinnerCandidatesError) Error() string {
	if e.TotalSubmissions == 0 {
		return fmt.Sprintf("%s: the game has no submissions", ErrNoWinnerCandidates)
	}
	return fmt.Sprintf("%s: none of %d submissions matched the answer", ErrNoWinnerCandidates, e.TotalSubmissions)
}

// Is matches ErrNoWinnerCandidates
func (e *NoWinnerCandidatesError) Is(target error) bool {
	return target == ErrNoWinnerCandidates
}

// ModerationRejectedError carries the reason a guess was refused
type ModerationRejectedError struct {
	Reason      string
	NeedsReview bool
}

// Error implements the error interface
func (e *ModerationRejectedError) Error() string {
	if e.Reason == "" {
		return string(ErrModerationRejected)
	}
	return fmt.Sprintf("%s: %s", ErrModerationRejected, e.Reason)
}

// Is matches ErrModerationRejected
func (e *ModerationRejectedError) Is(target error) bool {
	return target == ErrModerationRejected
}
