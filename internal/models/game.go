package models

import (
	"time"
)

// GameStatus represents the current state of a game
type GameStatus string

const (
	// GameStatusAccepting indicates the game is accepting guesses
	GameStatusAccepting GameStatus = "accepting"

	// GameStatusClosed indicates submissions have ended and the game awaits a draw
	GameStatusClosed GameStatus = "closed"

	// GameStatusFinished indicates a winner has been drawn
	GameStatusFinished GameStatus = "finished"
)

// MaxClues is the number of clues every product carries
const MaxClues = 5

// IsAccepting reports whether guesses may still be submitted
func (s GameStatus) IsAccepting() bool {
	return s == GameStatusAccepting
}

// IsClosed reports whether the game is waiting for a draw
func (s GameStatus) IsClosed() bool {
	return s == GameStatusClosed
}

// IsFinished reports whether a winner has been drawn
func (s GameStatus) IsFinished() bool {
	return s == GameStatusFinished
}

// IsActive reports whether the game still occupies the single active slot
func (s GameStatus) IsActive() bool {
	return s == GameStatusAccepting || s == GameStatusClosed
}

// Game represents a single Mystery Box round
type Game struct {
	// ID is the unique identifier for the game
	ID string

	// Status is the current state of the game
	Status GameStatus

	// ProductID is the hidden product participants are guessing
	ProductID string

	// RevealedCluesCount is how many of the product clues are public (0..5)
	RevealedCluesCount int

	// WinnerSubmissionID is the drawn submission, empty until the game finishes
	WinnerSubmissionID string

	// CreatedAt is when the game was started
	CreatedAt time.Time

	// UpdatedAt is when the game was last updated
	UpdatedAt time.Time

	// EndedAt is when the winner was drawn
	EndedAt *time.Time
}
