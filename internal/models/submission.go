package models

import (
	"time"
)

// ModerationSource records which tier of the moderation pipeline decided on a guess
type ModerationSource string

const (
	// ModerationSourceLocal is the keyword blocklist fallback
	ModerationSourceLocal ModerationSource = "local"

	// ModerationSourceProvider is the external text provider
	ModerationSourceProvider ModerationSource = "provider"
)

// Submission is a single guess in a game
type Submission struct {
	// ID is the unique identifier for the submission
	ID string

	// GameID is the game the guess belongs to
	GameID string

	// ParticipantID is the registered participant who guessed
	ParticipantID string

	// ParticipantPhone is the legacy reference used before participants had ids
	ParticipantPhone string

	// Guess is the stored guess, possibly spelling-corrected
	Guess string

	// OriginalGuess is the raw text when the guess was corrected
	OriginalGuess string

	// ModerationSource is the pipeline tier that approved the guess
	ModerationSource ModerationSource

	// SubmissionNumber is the position of this guess among the participant's guesses in the game
	SubmissionNumber int

	// CreatedAt is when the guess was submitted
	CreatedAt time.Time
}

// ParticipantRef returns the participant id, falling back to the legacy phone
func (s *Submission) ParticipantRef() string {
	if s.ParticipantID != "" {
		return s.ParticipantID
	}
	return s.ParticipantPhone
}
