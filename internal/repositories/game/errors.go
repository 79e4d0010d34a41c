package game

import "errors"

var (
	// ErrGameNotFound is returned when a game is not found
	ErrGameNotFound = errors.New("game not found")

	// ErrNoActiveGame is returned when no game is accepting or closed
	ErrNoActiveGame = errors.New("no active game")

	// ErrActiveGameExists is returned when a game is created while another is active
	ErrActiveGameExists = errors.New("an active game already exists")

	// ErrGameChanged is returned when the active game is not the one the caller expected
	ErrGameChanged = errors.New("active game changed")

	// ErrGameNotAccepting is returned when a submission targets a game that is not accepting
	ErrGameNotAccepting = errors.New("game is not accepting submissions")

	// ErrQuotaExceeded is returned when the participant already used every guess
	ErrQuotaExceeded = errors.New("submission quota exceeded")

	// ErrTooMuchContention is returned when an optimistic transaction keeps losing races
	ErrTooMuchContention = errors.New("too much contention on game")
)
