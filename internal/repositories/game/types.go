package game

import "github.com/KirkDiggler/mysterybox/internal/models"

type CreateGameInput struct {
	Game *models.Game
}

type GetGameInput struct {
	GameID string
}

type GetActiveGameInput struct {
}

// UpdateActiveGameInput describes an optimistic update of the active game.
// Update runs against a fresh copy and may run more than once; returning an
// error aborts without writing.
type UpdateActiveGameInput struct {
	// ExpectedGameID, when set, fails the update with ErrGameChanged if another game became active
	ExpectedGameID string

	Update func(game *models.Game) error
}

type DeleteAllGamesInput struct {
}

type DeleteAllGamesOutput struct {
	GamesDeleted int
}

type CreateSubmissionInput struct {
	Submission *models.Submission

	// Quota is the maximum number of submissions the participant may have in the game
	Quota int
}

type CreateSubmissionOutput struct {
	Submission *models.Submission

	// Used is the participant's submission count including this one
	Used int
}

type ListSubmissionsInput struct {
	GameID string
}

type CountSubmissionsInput struct {
	GameID string

	// ParticipantRef limits the count to one participant when set
	ParticipantRef string
}
