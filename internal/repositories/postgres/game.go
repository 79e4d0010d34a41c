package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/mysterybox/internal/models"
	gamerepo "github.com/KirkDiggler/mysterybox/internal/repositories/game"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const gameColumns = `id, status, product_id, revealed_clues_count, winner_submission_id, created_at, updated_at, ended_at`

const submissionColumns = `id, game_id, participant_id, participant_phone, guess, original_guess, moderation_source, submission_number, created_at`

// gameRepository implements the game Repository interface using PostgreSQL
type gameRepository struct {
	pool *pgxpool.Pool
}

// NewGameRepository creates a PostgreSQL-backed game repository
func NewGameRepository(cfg *Config) (*gameRepository, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &gameRepository{
		pool: cfg.Pool,
	}, nil
}

// CreateGame inserts the game; the partial unique index rejects a second active game
func (r *gameRepository) CreateGame(ctx context.Context, input *gamerepo.CreateGameInput) error {
	if input == nil || input.Game == nil || input.Game.ID == "" {
		return errors.New("input, game and game ID cannot be empty")
	}

	g := input.Game
	_, err := r.pool.Exec(ctx, `
		INSERT INTO games (`+gameColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, g.ID, string(g.Status), g.ProductID, g.RevealedCluesCount, nullString(g.WinnerSubmissionID), g.CreatedAt, g.UpdatedAt, g.EndedAt)
	if err != nil {
		if isUniqueViolation(err, activeGameIndex) {
			return gamerepo.ErrActiveGameExists
		}
		return fmt.Errorf("failed to create game: %w", err)
	}

	return nil
}

// GetGame retrieves a game by ID
func (r *gameRepository) GetGame(ctx context.Context, input *gamerepo.GetGameInput) (*models.Game, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	game, err := scanGame(r.pool.QueryRow(ctx, `SELECT `+gameColumns+` FROM games WHERE id = $1`, input.GameID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, gamerepo.ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// GetActiveGame retrieves the accepting or closed game
func (r *gameRepository) GetActiveGame(ctx context.Context, input *gamerepo.GetActiveGameInput) (*models.Game, error) {
	game, err := scanGame(r.pool.QueryRow(ctx, `
		SELECT `+gameColumns+`
		FROM games
		WHERE status IN ('accepting', 'closed')
	`))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, gamerepo.ErrNoActiveGame
		}
		return nil, fmt.Errorf("failed to get active game: %w", err)
	}

	return game, nil
}

// UpdateActiveGame locks the active game row, applies the update and writes it back
func (r *gameRepository) UpdateActiveGame(ctx context.Context, input *gamerepo.UpdateActiveGameInput) (*models.Game, error) {
	if input == nil || input.Update == nil {
		return nil, errors.New("input and update cannot be nil")
	}

	var updated *models.Game
	err := runSerializable(ctx, r.pool, gamerepo.ErrTooMuchContention, func(tx pgx.Tx) error {
		game, err := scanGame(tx.QueryRow(ctx, `
			SELECT `+gameColumns+`
			FROM games
			WHERE status IN ('accepting', 'closed')
			FOR UPDATE
		`))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return gamerepo.ErrNoActiveGame
			}
			return fmt.Errorf("failed to get active game: %w", err)
		}
		if input.ExpectedGameID != "" && game.ID != input.ExpectedGameID {
			return gamerepo.ErrGameChanged
		}

		if err := input.Update(game); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE games
			SET status = $2,
				revealed_clues_count = $3,
				winner_submission_id = $4,
				updated_at = $5,
				ended_at = $6
			WHERE id = $1
		`, game.ID, string(game.Status), game.RevealedCluesCount, nullString(game.WinnerSubmissionID), game.UpdatedAt, game.EndedAt)
		if err != nil {
			return fmt.Errorf("failed to update game: %w", err)
		}

		updated = game
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteAllGames removes every game; submissions go with them through the cascade
func (r *gameRepository) DeleteAllGames(ctx context.Context, input *gamerepo.DeleteAllGamesInput) (*gamerepo.DeleteAllGamesOutput, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM games`)
	if err != nil {
		return nil, fmt.Errorf("failed to delete games: %w", err)
	}

	return &gamerepo.DeleteAllGamesOutput{
		GamesDeleted: int(tag.RowsAffected()),
	}, nil
}

// CreateSubmission share-locks the game so it cannot close mid-insert, then
// counts the participant's guesses and appends the new one in the same
// serializable transaction.
func (r *gameRepository) CreateSubmission(ctx context.Context, input *gamerepo.CreateSubmissionInput) (*gamerepo.CreateSubmissionOutput, error) {
	if input == nil || input.Submission == nil {
		return nil, errors.New("input and submission cannot be nil")
	}

	submission := *input.Submission
	ref := submission.ParticipantRef()
	if submission.GameID == "" || ref == "" {
		return nil, errors.New("game ID and participant cannot be empty")
	}

	err := runSerializable(ctx, r.pool, gamerepo.ErrTooMuchContention, func(tx pgx.Tx) error {
		var status string
		err := tx.QueryRow(ctx, `SELECT status FROM games WHERE id = $1 FOR SHARE`, submission.GameID).Scan(&status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return gamerepo.ErrGameNotFound
			}
			return fmt.Errorf("failed to get game: %w", err)
		}
		if !models.GameStatus(status).IsAccepting() {
			return gamerepo.ErrGameNotAccepting
		}

		var used int
		err = tx.QueryRow(ctx, `
			SELECT count(*)
			FROM submissions
			WHERE game_id = $1 AND participant_ref = $2
		`, submission.GameID, ref).Scan(&used)
		if err != nil {
			return fmt.Errorf("failed to count submissions: %w", err)
		}
		if used >= input.Quota {
			return gamerepo.ErrQuotaExceeded
		}

		submission.SubmissionNumber = used + 1
		_, err = tx.Exec(ctx, `
			INSERT INTO submissions (participant_ref, `+submissionColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, ref, submission.ID, submission.GameID, submission.ParticipantID, submission.ParticipantPhone,
			submission.Guess, submission.OriginalGuess, string(submission.ModerationSource),
			submission.SubmissionNumber, submission.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert submission: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &gamerepo.CreateSubmissionOutput{
		Submission: &submission,
		Used:       submission.SubmissionNumber,
	}, nil
}

// ListSubmissions retrieves all submissions of a game in arrival order
func (r *gameRepository) ListSubmissions(ctx context.Context, input *gamerepo.ListSubmissionsInput) ([]*models.Submission, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+submissionColumns+`
		FROM submissions
		WHERE game_id = $1
		ORDER BY seq
	`, input.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	submissions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.Submission, error) {
		var s models.Submission
		var source string
		err := row.Scan(&s.ID, &s.GameID, &s.ParticipantID, &s.ParticipantPhone, &s.Guess,
			&s.OriginalGuess, &source, &s.SubmissionNumber, &s.CreatedAt)
		s.ModerationSource = models.ModerationSource(source)
		return &s, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan submissions: %w", err)
	}

	return submissions, nil
}

// CountSubmissions counts a game's submissions, or one participant's when ParticipantRef is set
func (r *gameRepository) CountSubmissions(ctx context.Context, input *gamerepo.CountSubmissionsInput) (int, error) {
	if input == nil || input.GameID == "" {
		return 0, errors.New("input and game ID cannot be empty")
	}

	var count int
	var err error
	if input.ParticipantRef == "" {
		err = r.pool.QueryRow(ctx, `SELECT count(*) FROM submissions WHERE game_id = $1`, input.GameID).Scan(&count)
	} else {
		err = r.pool.QueryRow(ctx, `
			SELECT count(*)
			FROM submissions
			WHERE game_id = $1 AND participant_ref = $2
		`, input.GameID, input.ParticipantRef).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count submissions: %w", err)
	}

	return count, nil
}

func scanGame(row pgx.Row) (*models.Game, error) {
	var (
		g       models.Game
		status  string
		winner  *string
		endedAt *time.Time
	)
	if err := row.Scan(&g.ID, &status, &g.ProductID, &g.RevealedCluesCount, &winner, &g.CreatedAt, &g.UpdatedAt, &endedAt); err != nil {
		return nil, err
	}

	g.Status = models.GameStatus(status)
	if winner != nil {
		g.WinnerSubmissionID = *winner
	}
	g.EndedAt = endedAt

	return &g, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
