package game

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/KirkDiggler/mysterybox/internal/models"
	gameRepo "github.com/KirkDiggler/mysterybox/internal/repositories/game"
	"github.com/KirkDiggler/mysterybox/internal/services/audit"
	"github.com/KirkDiggler/mysterybox/internal/services/participant"
	"github.com/KirkDiggler/mysterybox/internal/services/validation"
)

// DrawWinner validates every submission of the closed game against the
// product name and draws uniformly among the correct ones. The game is left
// untouched when nobody guessed right.
func (s *service) DrawWinner(ctx context.Context, input *DrawWinnerInput) (*DrawWinnerOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	game, submissions, err := s.loadClosedGame(ctx)
	if err != nil {
		return nil, err
	}

	product, err := s.getProduct(ctx, game.ProductID)
	if err != nil {
		return nil, err
	}

	correct, providerCalls, err := s.partition(ctx, submissions, product.Name)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("game_id", game.ID).
		Int("total", len(submissions)).
		Int("correct", len(correct)).
		Int("provider_calls", providerCalls).
		Msg("submissions validated")

	if len(correct) == 0 {
		return nil, &NoWinnerCandidatesError{TotalSubmissions: len(submissions)}
	}

	output, err := s.finish(ctx, game, correct, models.AuditActionWinnerDrawn, input.ActorID)
	if err != nil {
		return nil, err
	}

	output.TotalSubmissions = len(submissions)
	output.ProviderCalls = providerCalls
	return output, nil
}

// DrawWinnerFromAll draws uniformly among every submission of the closed game
func (s *service) DrawWinnerFromAll(ctx context.Context, input *DrawWinnerInput) (*DrawWinnerOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	game, submissions, err := s.loadClosedGame(ctx)
	if err != nil {
		return nil, err
	}

	if len(submissions) == 0 {
		return nil, &NoWinnerCandidatesError{TotalSubmissions: 0}
	}

	output, err := s.finish(ctx, game, submissions, models.AuditActionWinnerDrawnFromAll, input.ActorID)
	if err != nil {
		return nil, err
	}

	output.TotalSubmissions = len(submissions)
	return output, nil
}

func (s *service) loadClosedGame(ctx context.Context) (*models.Game, []*models.Submission, error) {
	game, err := s.gameRepo.GetActiveGame(ctx, &gameRepo.GetActiveGameInput{})
	if err != nil {
		if errors.Is(err, gameRepo.ErrNoActiveGame) {
			return nil, nil, ErrNoClosedGame
		}
		return nil, nil, fmt.Errorf("failed to get active game: %w", err)
	}

	if !game.Status.IsClosed() {
		return nil, nil, ErrNoClosedGame
	}

	submissions, err := s.gameRepo.ListSubmissions(ctx, &gameRepo.ListSubmissionsInput{GameID: game.ID})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	return game, submissions, nil
}

// partition returns the submissions judged correct. Once the provider call
// budget or the draw deadline is spent, the remaining submissions are judged
// orthographically only.
func (s *service) partition(ctx context.Context, submissions []*models.Submission, answer string) ([]*models.Submission, int, error) {
	drawCtx, cancel := context.WithTimeout(ctx, s.drawTimeout)
	defer cancel()

	var (
		correct []*models.Submission
		calls   int
	)
	for _, submission := range submissions {
		remaining := s.maxProviderCallsPerDraw - calls
		localOnly := remaining <= 0 || drawCtx.Err() != nil

		output, err := s.validationService.Validate(drawCtx, &validation.ValidateInput{
			Guess:            submission.Guess,
			Answer:           answer,
			LocalOnly:        localOnly,
			MaxProviderCalls: max(remaining, 0),
		})
		if err != nil {
			return nil, calls, fmt.Errorf("failed to validate submission %s: %w", submission.ID, err)
		}

		calls += output.ProviderCalls
		if output.Judgement.Assessment().IsCorrect {
			correct = append(correct, submission)
		}
	}

	return correct, calls, nil
}

// finish picks the winner and finishes the game, provided it is still the same closed game
func (s *service) finish(ctx context.Context, game *models.Game, candidates []*models.Submission, action models.AuditAction, actorID string) (*DrawWinnerOutput, error) {
	winner := candidates[s.picker.Intn(len(candidates))]

	finished, err := s.gameRepo.UpdateActiveGame(ctx, &gameRepo.UpdateActiveGameInput{
		ExpectedGameID: game.ID,
		Update: func(current *models.Game) error {
			if !current.Status.IsClosed() {
				return ErrDrawConflict
			}
			now := s.clock.Now()
			current.Status = models.GameStatusFinished
			current.WinnerSubmissionID = winner.ID
			current.EndedAt = &now
			current.UpdatedAt = now
			return nil
		},
	})
	if err != nil {
		if errors.Is(err, gameRepo.ErrGameChanged) || errors.Is(err, gameRepo.ErrNoActiveGame) || errors.Is(err, ErrDrawConflict) {
			return nil, ErrDrawConflict
		}
		return nil, fmt.Errorf("failed to finish game: %w", err)
	}

	output := &DrawWinnerOutput{
		Game:               finished,
		Winner:             winner,
		CorrectSubmissions: len(candidates),
	}

	if winner.ParticipantID != "" {
		p, err := s.participantService.GetParticipant(ctx, &participant.GetParticipantInput{
			ParticipantID: winner.ParticipantID,
		})
		if err != nil {
			s.logger.Warn().Err(err).Str("participant_id", winner.ParticipantID).Msg("failed to load winner")
		} else {
			output.Participant = p
		}
	}

	details := map[string]string{
		"submissionId":  winner.ID,
		"participantId": winner.ParticipantRef(),
		"guess":         winner.Guess,
		"candidates":    strconv.Itoa(len(candidates)),
	}
	if output.Participant != nil {
		details["participantName"] = output.Participant.Name
	}

	s.audit.Emit(ctx, &audit.EmitInput{
		Action:  action,
		ActorID: actorID,
		GameID:  finished.ID,
		Details: details,
	})

	s.logger.Info().
		Str("game_id", finished.ID).
		Str("submission_id", winner.ID).
		Int("candidates", len(candidates)).
		Msg("winner drawn")

	return output, nil
}
