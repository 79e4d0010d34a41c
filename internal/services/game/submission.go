package game

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/KirkDiggler/mysterybox/internal/models"
	gameRepo "github.com/KirkDiggler/mysterybox/internal/repositories/game"
	"github.com/KirkDiggler/mysterybox/internal/services/audit"
	"github.com/KirkDiggler/mysterybox/internal/services/moderation"
	"github.com/KirkDiggler/mysterybox/internal/services/participant"
)

// SubmitGuess moderates a guess and stores it if the participant still has quota.
// The quota is checked once before moderation so exhausted participants do not
// cost a provider call, and again atomically when the submission is stored.
func (s *service) SubmitGuess(ctx context.Context, input *SubmitGuessInput) (*SubmitGuessOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	guess := strings.TrimSpace(input.Guess)
	if guess == "" {
		return nil, ErrMissingGuess
	}
	if utf8.RuneCountInString(guess) > s.maxGuessLength {
		return nil, ErrGuessTooLong
	}

	game, err := s.acceptingGame(ctx, strings.TrimSpace(input.GameID))
	if err != nil {
		return nil, err
	}

	p, err := s.participantService.Resolve(ctx, &participant.ResolveInput{
		ParticipantID: input.ParticipantID,
		Name:          input.Name,
		Phone:         input.Phone,
	})
	if err != nil {
		return nil, err
	}

	quota := p.Quota()
	used, err := s.gameRepo.CountSubmissions(ctx, &gameRepo.CountSubmissionsInput{
		GameID:         game.ID,
		ParticipantRef: p.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count submissions: %w", err)
	}
	if used >= quota {
		return nil, &QuotaExceededError{Quota: quota, Used: used}
	}

	moderated, err := s.moderationService.Moderate(ctx, &moderation.ModerateInput{Guess: guess})
	if err != nil {
		return nil, fmt.Errorf("failed to moderate guess: %w", err)
	}

	verdict := moderated.Decision.Verdict()
	if !verdict.Approved {
		s.logger.Info().
			Str("game_id", game.ID).
			Str("participant_id", p.ID).
			Str("source", string(moderated.Decision.Source())).
			Str("reason", verdict.Reason).
			Msg("guess rejected by moderation")
		return nil, &ModerationRejectedError{Reason: verdict.Reason, NeedsReview: verdict.NeedsReview}
	}

	submission := &models.Submission{
		ID:               s.uuid.NewUUID(),
		GameID:           game.ID,
		ParticipantID:    p.ID,
		ParticipantPhone: p.Phone,
		Guess:            verdict.CorrectedGuess,
		ModerationSource: moderated.Decision.Source(),
		CreatedAt:        s.clock.Now(),
	}
	if verdict.CorrectedGuess != guess {
		submission.OriginalGuess = guess
	}

	created, err := s.gameRepo.CreateSubmission(ctx, &gameRepo.CreateSubmissionInput{
		Submission: submission,
		Quota:      quota,
	})
	if err != nil {
		switch {
		case errors.Is(err, gameRepo.ErrQuotaExceeded):
			return nil, &QuotaExceededError{Quota: quota, Used: quota}
		case errors.Is(err, gameRepo.ErrGameNotAccepting):
			return nil, ErrGameNotAccepting
		case errors.Is(err, gameRepo.ErrGameNotFound):
			return nil, ErrNoActiveGame
		}
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}

	s.audit.Emit(ctx, &audit.EmitInput{
		Action:  models.AuditActionGuessSubmitted,
		ActorID: p.ID,
		GameID:  game.ID,
		Details: map[string]string{
			"submissionId":     created.Submission.ID,
			"submissionNumber": strconv.Itoa(created.Submission.SubmissionNumber),
			"moderationSource": string(created.Submission.ModerationSource),
			"needsReview":      strconv.FormatBool(verdict.NeedsReview),
		},
	})

	return &SubmitGuessOutput{
		Submission:  created.Submission,
		Corrected:   submission.OriginalGuess != "",
		NeedsReview: verdict.NeedsReview,
		Quota:       quota,
		Used:        created.Used,
		Remaining:   quota - created.Used,
	}, nil
}

// GetQuota reports a participant's quota in the given game, or in the live game
func (s *service) GetQuota(ctx context.Context, input *GetQuotaInput) (*GetQuotaOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	p, err := s.participantService.GetParticipant(ctx, &participant.GetParticipantInput{
		ParticipantID: input.ParticipantID,
	})
	if err != nil {
		return nil, err
	}

	gameID := strings.TrimSpace(input.GameID)
	if gameID == "" {
		game, err := s.gameRepo.GetActiveGame(ctx, &gameRepo.GetActiveGameInput{})
		if err != nil {
			if errors.Is(err, gameRepo.ErrNoActiveGame) {
				return nil, ErrNoActiveGame
			}
			return nil, fmt.Errorf("failed to get active game: %w", err)
		}
		gameID = game.ID
	}

	used, err := s.gameRepo.CountSubmissions(ctx, &gameRepo.CountSubmissionsInput{
		GameID:         gameID,
		ParticipantRef: p.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count submissions: %w", err)
	}

	remaining := p.Quota() - used
	if remaining < 0 {
		remaining = 0
	}

	return &GetQuotaOutput{
		GameID:    gameID,
		Quota:     p.Quota(),
		Used:      used,
		Remaining: remaining,
	}, nil
}

// acceptingGame returns the live game if it is accepting and matches gameID when given
func (s *service) acceptingGame(ctx context.Context, gameID string) (*models.Game, error) {
	game, err := s.gameRepo.GetActiveGame(ctx, &gameRepo.GetActiveGameInput{})
	if err != nil {
		if errors.Is(err, gameRepo.ErrNoActiveGame) {
			return nil, ErrNoActiveGame
		}
		return nil, fmt.Errorf("failed to get active game: %w", err)
	}

	if gameID != "" && gameID != game.ID {
		return nil, ErrGameNotLive
	}

	if !game.Status.IsAccepting() {
		return nil, ErrGameNotAccepting
	}

	return game, nil
}
