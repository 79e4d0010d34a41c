package game

import (
	"context"
	"errors"
	"strings"

	"github.com/KirkDiggler/mysterybox/internal/models"
	gameRepo "github.com/KirkDiggler/mysterybox/internal/repositories/game"
	"github.com/KirkDiggler/mysterybox/internal/services/audit"
	"github.com/KirkDiggler/mysterybox/internal/services/moderation"
	"github.com/KirkDiggler/mysterybox/internal/services/participant"
	"go.uber.org/mock/gomock"
)

func (s *GameServiceTestSuite) expectResolve() {
	s.mockParticipant.EXPECT().
		Resolve(s.ctx, &participant.ResolveInput{ParticipantID: s.participant.ID}).
		Return(s.participant, nil)
}

func (s *GameServiceTestSuite) expectUsed(used int) {
	s.mockGameRepo.EXPECT().
		CountSubmissions(s.ctx, &gameRepo.CountSubmissionsInput{GameID: "game-1", ParticipantRef: s.participant.ID}).
		Return(used, nil)
}

func (s *GameServiceTestSuite) TestSubmitGuess_StoresCorrectedGuess() {
	s.mockGameRepo.EXPECT().GetActiveGame(s.ctx, gomock.Any()).Return(s.acceptGame, nil)
	s.expectResolve()
	s.expectUsed(0)
	s.mockModeration.EXPECT().
		Moderate(s.ctx, &moderation.ModerateInput{Guess: "gelaedira"}).
		Return(&moderation.ModerateOutput{Decision: moderation.ProviderDecision{
			Result: moderation.Verdict{Approved: true, CorrectedGuess: "geladeira", Reason: "typo"},
		}}, nil)
	s.mockUUID.EXPECT().NewUUID().Return("submission-1")
	s.mockGameRepo.EXPECT().
		CreateSubmission(s.ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, input *gameRepo.CreateSubmissionInput) (*gameRepo.CreateSubmissionOutput, error) {
			s.Equal(1, input.Quota)
			s.Equal("submission-1", input.Submission.ID)
			s.Equal("game-1", input.Submission.GameID)
			s.Equal(s.participant.ID, input.Submission.ParticipantID)
			s.Equal("geladeira", input.Submission.Guess)
			s.Equal("gelaedira", input.Submission.OriginalGuess)
			s.Equal(models.ModerationSourceProvider, input.Submission.ModerationSource)
			s.Equal(s.testTime, input.Submission.CreatedAt)

			stored := *input.Submission
			stored.SubmissionNumber = 1
			return &gameRepo.CreateSubmissionOutput{Submission: &stored, Used: 1}, nil
		})
	s.mockAudit.EXPECT().
		Emit(s.ctx, gomock.Any()).
		Do(func(ctx context.Context, input *audit.EmitInput) {
			s.Equal(models.AuditActionGuessSubmitted, input.Action)
			s.Equal(s.participant.ID, input.ActorID)
			s.Equal("1", input.Details["submissionNumber"])
		})

	output, err := s.service.SubmitGuess(s.ctx, &SubmitGuessInput{
		ParticipantID: s.participant.ID,
		Guess:         "  gelaedira ",
	})
	s.Require().NoError(err)
	s.True(output.Corrected)
	s.False(output.NeedsReview)
	s.Equal(1, output.Quota)
	s.Equal(1, output.Used)
	s.Equal(0, output.Remaining)
	s.Equal(1, output.Submission.SubmissionNumber)
}

func (s *GameServiceTestSuite) TestSubmitGuess_QuotaExhaustedSkipsModeration() {
	s.mockGameRepo.EXPECT().GetActiveGame(s.ctx, gomock.Any()).Return(s.acceptGame, nil)
	s.expectResolve()
	s.expectUsed(1)

	output, err := s.service.SubmitGuess(s.ctx, &SubmitGuessInput{
		ParticipantID: s.participant.ID,
		Guess:         "fogão",
	})
	s.Nil(output)
	s.True(errors.Is(err, ErrQuotaExceeded))

	var quotaErr *QuotaExceededError
	s.Require().True(errors.As(err, &quotaErr))
	s.Equal(1, quotaErr.Quota)
	s.Equal(0, quotaErr.Remaining())
}

func (s *GameServiceTestSuite) TestSubmitGuess_QuotaLostAtStore() {
	s.participant.ExtraGuesses = 1
	s.mockGameRepo.EXPECT().GetActiveGame(s.ctx, gomock.Any()).Return(s.acceptGame, nil)
	s.expectResolve()
	s.expectUsed(1)
	s.mockModeration.EXPECT().
		Moderate(s.ctx, gomock.Any()).
		Return(&moderation.ModerateOutput{Decision: moderation.LocalDecision{
			Result: moderation.Verdict{Approved: true, CorrectedGuess: "fogão"},
		}}, nil)
	s.mockUUID.EXPECT().NewUUID().Return("submission-2")
	s.mockGameRepo.EXPECT().
		CreateSubmission(s.ctx, gomock.Any()).
		Return(nil, gameRepo.ErrQuotaExceeded)

	_, err := s.service.SubmitGuess(s.ctx, &SubmitGuessInput{ParticipantID: s.participant.ID, Guess: "fogão"})

	var quotaErr *QuotaExceededError
	s.Require().True(errors.As(err, &quotaErr))
	s.Equal(2, quotaErr.Quota)
	s.Equal(2, quotaErr.Used)
}

func (s *GameServiceTestSuite) TestSubmitGuess_ModerationRejects() {
	s.mockGameRepo.EXPECT().GetActiveGame(s.ctx, gomock.Any()).Return(s.acceptGame, nil)
	s.expectResolve()
	s.expectUsed(0)
	s.mockModeration.EXPECT().
		Moderate(s.ctx, gomock.Any()).
		Return(&moderation.ModerateOutput{Decision: moderation.LocalDecision{
			Result:      moderation.Verdict{Approved: false, Reason: "guess contains a blocked term", NeedsReview: true},
			BlockedTerm: "porra",
		}}, nil)

	_, err := s.service.SubmitGuess(s.ctx, &SubmitGuessInput{ParticipantID: s.participant.ID, Guess: "porra"})
	s.True(errors.Is(err, ErrModerationRejected))

	var rejected *ModerationRejectedError
	s.Require().True(errors.As(err, &rejected))
	s.True(rejected.NeedsReview)
	s.Contains(rejected.Error(), "blocked term")
}

func (s *GameServiceTestSuite) TestSubmitGuess_FlaggedForReviewIsStored() {
	s.mockGameRepo.EXPECT().GetActiveGame(s.ctx, gomock.Any()).Return(s.acceptGame, nil)
	s.expectResolve()
	s.expectUsed(0)
	s.mockModeration.EXPECT().
		Moderate(s.ctx, gomock.Any()).
		Return(&moderation.ModerateOutput{Decision: moderation.ProviderDecision{
			Result: moderation.Verdict{Approved: true, CorrectedGuess: "micro-ondas", NeedsReview: true},
		}}, nil)
	s.mockUUID.EXPECT().NewUUID().Return("submission-3")
	s.mockGameRepo.EXPECT().
		CreateSubmission(s.ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, input *gameRepo.CreateSubmissionInput) (*gameRepo.CreateSubmissionOutput, error) {
			s.Empty(input.Submission.OriginalGuess)
			return &gameRepo.CreateSubmissionOutput{Submission: input.Submission, Used: 1}, nil
		})
	s.mockAudit.EXPECT().Emit(s.ctx, gomock.Any())

	output, err := s.service.SubmitGuess(s.ctx, &SubmitGuessInput{ParticipantID: s.participant.ID, Guess: "micro-ondas"})
	s.Require().NoError(err)
	s.True(output.NeedsReview)
	s.False(output.Corrected)
}

func (s *GameServiceTestSuite) TestSubmitGuess_GameState() {
	s.mockGameRepo.EXPECT().GetActiveGame(s.ctx, gomock.Any()).Return(nil, gameRepo.ErrNoActiveGame)
	_, err := s.service.SubmitGuess(s.ctx, &SubmitGuessInput{ParticipantID: "p", Guess: "sofá"})
	s.Equal(ErrNoActiveGame, err)

	s.mockGameRepo.EXPECT().GetActiveGame(s.ctx, gomock.Any()).Return(s.closedGame, nil)
	_, err = s.service.SubmitGuess(s.ctx, &SubmitGuessInput{ParticipantID: "p", Guess: "sofá"})
	s.Equal(ErrGameNotAccepting, err)

	s.mockGameRepo.EXPECT().GetActiveGame(s.ctx, gomock.Any()).Return(s.acceptGame, nil)
	_, err = s.service.SubmitGuess(s.ctx, &SubmitGuessInput{GameID: "old-game", ParticipantID: "p", Guess: "sofá"})
	s.Equal(ErrGameNotLive, err)
}

func (s *GameServiceTestSuite) TestSubmitGuess_ClosedBetweenCheckAndStore() {
	s.mockGameRepo.EXPECT().GetActiveGame(s.ctx, gomock.Any()).Return(s.acceptGame, nil)
	s.expectResolve()
	s.expectUsed(0)
	s.mockModeration.EXPECT().
		Moderate(s.ctx, gomock.Any()).
		Return(&moderation.ModerateOutput{Decision: moderation.LocalDecision{
			Result: moderation.Verdict{Approved: true, CorrectedGuess: "sofá"},
		}}, nil)
	s.mockUUID.EXPECT().NewUUID().Return("submission-4")
	s.mockGameRepo.EXPECT().CreateSubmission(s.ctx, gomock.Any()).Return(nil, gameRepo.ErrGameNotAccepting)

	_, err := s.service.SubmitGuess(s.ctx, &SubmitGuessInput{ParticipantID: s.participant.ID, Guess: "sofá"})
	s.Equal(ErrGameNotAccepting, err)
}

func (s *GameServiceTestSuite) TestSubmitGuess_InvalidGuess() {
	_, err := s.service.SubmitGuess(s.ctx, nil)
	s.Equal(ErrNilInput, err)

	_, err = s.service.SubmitGuess(s.ctx, &SubmitGuessInput{ParticipantID: "p", Guess: "   "})
	s.Equal(ErrMissingGuess, err)

	_, err = s.service.SubmitGuess(s.ctx, &SubmitGuessInput{ParticipantID: "p", Guess: strings.Repeat("á", 121)})
	s.Equal(ErrGuessTooLong, err)
}

func (s *GameServiceTestSuite) TestSubmitGuess_UnknownParticipant() {
	s.mockGameRepo.EXPECT().GetActiveGame(s.ctx, gomock.Any()).Return(s.acceptGame, nil)
	s.mockParticipant.EXPECT().
		Resolve(s.ctx, gomock.Any()).
		Return(nil, participant.ErrParticipantNotFound)

	_, err := s.service.SubmitGuess(s.ctx, &SubmitGuessInput{ParticipantID: "ghost", Guess: "sofá"})
	s.Equal(participant.ErrParticipantNotFound, err)
}

func (s *GameServiceTestSuite) TestGetQuota_DefaultsToLiveGame() {
	s.participant.ExtraGuesses = 2
	s.mockParticipant.EXPECT().
		GetParticipant(s.ctx, &participant.GetParticipantInput{ParticipantID: s.participant.ID}).
		Return(s.participant, nil)
	s.mockGameRepo.EXPECT().GetActiveGame(s.ctx, gomock.Any()).Return(s.acceptGame, nil)
	s.expectUsed(1)

	output, err := s.service.GetQuota(s.ctx, &GetQuotaInput{ParticipantID: s.participant.ID})
	s.Require().NoError(err)
	s.Equal("game-1", output.GameID)
	s.Equal(3, output.Quota)
	s.Equal(1, output.Used)
	s.Equal(2, output.Remaining)
}

func (s *GameServiceTestSuite) TestGetQuota_ReducedQuotaNeverNegative() {
	s.mockParticipant.EXPECT().GetParticipant(s.ctx, gomock.Any()).Return(s.participant, nil)
	s.mockGameRepo.EXPECT().
		CountSubmissions(s.ctx, &gameRepo.CountSubmissionsInput{GameID: "game-0", ParticipantRef: s.participant.ID}).
		Return(3, nil)

	output, err := s.service.GetQuota(s.ctx, &GetQuotaInput{ParticipantID: s.participant.ID, GameID: "game-0"})
	s.Require().NoError(err)
	s.Equal(0, output.Remaining)
}
