package game

import (
	"context"
	"errors"

	"github.com/KirkDiggler/mysterybox/internal/models"
	gameRepo "github.com/KirkDiggler/mysterybox/internal/repositories/game"
	"github.com/KirkDiggler/mysterybox/internal/services/audit"
	"github.com/KirkDiggler/mysterybox/internal/services/participant"
	"github.com/KirkDiggler/mysterybox/internal/services/validation"
	"go.uber.org/mock/gomock"
)

func (s *GameServiceTestSuite) submissions(guesses ...string) []*models.Submission {
	out := make([]*models.Submission, 0, len(guesses))
	for i, guess := range guesses {
		out = append(out, &models.Submission{
			ID:            "submission-" + string(rune('a'+i)),
			GameID:        "game-1",
			ParticipantID: "participant-" + string(rune('a'+i)),
			Guess:         guess,
		})
	}
	return out
}

// expectValidation judges guesses with the given verdicts, one provider call each
func (s *GameServiceTestSuite) expectValidation(verdicts map[string]bool) {
	s.mockValidation.EXPECT().
		Validate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, input *validation.ValidateInput) (*validation.ValidateOutput, error) {
			s.Equal(s.product.Name, input.Answer)
			return &validation.ValidateOutput{
				Judgement:     validation.LocalJudgement{Result: validation.Assessment{IsCorrect: verdicts[input.Guess]}},
				ProviderCalls: 1,
			}, nil
		}).
		Times(len(verdicts))
}

func (s *GameServiceTestSuite) TestDrawWinner_PicksAmongCorrect() {
	subs := s.submissions("geladeira", "fogão", "gelad3ira")
	s.mockGameRepo.EXPECT().GetActiveGame(s.ctx, gomock.Any()).Return(s.closedGame, nil)
	s.mockGameRepo.EXPECT().
		ListSubmissions(s.ctx, &gameRepo.ListSubmissionsInput{GameID: "game-1"}).
		Return(subs, nil)
	s.expectProduct()
	s.expectValidation(map[string]bool{"geladeira": true, "fogão": false, "gelad3ira": true})
	s.mockPicker.EXPECT().Intn(2).Return(1)
	s.expectUpdate(s.closedGame)
	s.mockParticipant.EXPECT().
		GetParticipant(s.ctx, &participant.GetParticipantInput{ParticipantID: "participant-c"}).
		Return(&models.Participant{ID: "participant-c", Name: "Carla"}, nil)
	s.mockAudit.EXPECT().
		Emit(s.ctx, gomock.Any()).
		Do(func(ctx context.Context, input *audit.EmitInput) {
			s.Equal(models.AuditActionWinnerDrawn, input.Action)
			s.Equal("admin", input.ActorID)
			s.Equal("submission-c", input.Details["submissionId"])
		})

	output, err := s.service.DrawWinner(s.ctx, &DrawWinnerInput{ActorID: "admin"})
	s.Require().NoError(err)
	s.Equal("submission-c", output.Winner.ID)
	s.Equal("Carla", output.Participant.Name)
	s.Equal(3, output.TotalSubmissions)
	s.Equal(2, output.CorrectSubmissions)
	s.Equal(3, output.ProviderCalls)
	s.Equal(models.GameStatusFinished, output.Game.Status)
	s.Equal("submission-c", output.Game.WinnerSubmissionID)
	s.Require().NotNil(output.Game.EndedAt)
	s.Equal(s.testTime, *output.Game.EndedAt)
}

func (s *GameServiceTestSuite) TestDrawWinner_NobodyCorrectLeavesGameClosed() {
	subs := s.submissions("fogão", "sofá")
	s.mockGameRepo.EXPECT().GetActiveGame(s.ctx, gomock.Any()).Return(s.closedGame, nil)
	s.mockGameRepo.EXPECT().ListSubmissions(s.ctx, gomock.Any()).Return(subs, nil)
	s.expectProduct()
	s.expectValidation(map[string]bool{"fogão": false, "sofá": false})

	output, err := s.service.DrawWinner(s.ctx, &DrawWinnerInput{})
	s.Nil(output)
	s.True(errors.Is(err, ErrNoWinnerCandidates))

	var noCandidates *NoWinnerCandidatesError
	s.Require().True(errors.As(err, &noCandidates))
	s.Equal(2, noCandidates.TotalSubmissions)
	s.Equal(models.GameStatusClosed, s.closedGame.Status)
}

func (s *GameServiceTestSuite) TestDrawWinner_NoSubmissions() {
	s.mockGameRepo.EXPECT().GetActiveGame(s.ctx, gomock.Any()).Return(s.closedGame, nil)
	s.mockGameRepo.EXPECT().ListSubmissions(s.ctx, gomock.Any()).Return([]*models.Submission{}, nil)
	s.expectProduct()

	_, err := s.service.DrawWinner(s.ctx, &DrawWinnerInput{})
	s.True(errors.Is(err, ErrNoWinnerCandidates))
}

func (s *GameServiceTestSuite) TestDrawWinner_RequiresClosedGame() {
	s.mockGameRepo.EXPECT().GetActiveGame(s.ctx, gomock.Any()).Return(s.acceptGame, nil)
	_, err := s.service.DrawWinner(s.ctx, &DrawWinnerInput{})
	s.Equal(ErrNoClosedGame, err)

	s.mockGameRepo.EXPECT().GetActiveGame(s.ctx, gomock.Any()).Return(nil, gameRepo.ErrNoActiveGame)
	_, err = s.service.DrawWinnerFromAll(s.ctx, &DrawWinnerInput{})
	s.Equal(ErrNoClosedGame, err)
}

func (s *GameServiceTestSuite) TestDrawWinner_ProviderBudgetFallsBackToLocal() {
	svc, err := New(&Config{
		GameRepo:                s.mockGameRepo,
		ProductRepo:             s.mockProductRepo,
		ParticipantService:      s.mockParticipant,
		ModerationService:       s.mockModeration,
		ValidationService:       s.mockValidation,
		Audit:                   s.mockAudit,
		Picker:                  s.mockPicker,
		Clock:                   s.mockClock,
		UUID:                    s.mockUUID,
		MaxProviderCallsPerDraw: 2,
	})
	s.Require().NoError(err)

	subs := s.submissions("geladera", "refrigerador", "freezer", "geladeira")
	s.mockGameRepo.EXPECT().GetActiveGame(s.ctx, gomock.Any()).Return(s.closedGame, nil)
	s.mockGameRepo.EXPECT().ListSubmissions(s.ctx, gomock.Any()).Return(subs, nil)
	s.expectProduct()

	var localOnly []bool
	s.mockValidation.EXPECT().
		Validate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, input *validation.ValidateInput) (*validation.ValidateOutput, error) {
			localOnly = append(localOnly, input.LocalOnly)
			calls := 1
			if input.LocalOnly {
				calls = 0
			}
			return &validation.ValidateOutput{
				Judgement:     validation.LocalJudgement{Result: validation.Assessment{IsCorrect: input.Guess == "geladeira"}},
				ProviderCalls: calls,
			}, nil
		}).
		Times(4)
	s.mockPicker.EXPECT().Intn(1).Return(0)
	s.expectUpdate(s.closedGame)
	s.mockParticipant.EXPECT().GetParticipant(s.ctx, gomock.Any()).Return(nil, participant.ErrParticipantNotFound)
	s.mockAudit.EXPECT().Emit(s.ctx, gomock.Any())

	output, err := svc.DrawWinner(s.ctx, &DrawWinnerInput{})
	s.Require().NoError(err)
	s.Equal([]bool{false, false, true, true}, localOnly)
	s.Equal(2, output.ProviderCalls)
	s.Equal("submission-d", output.Winner.ID)
	s.Nil(output.Participant)
}

func (s *GameServiceTestSuite) TestDrawWinner_RetriesNeverExceedCallBudget() {
	svc, err := New(&Config{
		GameRepo:                s.mockGameRepo,
		ProductRepo:             s.mockProductRepo,
		ParticipantService:      s.mockParticipant,
		ModerationService:       s.mockModeration,
		ValidationService:       s.mockValidation,
		Audit:                   s.mockAudit,
		Picker:                  s.mockPicker,
		Clock:                   s.mockClock,
		UUID:                    s.mockUUID,
		MaxProviderCallsPerDraw: 3,
	})
	s.Require().NoError(err)

	subs := s.submissions("geladera", "refrigerador", "geladeira")
	s.mockGameRepo.EXPECT().GetActiveGame(s.ctx, gomock.Any()).Return(s.closedGame, nil)
	s.mockGameRepo.EXPECT().ListSubmissions(s.ctx, gomock.Any()).Return(subs, nil)
	s.expectProduct()

	var budgets []int
	s.mockValidation.EXPECT().
		Validate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, input *validation.ValidateInput) (*validation.ValidateOutput, error) {
			budgets = append(budgets, input.MaxProviderCalls)
			calls := 0
			if !input.LocalOnly {
				// every provider attempt is a transient failure, so the retry uses the whole cap
				calls = min(input.MaxProviderCalls, 2)
			}
			return &validation.ValidateOutput{
				Judgement:     validation.LocalJudgement{Result: validation.Assessment{IsCorrect: input.Guess == "geladeira"}},
				ProviderCalls: calls,
			}, nil
		}).
		Times(3)
	s.mockPicker.EXPECT().Intn(1).Return(0)
	s.expectUpdate(s.closedGame)
	s.mockParticipant.EXPECT().GetParticipant(s.ctx, gomock.Any()).Return(nil, participant.ErrParticipantNotFound)
	s.mockAudit.EXPECT().Emit(s.ctx, gomock.Any())

	output, err := svc.DrawWinner(s.ctx, &DrawWinnerInput{})
	s.Require().NoError(err)
	s.Equal([]int{3, 1, 0}, budgets)
	s.Equal(3, output.ProviderCalls)
}

func (s *GameServiceTestSuite) TestDrawWinner_GameChangedDuringValidation() {
	subs := s.submissions("geladeira")
	s.mockGameRepo.EXPECT().GetActiveGame(s.ctx, gomock.Any()).Return(s.closedGame, nil)
	s.mockGameRepo.EXPECT().ListSubmissions(s.ctx, gomock.Any()).Return(subs, nil)
	s.expectProduct()
	s.expectValidation(map[string]bool{"geladeira": true})
	s.mockPicker.EXPECT().Intn(1).Return(0)
	s.mockGameRepo.EXPECT().
		UpdateActiveGame(s.ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, input *gameRepo.UpdateActiveGameInput) (*models.Game, error) {
			s.Equal("game-1", input.ExpectedGameID)
			return nil, gameRepo.ErrGameChanged
		})

	_, err := s.service.DrawWinner(s.ctx, &DrawWinnerInput{})
	s.Equal(ErrDrawConflict, err)
}

func (s *GameServiceTestSuite) TestDrawWinner_AlreadyDrawnConcurrently() {
	subs := s.submissions("geladeira")
	finished := *s.closedGame
	finished.Status = models.GameStatusFinished
	s.mockGameRepo.EXPECT().GetActiveGame(s.ctx, gomock.Any()).Return(s.closedGame, nil)
	s.mockGameRepo.EXPECT().ListSubmissions(s.ctx, gomock.Any()).Return(subs, nil)
	s.expectProduct()
	s.expectValidation(map[string]bool{"geladeira": true})
	s.mockPicker.EXPECT().Intn(1).Return(0)
	s.expectUpdate(&finished)

	_, err := s.service.DrawWinner(s.ctx, &DrawWinnerInput{})
	s.Equal(ErrDrawConflict, err)
}

func (s *GameServiceTestSuite) TestDrawWinner_ValidationError() {
	subs := s.submissions("geladeira")
	s.mockGameRepo.EXPECT().GetActiveGame(s.ctx, gomock.Any()).Return(s.closedGame, nil)
	s.mockGameRepo.EXPECT().ListSubmissions(s.ctx, gomock.Any()).Return(subs, nil)
	s.expectProduct()
	s.mockValidation.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil, validation.ErrEmptyAnswer)

	_, err := s.service.DrawWinner(s.ctx, &DrawWinnerInput{})
	s.True(errors.Is(err, validation.ErrEmptyAnswer))
}

func (s *GameServiceTestSuite) TestDrawWinnerFromAll() {
	subs := s.submissions("fogão", "sofá", "geladeira")
	subs[1].ParticipantID = ""
	subs[1].ParticipantPhone = "81999990009"
	s.mockGameRepo.EXPECT().GetActiveGame(s.ctx, gomock.Any()).Return(s.closedGame, nil)
	s.mockGameRepo.EXPECT().ListSubmissions(s.ctx, gomock.Any()).Return(subs, nil)
	s.mockPicker.EXPECT().Intn(3).Return(1)
	s.expectUpdate(s.closedGame)
	s.mockAudit.EXPECT().
		Emit(s.ctx, gomock.Any()).
		Do(func(ctx context.Context, input *audit.EmitInput) {
			s.Equal(models.AuditActionWinnerDrawnFromAll, input.Action)
			s.Equal("81999990009", input.Details["participantId"])
		})

	output, err := s.service.DrawWinnerFromAll(s.ctx, &DrawWinnerInput{ActorID: "admin"})
	s.Require().NoError(err)
	s.Equal("submission-b", output.Winner.ID)
	s.Nil(output.Participant)
	s.Equal(3, output.TotalSubmissions)
	s.Equal(3, output.CorrectSubmissions)
	s.Zero(output.ProviderCalls)
}

func (s *GameServiceTestSuite) TestDrawWinnerFromAll_NoSubmissions() {
	s.mockGameRepo.EXPECT().GetActiveGame(s.ctx, gomock.Any()).Return(s.closedGame, nil)
	s.mockGameRepo.EXPECT().ListSubmissions(s.ctx, gomock.Any()).Return(nil, nil)

	_, err := s.service.DrawWinnerFromAll(s.ctx, &DrawWinnerInput{})

	var noCandidates *NoWinnerCandidatesError
	s.Require().True(errors.As(err, &noCandidates))
	s.Zero(noCandidates.TotalSubmissions)
}
