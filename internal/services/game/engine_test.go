package game

import (
	"context"
	"errors"
	"testing"

	"github.com/KirkDiggler/mysterybox/internal/common/clock"
	"github.com/KirkDiggler/mysterybox/internal/common/uuid"
	"github.com/KirkDiggler/mysterybox/internal/models"
	pickerMocks "github.com/KirkDiggler/mysterybox/internal/picker/mocks"
	gameRepo "github.com/KirkDiggler/mysterybox/internal/repositories/game"
	participantRepo "github.com/KirkDiggler/mysterybox/internal/repositories/participant"
	productRepo "github.com/KirkDiggler/mysterybox/internal/repositories/product"
	auditMocks "github.com/KirkDiggler/mysterybox/internal/services/audit/mocks"
	"github.com/KirkDiggler/mysterybox/internal/services/moderation"
	"github.com/KirkDiggler/mysterybox/internal/services/participant"
	"github.com/KirkDiggler/mysterybox/internal/services/validation"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type engine struct {
	game        Service
	participant participant.Service
	games       gameRepo.Repository
	picker      *pickerMocks.MockPicker
}

// newEngine wires the services to Redis repositories on miniredis with no text provider
func newEngine(t *testing.T) *engine {
	t.Helper()
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	games, err := gameRepo.NewRedis(&gameRepo.Config{RedisClient: client})
	require.NoError(t, err)
	products, err := productRepo.NewRedis(&productRepo.Config{RedisClient: client})
	require.NoError(t, err)
	participants, err := participantRepo.NewRedis(&participantRepo.Config{RedisClient: client})
	require.NoError(t, err)

	require.NoError(t, products.SaveProduct(ctx, &productRepo.SaveProductInput{Product: &models.Product{
		ID:   "product-1",
		Name: "geladeira",
		Clues: []string{
			"Fica na cozinha",
			"É grande",
			"Tem porta",
			"Faz gelo",
			"Conserva alimentos",
		},
	}}))

	ctrl := gomock.NewController(t)
	mockAudit := auditMocks.NewMockService(ctrl)
	mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).AnyTimes()
	mockPicker := pickerMocks.NewMockPicker(ctrl)

	participantSvc, err := participant.New(&participant.Config{
		ParticipantRepo: participants,
		Audit:           mockAudit,
		Clock:           clock.New(),
		UUID:            uuid.New(),
	})
	require.NoError(t, err)

	moderationSvc, err := moderation.New(&moderation.Config{})
	require.NoError(t, err)
	validationSvc, err := validation.New(&validation.Config{})
	require.NoError(t, err)

	gameSvc, err := New(&Config{
		GameRepo:           games,
		ProductRepo:        products,
		ParticipantService: participantSvc,
		ModerationService:  moderationSvc,
		ValidationService:  validationSvc,
		Audit:              mockAudit,
		Picker:             mockPicker,
		Clock:              clock.New(),
		UUID:               uuid.New(),
	})
	require.NoError(t, err)

	return &engine{
		game:        gameSvc,
		participant: participantSvc,
		games:       games,
		picker:      mockPicker,
	}
}

func (e *engine) submit(t *testing.T, name, phone, guess string) *SubmitGuessOutput {
	t.Helper()
	output, err := e.game.SubmitGuess(context.Background(), &SubmitGuessInput{Name: name, Phone: phone, Guess: guess})
	require.NoError(t, err)
	return output
}

func TestEngine_ExactGuessWins(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)

	started, err := e.game.Start(ctx, &StartInput{ProductID: "product-1"})
	require.NoError(t, err)
	assert.Equal(t, "Fica na cozinha", started.FirstClue)

	submitted := e.submit(t, "Ana", "81999990000", "geladeira")
	assert.Equal(t, models.ModerationSourceLocal, submitted.Submission.ModerationSource)
	assert.Equal(t, 0, submitted.Remaining)

	_, err = e.game.EndSubmissions(ctx, &EndSubmissionsInput{})
	require.NoError(t, err)

	e.picker.EXPECT().Intn(1).Return(0)
	drawn, err := e.game.DrawWinner(ctx, &DrawWinnerInput{ActorID: "admin"})
	require.NoError(t, err)
	assert.Equal(t, submitted.Submission.ID, drawn.Winner.ID)
	require.NotNil(t, drawn.Participant)
	assert.Equal(t, "Ana", drawn.Participant.Name)
	assert.Zero(t, drawn.ProviderCalls)

	game, err := e.games.GetGame(ctx, &gameRepo.GetGameInput{GameID: started.Game.ID})
	require.NoError(t, err)
	assert.Equal(t, models.GameStatusFinished, game.Status)
	assert.Equal(t, submitted.Submission.ID, game.WinnerSubmissionID)

	_, err = e.game.GetLive(ctx, &GetLiveInput{})
	assert.Equal(t, ErrNoActiveGame, err)
}

func TestEngine_RevealStopsAtFive(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)

	_, err := e.game.Start(ctx, &StartInput{ProductID: "product-1"})
	require.NoError(t, err)

	for i := 2; i <= models.MaxClues; i++ {
		revealed, err := e.game.RevealClue(ctx, &RevealClueInput{})
		require.NoError(t, err)
		assert.Equal(t, i, revealed.ClueNumber)
	}

	_, err = e.game.RevealClue(ctx, &RevealClueInput{})
	assert.Equal(t, ErrMaxCluesRevealed, err)

	live, err := e.game.GetLive(ctx, &GetLiveInput{})
	require.NoError(t, err)
	assert.Len(t, live.RevealedClues, models.MaxClues)
}

func TestEngine_DrawAmongCloseGuesses(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)

	_, err := e.game.Start(ctx, &StartInput{ProductID: "product-1"})
	require.NoError(t, err)

	first := e.submit(t, "Ana", "81999990000", "geladeira")
	e.submit(t, "Bruno", "81999990001", "fogao")
	third := e.submit(t, "Carla", "81999990002", "gelad3ira")

	_, err = e.game.EndSubmissions(ctx, &EndSubmissionsInput{})
	require.NoError(t, err)

	e.picker.EXPECT().Intn(2).Return(1)
	drawn, err := e.game.DrawWinner(ctx, &DrawWinnerInput{})
	require.NoError(t, err)
	assert.Equal(t, 3, drawn.TotalSubmissions)
	assert.Equal(t, 2, drawn.CorrectSubmissions)
	assert.Equal(t, third.Submission.ID, drawn.Winner.ID)
	assert.NotEqual(t, first.Submission.ID, drawn.Winner.ID)
}

func TestEngine_NoCorrectGuessThenDrawFromAll(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)

	_, err := e.game.Start(ctx, &StartInput{ProductID: "product-1"})
	require.NoError(t, err)
	e.submit(t, "Ana", "81999990000", "fogao")

	_, err = e.game.EndSubmissions(ctx, &EndSubmissionsInput{})
	require.NoError(t, err)

	_, err = e.game.DrawWinner(ctx, &DrawWinnerInput{})
	assert.True(t, errors.Is(err, ErrNoWinnerCandidates))

	live, err := e.game.GetLive(ctx, &GetLiveInput{})
	require.NoError(t, err)
	assert.Equal(t, models.GameStatusClosed, live.Status)

	e.picker.EXPECT().Intn(1).Return(0)
	drawn, err := e.game.DrawWinnerFromAll(ctx, &DrawWinnerInput{})
	require.NoError(t, err)
	assert.Equal(t, "fogao", drawn.Winner.Guess)
}

func TestEngine_ReferralBonusAllowsSecondGuess(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)

	ana, err := e.participant.Register(ctx, &participant.RegisterInput{Name: "Ana", Phone: "81999990000"})
	require.NoError(t, err)
	_, err = e.participant.Register(ctx, &participant.RegisterInput{
		Name:         "Bruno",
		Phone:        "81999990001",
		ReferralCode: ana.Participant.OwnReferralCode,
	})
	require.NoError(t, err)

	_, err = e.game.Start(ctx, &StartInput{ProductID: "product-1"})
	require.NoError(t, err)

	_, err = e.game.SubmitGuess(ctx, &SubmitGuessInput{ParticipantID: ana.Participant.ID, Guess: "fogao"})
	require.NoError(t, err)
	second, err := e.game.SubmitGuess(ctx, &SubmitGuessInput{ParticipantID: ana.Participant.ID, Guess: "geladeira"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Submission.SubmissionNumber)

	_, err = e.game.SubmitGuess(ctx, &SubmitGuessInput{ParticipantID: ana.Participant.ID, Guess: "sofa"})
	assert.True(t, errors.Is(err, ErrQuotaExceeded))

	_, err = e.game.SubmitGuess(ctx, &SubmitGuessInput{Name: "Carla", Phone: "81999990002", Guess: "caralho"})
	var rejected *ModerationRejectedError
	require.True(t, errors.As(err, &rejected))
	assert.True(t, rejected.NeedsReview)

	reset, err := e.game.Reset(ctx, &ResetInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, reset.GamesDeleted)
	assert.Equal(t, 1, reset.ParticipantsReset)

	quota, err := e.participant.GetParticipant(ctx, &participant.GetParticipantInput{ParticipantID: ana.Participant.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, quota.Quota())
}
