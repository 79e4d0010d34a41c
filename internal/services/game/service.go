package game

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/KirkDiggler/mysterybox/internal/common/clock"
	"github.com/KirkDiggler/mysterybox/internal/common/uuid"
	"github.com/KirkDiggler/mysterybox/internal/models"
	"github.com/KirkDiggler/mysterybox/internal/picker"
	gameRepo "github.com/KirkDiggler/mysterybox/internal/repositories/game"
	productRepo "github.com/KirkDiggler/mysterybox/internal/repositories/product"
	"github.com/KirkDiggler/mysterybox/internal/services/audit"
	"github.com/KirkDiggler/mysterybox/internal/services/moderation"
	"github.com/KirkDiggler/mysterybox/internal/services/participant"
	"github.com/KirkDiggler/mysterybox/internal/services/validation"
	"github.com/rs/zerolog"
)

const (
	defaultMaxProviderCallsPerDraw = 50
	defaultDrawTimeout             = 60 * time.Second
	defaultMaxGuessLength          = 120
)

// service implements the Service interface
type service struct {
	gameRepo           gameRepo.Repository
	productRepo        productRepo.Repository
	participantService participant.Service
	moderationService  moderation.Service
	validationService  validation.Service
	audit              audit.Service
	picker             picker.Picker
	clock              clock.Clock
	uuid               uuid.UUID

	maxProviderCallsPerDraw int
	drawTimeout             time.Duration
	maxGuessLength          int

	logger zerolog.Logger
}

// New creates a new game service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.GameRepo == nil {
		return nil, ErrNilGameRepo
	}

	if cfg.ProductRepo == nil {
		return nil, ErrNilProductRepo
	}

	if cfg.ParticipantService == nil {
		return nil, ErrNilParticipantService
	}

	if cfg.ModerationService == nil {
		return nil, ErrNilModerationService
	}

	if cfg.ValidationService == nil {
		return nil, ErrNilValidationService
	}

	if cfg.Audit == nil {
		return nil, ErrNilAudit
	}

	if cfg.Picker == nil {
		return nil, ErrNilPicker
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUID == nil {
		return nil, ErrNilUUIDGenerator
	}

	svc := &service{
		gameRepo:                cfg.GameRepo,
		productRepo:             cfg.ProductRepo,
		participantService:      cfg.ParticipantService,
		moderationService:       cfg.ModerationService,
		validationService:       cfg.ValidationService,
		audit:                   cfg.Audit,
		picker:                  cfg.Picker,
		clock:                   cfg.Clock,
		uuid:                    cfg.UUID,
		maxProviderCallsPerDraw: cfg.MaxProviderCallsPerDraw,
		drawTimeout:             cfg.DrawTimeout,
		maxGuessLength:          cfg.MaxGuessLength,
		logger:                  zerolog.Nop(),
	}

	if svc.maxProviderCallsPerDraw <= 0 {
		svc.maxProviderCallsPerDraw = defaultMaxProviderCallsPerDraw
	}
	if svc.drawTimeout <= 0 {
		svc.drawTimeout = defaultDrawTimeout
	}
	if svc.maxGuessLength <= 0 {
		svc.maxGuessLength = defaultMaxGuessLength
	}
	if cfg.Logger != nil {
		svc.logger = cfg.Logger.With().Str("component", "game").Logger()
	}

	return svc, nil
}

// Start creates an accepting game for the product with the first clue revealed
func (s *service) Start(ctx context.Context, input *StartInput) (*StartOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	productID := strings.TrimSpace(input.ProductID)
	if productID == "" {
		return nil, ErrMissingProductID
	}

	if _, err := s.gameRepo.GetActiveGame(ctx, &gameRepo.GetActiveGameInput{}); err == nil {
		return nil, ErrActiveGameExists
	} else if !errors.Is(err, gameRepo.ErrNoActiveGame) {
		return nil, fmt.Errorf("failed to get active game: %w", err)
	}

	product, err := s.getProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if len(product.Clues) < models.MaxClues {
		return nil, ErrInsufficientClues
	}

	now := s.clock.Now()
	game := &models.Game{
		ID:                 s.uuid.NewUUID(),
		Status:             models.GameStatusAccepting,
		ProductID:          product.ID,
		RevealedCluesCount: 1,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.gameRepo.CreateGame(ctx, &gameRepo.CreateGameInput{Game: game}); err != nil {
		if errors.Is(err, gameRepo.ErrActiveGameExists) {
			return nil, ErrActiveGameExists
		}
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	s.audit.Emit(ctx, &audit.EmitInput{
		Action:  models.AuditActionGameStarted,
		ActorID: input.ActorID,
		GameID:  game.ID,
		Details: map[string]string{"productId": product.ID},
	})

	s.logger.Info().Str("game_id", game.ID).Str("product_id", product.ID).Msg("game started")

	return &StartOutput{
		Game:      game,
		FirstClue: product.Clues[0],
	}, nil
}

// RevealClue reveals the next clue of the accepting or closed game
func (s *service) RevealClue(ctx context.Context, input *RevealClueInput) (*RevealClueOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	game, err := s.gameRepo.UpdateActiveGame(ctx, &gameRepo.UpdateActiveGameInput{
		Update: func(game *models.Game) error {
			if game.RevealedCluesCount >= models.MaxClues {
				return ErrMaxCluesRevealed
			}
			game.RevealedCluesCount++
			game.UpdatedAt = s.clock.Now()
			return nil
		},
	})
	if err != nil {
		if errors.Is(err, gameRepo.ErrNoActiveGame) {
			return nil, ErrNoActiveGame
		}
		if errors.Is(err, ErrMaxCluesRevealed) {
			return nil, ErrMaxCluesRevealed
		}
		return nil, fmt.Errorf("failed to reveal clue: %w", err)
	}

	output := &RevealClueOutput{
		Game:       game,
		ClueNumber: game.RevealedCluesCount,
	}

	product, err := s.getProduct(ctx, game.ProductID)
	if err != nil {
		s.logger.Warn().Err(err).Str("game_id", game.ID).Msg("clue revealed but product could not be loaded")
	} else if game.RevealedCluesCount <= len(product.Clues) {
		output.Clue = product.Clues[game.RevealedCluesCount-1]
	}

	s.audit.Emit(ctx, &audit.EmitInput{
		Action:  models.AuditActionClueRevealed,
		ActorID: input.ActorID,
		GameID:  game.ID,
		Details: map[string]string{"clueNumber": strconv.Itoa(game.RevealedCluesCount)},
	})

	return output, nil
}

// EndSubmissions moves the accepting game to closed
func (s *service) EndSubmissions(ctx context.Context, input *EndSubmissionsInput) (*EndSubmissionsOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	game, err := s.gameRepo.UpdateActiveGame(ctx, &gameRepo.UpdateActiveGameInput{
		Update: func(game *models.Game) error {
			if !game.Status.IsAccepting() {
				return ErrNoAcceptingGame
			}
			game.Status = models.GameStatusClosed
			game.UpdatedAt = s.clock.Now()
			return nil
		},
	})
	if err != nil {
		if errors.Is(err, gameRepo.ErrNoActiveGame) || errors.Is(err, ErrNoAcceptingGame) {
			return nil, ErrNoAcceptingGame
		}
		return nil, fmt.Errorf("failed to end submissions: %w", err)
	}

	output := &EndSubmissionsOutput{Game: game}
	details := map[string]string{}

	total, err := s.gameRepo.CountSubmissions(ctx, &gameRepo.CountSubmissionsInput{GameID: game.ID})
	if err != nil {
		s.logger.Warn().Err(err).Str("game_id", game.ID).Msg("failed to count submissions")
	} else {
		output.TotalSubmissions = &total
		details["totalSubmissions"] = strconv.Itoa(total)
	}

	s.audit.Emit(ctx, &audit.EmitInput{
		Action:  models.AuditActionSubmissionsEnded,
		ActorID: input.ActorID,
		GameID:  game.ID,
		Details: details,
	})

	return output, nil
}

// Reset deletes every game with its submissions and returns every participant to the base quota
func (s *service) Reset(ctx context.Context, input *ResetInput) (*ResetOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	deleted, err := s.gameRepo.DeleteAllGames(ctx, &gameRepo.DeleteAllGamesInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to delete games: %w", err)
	}

	reset, err := s.participantService.ResetExtraGuesses(ctx, &participant.ResetExtraGuessesInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to reset extra guesses: %w", err)
	}

	s.audit.Emit(ctx, &audit.EmitInput{
		Action:  models.AuditActionGameReset,
		ActorID: input.ActorID,
		Details: map[string]string{
			"gamesDeleted":      strconv.Itoa(deleted.GamesDeleted),
			"participantsReset": strconv.Itoa(reset.ParticipantsReset),
		},
	})

	s.logger.Info().
		Int("games_deleted", deleted.GamesDeleted).
		Int("participants_reset", reset.ParticipantsReset).
		Msg("game engine reset")

	return &ResetOutput{
		GamesDeleted:      deleted.GamesDeleted,
		ParticipantsReset: reset.ParticipantsReset,
	}, nil
}

// GetLive returns the revealed clues of the live game, never the answer
func (s *service) GetLive(ctx context.Context, input *GetLiveInput) (*GetLiveOutput, error) {
	game, err := s.gameRepo.GetActiveGame(ctx, &gameRepo.GetActiveGameInput{})
	if err != nil {
		if errors.Is(err, gameRepo.ErrNoActiveGame) {
			return nil, ErrNoActiveGame
		}
		return nil, fmt.Errorf("failed to get active game: %w", err)
	}

	product, err := s.getProduct(ctx, game.ProductID)
	if err != nil {
		return nil, err
	}

	count, err := s.gameRepo.CountSubmissions(ctx, &gameRepo.CountSubmissionsInput{GameID: game.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to count submissions: %w", err)
	}

	return &GetLiveOutput{
		GameID:          game.ID,
		Status:          game.Status,
		RevealedClues:   product.RevealedClues(game.RevealedCluesCount),
		TotalClues:      models.MaxClues,
		SubmissionCount: count,
		CreatedAt:       game.CreatedAt,
	}, nil
}

func (s *service) getProduct(ctx context.Context, productID string) (*models.Product, error) {
	product, err := s.productRepo.GetProduct(ctx, &productRepo.GetProductInput{ProductID: productID})
	if err != nil {
		if errors.Is(err, productRepo.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}
