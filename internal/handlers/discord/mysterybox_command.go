package discord

import (
	"context"
	"errors"
	"time"

	"github.com/KirkDiggler/mysterybox/internal/services/game"
	"github.com/KirkDiggler/mysterybox/internal/services/messaging"
	"github.com/KirkDiggler/mysterybox/internal/services/participant"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

const commandTimeout = 5 * time.Second

// MysteryBoxCommand handles the /mysterybox command
type MysteryBoxCommand struct {
	BaseCommand
	gameService      game.Service
	messagingService messaging.Service
	logger           zerolog.Logger
}

// NewMysteryBoxCommand creates a new mysterybox command handler
func NewMysteryBoxCommand(gameService game.Service, messagingService messaging.Service, logger zerolog.Logger) *MysteryBoxCommand {
	return &MysteryBoxCommand{
		BaseCommand: BaseCommand{
			Name:        "mysterybox",
			Description: "Caixa Misteriosa",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "live",
					Description: "Mostra o jogo ao vivo e as dicas reveladas",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "quota",
					Description: "Mostra quantos palpites você ainda tem",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "participant",
							Description: "Seu código de participante",
							Required:    true,
						},
					},
				},
			},
		},
		gameService:      gameService,
		messagingService: messagingService,
		logger:           logger,
	}
}

// Handle processes a Discord interaction for the mysterybox command
func (c *MysteryBoxCommand) Handle(s Responder, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	switch data.Options[0].Name {
	case "live":
		return c.handleLive(ctx, s, i)
	case "quota":
		participantID := ""
		for _, opt := range data.Options[0].Options {
			if opt.Name == "participant" {
				participantID = opt.StringValue()
			}
		}
		return c.handleQuota(ctx, s, i, participantID)
	}

	return nil
}

func (c *MysteryBoxCommand) handleLive(ctx context.Context, s Responder, i *discordgo.InteractionCreate) error {
	live, err := c.gameService.GetLive(ctx, &game.GetLiveInput{})
	if err != nil {
		return c.respondWithError(ctx, s, i, err)
	}

	message, err := c.messagingService.GetLiveMessage(ctx, &messaging.GetLiveMessageInput{
		Status:          live.Status,
		RevealedClues:   len(live.RevealedClues),
		SubmissionCount: live.SubmissionCount,
	})
	if err != nil {
		return err
	}

	return RespondWithEmbed(s, i, renderLive(live, message.Message), false)
}

func (c *MysteryBoxCommand) handleQuota(ctx context.Context, s Responder, i *discordgo.InteractionCreate, participantID string) error {
	quota, err := c.gameService.GetQuota(ctx, &game.GetQuotaInput{ParticipantID: participantID})
	if err != nil {
		return c.respondWithError(ctx, s, i, err)
	}

	return RespondWithEmbed(s, i, renderQuota(quota), true)
}

func (c *MysteryBoxCommand) respondWithError(ctx context.Context, s Responder, i *discordgo.InteractionCreate, err error) error {
	errorType := messaging.ErrorTypeUnknown
	switch {
	case errors.Is(err, game.ErrNoActiveGame):
		errorType = messaging.ErrorTypeNoActiveGame
	case errors.Is(err, game.ErrQuotaExceeded):
		errorType = messaging.ErrorTypeQuotaExceeded
	case errors.Is(err, participant.ErrParticipantNotFound):
		errorType = messaging.ErrorTypeUnknown
	default:
		c.logger.Error().Err(err).Msg("mysterybox command failed")
	}

	message, msgErr := c.messagingService.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{ErrorType: errorType})
	if msgErr != nil {
		return msgErr
	}

	return RespondWithError(s, i, message.Title, message.Message)
}
