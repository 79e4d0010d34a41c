package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/mysterybox/internal/models"
	"github.com/KirkDiggler/mysterybox/internal/services/game"
	"github.com/bwmarrin/discordgo"
)

// renderAnnouncement builds the channel embed for a game event
func renderAnnouncement(record *models.AuditRecord, title, message string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: message,
		Color:       colorInfo,
		Timestamp:   record.CreatedAt.Format(time.RFC3339),
	}

	switch record.Action {
	case models.AuditActionWinnerDrawn, models.AuditActionWinnerDrawnFromAll:
		embed.Color = colorWinner
		if candidates := record.Details["candidates"]; candidates != "" {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:   "Concorrentes",
				Value:  candidates,
				Inline: true,
			})
		}
	case models.AuditActionGameStarted:
		embed.Color = colorSuccess
	}

	if record.GameID != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Jogo " + record.GameID}
	}

	return embed
}

// renderLive builds the embed for the /mysterybox live command
func renderLive(live *game.GetLiveOutput, message string) *discordgo.MessageEmbed {
	clues := make([]string, 0, len(live.RevealedClues))
	for n, clue := range live.RevealedClues {
		clues = append(clues, fmt.Sprintf("%d. %s", n+1, clue))
	}

	fields := []*discordgo.MessageEmbedField{
		{
			Name:   "Status",
			Value:  string(live.Status),
			Inline: true,
		},
		{
			Name:   "Palpites",
			Value:  fmt.Sprintf("%d", live.SubmissionCount),
			Inline: true,
		},
	}
	if len(clues) > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("Dicas (%d/%d)", len(live.RevealedClues), live.TotalClues),
			Value: strings.Join(clues, "\n"),
		})
	}

	return &discordgo.MessageEmbed{
		Title:       "📦 Caixa Misteriosa",
		Description: message,
		Color:       colorInfo,
		Fields:      fields,
	}
}

// renderQuota builds the embed for the /mysterybox quota command
func renderQuota(quota *game.GetQuotaOutput) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎯 Seus palpites",
		Description: fmt.Sprintf("Você usou %d de %d palpites. Restam %d.", quota.Used, quota.Quota, quota.Remaining),
		Color:       colorSuccess,
	}
}
