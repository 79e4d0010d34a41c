package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/mysterybox/internal/models"
	"github.com/KirkDiggler/mysterybox/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
)

// Sender posts embeds to a channel. *discordgo.Session satisfies it.
type Sender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// AnnouncerConfig holds configuration for the announcer
type AnnouncerConfig struct {
	Sender           Sender
	ChannelID        string
	MessagingService messaging.Service
}

// Announcer is an audit sink that posts public game events to a Discord channel
type Announcer struct {
	sender           Sender
	channelID        string
	messagingService messaging.Service
}

// NewAnnouncer creates a new announcer
func NewAnnouncer(cfg *AnnouncerConfig) (*Announcer, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Sender == nil {
		return nil, errors.New("sender cannot be nil")
	}
	if cfg.ChannelID == "" {
		return nil, errors.New("channel ID cannot be empty")
	}
	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	return &Announcer{
		sender:           cfg.Sender,
		channelID:        cfg.ChannelID,
		messagingService: cfg.MessagingService,
	}, nil
}

// Name identifies the sink in logs
func (a *Announcer) Name() string {
	return "discord"
}

// Record posts the announcement for the record, skipping private actions
func (a *Announcer) Record(ctx context.Context, record *models.AuditRecord) error {
	announcement, err := a.messagingService.GetAnnouncement(ctx, &messaging.GetAnnouncementInput{Record: record})
	if err != nil {
		return fmt.Errorf("failed to build announcement: %w", err)
	}

	if !announcement.Announce {
		return nil
	}

	embed := renderAnnouncement(record, announcement.Title, announcement.Message)
	if _, err := a.sender.ChannelMessageSendEmbed(a.channelID, embed, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send announcement: %w", err)
	}

	return nil
}
