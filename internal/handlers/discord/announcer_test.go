package discord

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/mysterybox/internal/models"
	"github.com/KirkDiggler/mysterybox/internal/services/messaging"
	messagingMocks "github.com/KirkDiggler/mysterybox/internal/services/messaging/mocks"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type fakeSender struct {
	channelID string
	embeds    []*discordgo.MessageEmbed
	err       error
}

func (f *fakeSender) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.channelID = channelID
	f.embeds = append(f.embeds, embed)
	return &discordgo.Message{ChannelID: channelID}, nil
}

type AnnouncerTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockMessaging *messagingMocks.MockService
	sender        *fakeSender
	announcer     *Announcer
	ctx           context.Context
	record        *models.AuditRecord
}

func (s *AnnouncerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockMessaging = messagingMocks.NewMockService(s.mockCtrl)
	s.sender = &fakeSender{}
	s.ctx = context.Background()
	s.record = &models.AuditRecord{
		Action:    models.AuditActionWinnerDrawn,
		GameID:    "game-1",
		Details:   map[string]string{"candidates": "2"},
		CreatedAt: time.Date(2025, 4, 19, 21, 0, 0, 0, time.UTC),
	}

	var err error
	s.announcer, err = NewAnnouncer(&AnnouncerConfig{
		Sender:           s.sender,
		ChannelID:        "channel-1",
		MessagingService: s.mockMessaging,
	})
	s.Require().NoError(err)
}

func (s *AnnouncerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *AnnouncerTestSuite) TestRecord_PostsWinner() {
	s.mockMessaging.EXPECT().
		GetAnnouncement(s.ctx, &messaging.GetAnnouncementInput{Record: s.record}).
		Return(&messaging.GetAnnouncementOutput{Announce: true, Title: "🏆 Temos um ganhador!", Message: "Parabéns, Ana!"}, nil)

	s.Require().NoError(s.announcer.Record(s.ctx, s.record))
	s.Equal("channel-1", s.sender.channelID)
	s.Require().Len(s.sender.embeds, 1)

	embed := s.sender.embeds[0]
	s.Equal("Parabéns, Ana!", embed.Description)
	s.Equal(colorWinner, embed.Color)
	s.Equal("2025-04-19T21:00:00Z", embed.Timestamp)
	s.Equal("Jogo game-1", embed.Footer.Text)
	s.Require().Len(embed.Fields, 1)
	s.Equal("2", embed.Fields[0].Value)
}

func (s *AnnouncerTestSuite) TestRecord_SkipsPrivateActions() {
	s.mockMessaging.EXPECT().
		GetAnnouncement(s.ctx, gomock.Any()).
		Return(&messaging.GetAnnouncementOutput{Announce: false}, nil)

	s.NoError(s.announcer.Record(s.ctx, &models.AuditRecord{Action: models.AuditActionGuessSubmitted}))
	s.Empty(s.sender.embeds)
}

func (s *AnnouncerTestSuite) TestRecord_SendFailure() {
	s.sender.err = errors.New("discord unavailable")
	s.mockMessaging.EXPECT().
		GetAnnouncement(s.ctx, gomock.Any()).
		Return(&messaging.GetAnnouncementOutput{Announce: true, Title: "t", Message: "m"}, nil)

	err := s.announcer.Record(s.ctx, s.record)
	s.Error(err)
	s.Contains(err.Error(), "failed to send announcement")
}

func (s *AnnouncerTestSuite) TestNewAnnouncer_Validation() {
	_, err := NewAnnouncer(nil)
	s.Error(err)

	_, err = NewAnnouncer(&AnnouncerConfig{Sender: s.sender, MessagingService: s.mockMessaging})
	s.Error(err)
}

func TestAnnouncerSuite(t *testing.T) {
	suite.Run(t, new(AnnouncerTestSuite))
}
