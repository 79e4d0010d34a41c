package messaging

import (
	"context"
	"testing"

	"github.com/KirkDiggler/mysterybox/internal/models"
	pickerMocks "github.com/KirkDiggler/mysterybox/internal/picker/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type MessagingServiceTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockPicker *pickerMocks.MockPicker
	service    Service
	ctx        context.Context
}

func (s *MessagingServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockPicker = pickerMocks.NewMockPicker(s.mockCtrl)
	s.ctx = context.Background()

	svc, err := New(&Config{Picker: s.mockPicker})
	s.Require().NoError(err)
	s.service = svc
}

func (s *MessagingServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *MessagingServiceTestSuite) TestGetAnnouncement_ClueRevealed() {
	s.mockPicker.EXPECT().Intn(3).Return(0)

	output, err := s.service.GetAnnouncement(s.ctx, &GetAnnouncementInput{Record: &models.AuditRecord{
		Action:  models.AuditActionClueRevealed,
		Details: map[string]string{"clueNumber": "3"},
	}})
	s.Require().NoError(err)
	s.True(output.Announce)
	s.Equal("🔎 Dica 3 de 5", output.Title)
	s.Contains(output.Message, "dica número 3")
}

func (s *MessagingServiceTestSuite) TestGetAnnouncement_SubmissionsEnded() {
	s.mockPicker.EXPECT().Intn(2).Return(0)

	output, err := s.service.GetAnnouncement(s.ctx, &GetAnnouncementInput{Record: &models.AuditRecord{
		Action:  models.AuditActionSubmissionsEnded,
		Details: map[string]string{"totalSubmissions": "12"},
	}})
	s.Require().NoError(err)
	s.Equal("Acabou o tempo! Recebemos 12 palpites. Já já tem sorteio.", output.Message)
}

func (s *MessagingServiceTestSuite) TestGetAnnouncement_SubmissionsEndedWithoutCount() {
	s.mockPicker.EXPECT().Intn(2).Return(1)

	output, err := s.service.GetAnnouncement(s.ctx, &GetAnnouncementInput{Record: &models.AuditRecord{
		Action: models.AuditActionSubmissionsEnded,
	}})
	s.Require().NoError(err)
	s.Equal("Palpites encerrados. Agora é torcer!", output.Message)
}

func (s *MessagingServiceTestSuite) TestGetAnnouncement_WinnerNamesGuess() {
	s.mockPicker.EXPECT().Intn(3).Return(1)

	output, err := s.service.GetAnnouncement(s.ctx, &GetAnnouncementInput{Record: &models.AuditRecord{
		Action:  models.AuditActionWinnerDrawn,
		Details: map[string]string{"participantName": "Ana", "guess": "geladeira"},
	}})
	s.Require().NoError(err)
	s.Equal("Ana acertou com \"geladeira\" e levou a Caixa Misteriosa!", output.Message)
}

func (s *MessagingServiceTestSuite) TestGetAnnouncement_WinnerFromAllWithoutName() {
	s.mockPicker.EXPECT().Intn(2).Return(1)

	output, err := s.service.GetAnnouncement(s.ctx, &GetAnnouncementInput{Record: &models.AuditRecord{
		Action: models.AuditActionWinnerDrawnFromAll,
	}})
	s.Require().NoError(err)
	s.Contains(output.Message, "o participante sorteado")
}

func (s *MessagingServiceTestSuite) TestGetAnnouncement_PrivateActions() {
	for _, action := range []models.AuditAction{
		models.AuditActionGuessSubmitted,
		models.AuditActionParticipantJoined,
		models.AuditActionReferralGranted,
	} {
		output, err := s.service.GetAnnouncement(s.ctx, &GetAnnouncementInput{Record: &models.AuditRecord{Action: action}})
		s.Require().NoError(err)
		s.False(output.Announce, action)
	}
}

func (s *MessagingServiceTestSuite) TestGetAnnouncement_NilRecord() {
	_, err := s.service.GetAnnouncement(s.ctx, &GetAnnouncementInput{})
	s.Error(err)
}

func (s *MessagingServiceTestSuite) TestGetLiveMessage() {
	s.mockPicker.EXPECT().Intn(1).Return(0)

	output, err := s.service.GetLiveMessage(s.ctx, &GetLiveMessageInput{
		Status:          models.GameStatusClosed,
		SubmissionCount: 12,
	})
	s.Require().NoError(err)
	s.Contains(output.Message, "12 tentativas")
}

func (s *MessagingServiceTestSuite) TestGetErrorMessage() {
	s.mockPicker.EXPECT().Intn(2).Return(0)

	output, err := s.service.GetErrorMessage(s.ctx, &GetErrorMessageInput{ErrorType: ErrorTypeQuotaExceeded})
	s.Require().NoError(err)
	s.Equal("Ops!", output.Title)
	s.Contains(output.Message, "palpites")
}

func TestMessagingServiceSuite(t *testing.T) {
	suite.Run(t, new(MessagingServiceTestSuite))
}
