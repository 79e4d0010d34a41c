package api

import (
	"time"

	"github.com/KirkDiggler/mysterybox/internal/models"
)

type gameResponse struct {
	ID                 string            `json:"id"`
	Status             models.GameStatus `json:"status"`
	ProductID          string            `json:"productId"`
	RevealedCluesCount int               `json:"revealedCluesCount"`
	WinnerSubmissionID string            `json:"winnerSubmissionId,omitempty"`
	CreatedAt          time.Time         `json:"createdAt"`
	EndedAt            *time.Time        `json:"endedAt,omitempty"`
}

func toGameResponse(g *models.Game) *gameResponse {
	if g == nil {
		return nil
	}
	return &gameResponse{
		ID:                 g.ID,
		Status:             g.Status,
		ProductID:          g.ProductID,
		RevealedCluesCount: g.RevealedCluesCount,
		WinnerSubmissionID: g.WinnerSubmissionID,
		CreatedAt:          g.CreatedAt,
		EndedAt:            g.EndedAt,
	}
}

type submissionResponse struct {
	ID               string                  `json:"id"`
	GameID           string                  `json:"gameId"`
	ParticipantRef   string                  `json:"participantRef"`
	Guess            string                  `json:"guess"`
	OriginalGuess    string                  `json:"originalGuess,omitempty"`
	ModerationSource models.ModerationSource `json:"moderationSource,omitempty"`
	SubmissionNumber int                     `json:"submissionNumber"`
	CreatedAt        time.Time               `json:"createdAt"`
}

func toSubmissionResponse(s *models.Submission) *submissionResponse {
	if s == nil {
		return nil
	}
	return &submissionResponse{
		ID:               s.ID,
		GameID:           s.GameID,
		ParticipantRef:   s.ParticipantRef(),
		Guess:            s.Guess,
		OriginalGuess:    s.OriginalGuess,
		ModerationSource: s.ModerationSource,
		SubmissionNumber: s.SubmissionNumber,
		CreatedAt:        s.CreatedAt,
	}
}

// participantResponse omits the phone number
type participantResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Neighborhood    string `json:"neighborhood,omitempty"`
	City            string `json:"city,omitempty"`
	OwnReferralCode string `json:"ownReferralCode"`
	ExtraGuesses    int    `json:"extraGuesses"`
	Quota           int    `json:"quota"`
}

func toParticipantResponse(p *models.Participant) *participantResponse {
	if p == nil {
		return nil
	}
	return &participantResponse{
		ID:              p.ID,
		Name:            p.Name,
		Neighborhood:    p.Neighborhood,
		City:            p.City,
		OwnReferralCode: p.OwnReferralCode,
		ExtraGuesses:    p.ExtraGuesses,
		Quota:           p.Quota(),
	}
}
