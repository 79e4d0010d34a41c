package api

import (
	"net/http"

	"github.com/KirkDiggler/mysterybox/internal/services/participant"
	"github.com/KirkDiggler/mysterybox/internal/services/validation"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	ReferralCode string `json:"referralCode"`
}

// Register registers a participant, applying an optional referral code
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalidBody(c)
		return
	}

	output, err := h.participantService.Register(c.Request.Context(), &participant.RegisterInput{
		Name:         req.Name,
		Phone:        req.Phone,
		Neighborhood: req.Neighborhood,
		City:         req.City,
		ReferralCode: req.ReferralCode,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	status := http.StatusOK
	message := "participant updated"
	if output.Created {
		status = http.StatusCreated
		message = "participant registered"
	}

	c.JSON(status, gin.H{
		"success":     true,
		"message":     message,
		"participant": toParticipantResponse(output.Participant),
		"referral":    output.Referral,
	})
}

type validateRequest struct {
	Guess  string `json:"guess"`
	Answer string `json:"answer"`
}

// ValidateGuess checks a guess against an explicit answer
func (h *Handler) ValidateGuess(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalidBody(c)
		return
	}

	output, err := h.validationService.Validate(c.Request.Context(), &validation.ValidateInput{
		Guess:  req.Guess,
		Answer: req.Answer,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	source := "local"
	if _, ok := output.Judgement.(validation.ProviderJudgement); ok {
		source = "provider"
	}
	assessment := output.Judgement.Assessment()

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    assessment.Reason,
		"isCorrect":  assessment.IsCorrect,
		"confidence": assessment.Confidence,
		"source":     source,
	})
}
