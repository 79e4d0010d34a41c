package api

import (
	"net/http"

	"github.com/KirkDiggler/mysterybox/internal/services/game"
	"github.com/gin-gonic/gin"
)

type startRequest struct {
	ProductID string `json:"productId"`
}

// StartGame starts a game for a product
func (h *Handler) StartGame(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalidBody(c)
		return
	}

	output, err := h.gameService.Start(c.Request.Context(), &game.StartInput{
		ProductID: req.ProductID,
		ActorID:   actorID(c),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "game started",
		"game":      toGameResponse(output.Game),
		"firstClue": output.FirstClue,
	})
}

// RevealClue reveals the next clue
func (h *Handler) RevealClue(c *gin.Context) {
	output, err := h.gameService.RevealClue(c.Request.Context(), &game.RevealClueInput{ActorID: actorID(c)})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "clue revealed",
		"game":       toGameResponse(output.Game),
		"clue":       output.Clue,
		"clueNumber": output.ClueNumber,
	})
}

// EndSubmissions closes the accepting game
func (h *Handler) EndSubmissions(c *gin.Context) {
	output, err := h.gameService.EndSubmissions(c.Request.Context(), &game.EndSubmissionsInput{ActorID: actorID(c)})
	if err != nil {
		h.writeError(c, err)
		return
	}

	body := gin.H{
		"success": true,
		"message": "submissions ended",
		"game":    toGameResponse(output.Game),
	}
	if output.TotalSubmissions != nil {
		body["totalSubmissions"] = *output.TotalSubmissions
	}

	c.JSON(http.StatusOK, body)
}

// DrawWinner draws among correct submissions
func (h *Handler) DrawWinner(c *gin.Context) {
	output, err := h.gameService.DrawWinner(c.Request.Context(), &game.DrawWinnerInput{ActorID: actorID(c)})
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.writeDraw(c, output)
}

// DrawWinnerFromAll draws among every submission
func (h *Handler) DrawWinnerFromAll(c *gin.Context) {
	output, err := h.gameService.DrawWinnerFromAll(c.Request.Context(), &game.DrawWinnerInput{ActorID: actorID(c)})
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.writeDraw(c, output)
}

func (h *Handler) writeDraw(c *gin.Context, output *game.DrawWinnerOutput) {
	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"message":            "winner drawn",
		"game":               toGameResponse(output.Game),
		"winner":             toSubmissionResponse(output.Winner),
		"participant":        toParticipantResponse(output.Participant),
		"totalSubmissions":   output.TotalSubmissions,
		"correctSubmissions": output.CorrectSubmissions,
	})
}

// Reset deletes every game and clears extra guesses
func (h *Handler) Reset(c *gin.Context) {
	output, err := h.gameService.Reset(c.Request.Context(), &game.ResetInput{ActorID: actorID(c)})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"message":           "game reset",
		"gamesDeleted":      output.GamesDeleted,
		"participantsReset": output.ParticipantsReset,
	})
}

// GetLive returns the public snapshot of the live game
func (h *Handler) GetLive(c *gin.Context) {
	output, err := h.gameService.GetLive(c.Request.Context(), &game.GetLiveInput{})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "live game",
		"game": gin.H{
			"id":              output.GameID,
			"status":          output.Status,
			"revealedClues":   output.RevealedClues,
			"totalClues":      output.TotalClues,
			"submissionCount": output.SubmissionCount,
			"createdAt":       output.CreatedAt,
		},
	})
}

type submitRequest struct {
	Guess         string `json:"guess"`
	GameID        string `json:"gameId"`
	ParticipantID string `json:"participantId"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
}

// SubmitGuess stores a guess for the live game
func (h *Handler) SubmitGuess(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalidBody(c)
		return
	}

	output, err := h.gameService.SubmitGuess(c.Request.Context(), &game.SubmitGuessInput{
		GameID:        req.GameID,
		ParticipantID: req.ParticipantID,
		Name:          req.Name,
		Phone:         req.Phone,
		Guess:         req.Guess,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "guess received",
		"submission":  toSubmissionResponse(output.Submission),
		"corrected":   output.Corrected,
		"needsReview": output.NeedsReview,
		"quota":       output.Quota,
		"used":        output.Used,
		"remaining":   output.Remaining,
	})
}

// GetQuota reports a participant's remaining guesses
func (h *Handler) GetQuota(c *gin.Context) {
	participantID := c.Query("participantId")
	if participantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "participantId is required"})
		return
	}

	output, err := h.gameService.GetQuota(c.Request.Context(), &game.GetQuotaInput{
		ParticipantID: participantID,
		GameID:        c.Query("gameId"),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "quota",
		"gameId":    output.GameID,
		"quota":     output.Quota,
		"used":      output.Used,
		"remaining": output.Remaining,
	})
}
