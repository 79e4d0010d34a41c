package api

import (
	"errors"
	"net/http"

	"github.com/KirkDiggler/mysterybox/internal/services/game"
	"github.com/KirkDiggler/mysterybox/internal/services/participant"
	"github.com/KirkDiggler/mysterybox/internal/services/validation"
	"github.com/gin-gonic/gin"
)

var (
	badRequest = []error{
		game.ErrNilInput,
		game.ErrMissingProductID,
		game.ErrInsufficientClues,
		game.ErrMissingGuess,
		game.ErrGuessTooLong,
		game.ErrModerationRejected,
		participant.ErrNilInput,
		participant.ErrMissingName,
		participant.ErrMissingPhone,
		participant.ErrInvalidPhone,
		participant.ErrMissingIdentity,
		validation.ErrEmptyAnswer,
	}

	notFound = []error{
		game.ErrProductNotFound,
		game.ErrNoActiveGame,
		game.ErrNoAcceptingGame,
		game.ErrNoClosedGame,
		participant.ErrParticipantNotFound,
	}

	conflict = []error{
		game.ErrActiveGameExists,
		game.ErrMaxCluesRevealed,
		game.ErrGameNotAccepting,
		game.ErrGameNotLive,
		game.ErrDrawConflict,
		game.ErrQuotaExceeded,
		game.ErrNoWinnerCandidates,
	}
)

func matches(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case matches(err, badRequest):
		return http.StatusBadRequest
	case matches(err, notFound):
		return http.StatusNotFound
	case matches(err, conflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeError responds with {success:false, message}. Internal errors are logged, not leaked.
func (h *Handler) writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(status, gin.H{"success": false, "message": "internal error"})
		return
	}

	body := gin.H{"success": false, "message": err.Error()}

	var quotaErr *game.QuotaExceededError
	if errors.As(err, &quotaErr) {
		body["quota"] = quotaErr.Quota
		body["used"] = quotaErr.Used
		body["remaining"] = quotaErr.Remaining()
	}

	var rejected *game.ModerationRejectedError
	if errors.As(err, &rejected) {
		body["reason"] = rejected.Reason
		body["needsReview"] = rejected.NeedsReview
	}

	var noCandidates *game.NoWinnerCandidatesError
	if errors.As(err, &noCandidates) {
		body["totalSubmissions"] = noCandidates.TotalSubmissions
	}

	c.JSON(status, body)
}

func (h *Handler) invalidBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
}
