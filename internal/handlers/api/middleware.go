package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/KirkDiggler/mysterybox/internal/auth"
	"github.com/KirkDiggler/mysterybox/internal/repositories/ratelimit"
	"github.com/gin-gonic/gin"
)

// requestLogger logs one line per request
func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		event := h.logger.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			event = h.logger.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Str("client_ip", c.ClientIP()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// requireAdmin rejects requests without a valid admin bearer token
func (h *Handler) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := h.verifier.Verify(c.GetHeader("Authorization"))
		if err != nil {
			message := "invalid token"
			if errors.Is(err, auth.ErrMissingToken) || errors.Is(err, auth.ErrExpiredToken) {
				message = err.Error()
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": message})
			return
		}

		if !claims.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": auth.ErrForbidden.Error()})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// rateLimited limits requests per client IP and route. Requests pass when the limiter is down.
func (h *Handler) rateLimited() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.rateLimiter == nil {
			c.Next()
			return
		}

		output, err := h.rateLimiter.Allow(c.Request.Context(), &ratelimit.AllowInput{
			Key:    c.FullPath() + ":" + c.ClientIP(),
			Limit:  h.rateLimit,
			Window: h.rateWindow,
		})
		if err != nil {
			h.logger.Warn().Err(err).Msg("rate limiter unavailable")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(output.Remaining))
		if !output.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(output.RetryAfter.Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"success": false, "message": "too many requests"})
			return
		}

		c.Next()
	}
}
