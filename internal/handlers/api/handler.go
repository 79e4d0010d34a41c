// Package api exposes the game engine over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/KirkDiggler/mysterybox/internal/auth"
	"github.com/KirkDiggler/mysterybox/internal/repositories/ratelimit"
	"github.com/KirkDiggler/mysterybox/internal/services/game"
	"github.com/KirkDiggler/mysterybox/internal/services/participant"
	"github.com/KirkDiggler/mysterybox/internal/services/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	defaultRateLimit  = 30
	defaultRateWindow = time.Minute

	claimsKey = "claims"
)

// Config holds the dependencies of the HTTP handler
type Config struct {
	GameService        game.Service
	ParticipantService participant.Service
	ValidationService  validation.Service
	Verifier           auth.Verifier

	// RateLimiter limits public POST requests per client IP
	RateLimiter ratelimit.Repository
	RateLimit   int
	RateWindow  time.Duration

	// HealthCheck pings the store for /healthz
	HealthCheck func(ctx context.Context) error

	Logger *zerolog.Logger
}

// Handler serves the game HTTP routes
type Handler struct {
	gameService        game.Service
	participantService participant.Service
	validationService  validation.Service
	verifier           auth.Verifier
	rateLimiter        ratelimit.Repository
	rateLimit          int
	rateWindow         time.Duration
	healthCheck        func(ctx context.Context) error
	logger             zerolog.Logger
}

// New creates a new HTTP handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}
	if cfg.ParticipantService == nil {
		return nil, errors.New("participant service cannot be nil")
	}
	if cfg.ValidationService == nil {
		return nil, errors.New("validation service cannot be nil")
	}
	if cfg.Verifier == nil {
		return nil, errors.New("verifier cannot be nil")
	}

	h := &Handler{
		gameService:        cfg.GameService,
		participantService: cfg.ParticipantService,
		validationService:  cfg.ValidationService,
		verifier:           cfg.Verifier,
		rateLimiter:        cfg.RateLimiter,
		rateLimit:          cfg.RateLimit,
		rateWindow:         cfg.RateWindow,
		healthCheck:        cfg.HealthCheck,
		logger:             zerolog.Nop(),
	}
	if h.rateLimit <= 0 {
		h.rateLimit = defaultRateLimit
	}
	if h.rateWindow <= 0 {
		h.rateWindow = defaultRateWindow
	}
	if cfg.Logger != nil {
		h.logger = cfg.Logger.With().Str("component", "http").Logger()
	}

	return h, nil
}

// Router builds the gin engine with every route registered
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), h.requestLogger())

	r.GET("/healthz", h.Health)
	r.POST("/register", h.rateLimited(), h.Register)
	r.POST("/validate-guess", h.rateLimited(), h.ValidateGuess)

	public := r.Group("/game")
	{
		public.GET("/live", h.GetLive)
		public.GET("/quota", h.GetQuota)
		public.POST("/submit", h.rateLimited(), h.SubmitGuess)
	}

	admin := r.Group("/game", h.requireAdmin())
	{
		admin.POST("/start", h.StartGame)
		admin.POST("/reveal-clue", h.RevealClue)
		admin.POST("/end-submissions", h.EndSubmissions)
		admin.POST("/draw-winner", h.DrawWinner)
		admin.POST("/draw-winner-from-all", h.DrawWinnerFromAll)
		admin.POST("/reset", h.Reset)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "route not found"})
	})

	return r
}

// Health pings the store
func (h *Handler) Health(c *gin.Context) {
	if h.healthCheck != nil {
		if err := h.healthCheck(c.Request.Context()); err != nil {
			h.logger.Error().Err(err).Msg("health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "store unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "ok"})
}

func actorID(c *gin.Context) string {
	if claims, ok := c.Get(claimsKey); ok {
		if cl, ok := claims.(*auth.Claims); ok {
			return cl.Subject
		}
	}
	return ""
}
