package audit

import (
	"time"

	"github.com/KirkDiggler/mysterybox/internal/common/clock"
	"github.com/KirkDiggler/mysterybox/internal/models"
	"github.com/rs/zerolog"
)

// Config holds configuration for the audit service
type Config struct {
	Sinks []Sink

	Clock clock.Clock

	// SinkTimeout bounds each delivery
	SinkTimeout time.Duration

	Logger *zerolog.Logger
}

// EmitInput describes one state change
type EmitInput struct {
	Action  models.AuditAction
	ActorID string
	GameID  string
	Details map[string]string
}
