package audit

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/mysterybox/internal/common/clock"
	"github.com/KirkDiggler/mysterybox/internal/models"
	"github.com/rs/zerolog"
)

const defaultSinkTimeout = 3 * time.Second

// service implements the Service interface
type service struct {
	sinks       []Sink
	clock       clock.Clock
	sinkTimeout time.Duration
	logger      zerolog.Logger
	wg          sync.WaitGroup
}

// New creates a new audit service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	for _, sink := range cfg.Sinks {
		if sink == nil {
			return nil, ErrNilSink
		}
	}

	timeout := cfg.SinkTimeout
	if timeout <= 0 {
		timeout = defaultSinkTimeout
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = cfg.Logger.With().Str("component", "audit").Logger()
	}

	return &service{
		sinks:       cfg.Sinks,
		clock:       cfg.Clock,
		sinkTimeout: timeout,
		logger:      logger,
	}, nil
}

// Emit hands the record to every sink in its own goroutine. The caller's
// cancellation does not reach the sinks.
func (s *service) Emit(ctx context.Context, input *EmitInput) {
	if input == nil || input.Action == "" {
		return
	}

	record := &models.AuditRecord{
		Action:    input.Action,
		ActorID:   input.ActorID,
		GameID:    input.GameID,
		Details:   input.Details,
		CreatedAt: s.clock.Now(),
	}

	detached := context.WithoutCancel(ctx)
	for _, sink := range s.sinks {
		s.wg.Add(1)
		go s.deliver(detached, sink, record)
	}
}

func (s *service) deliver(ctx context.Context, sink Sink, record *models.AuditRecord) {
	defer s.wg.Done()

	ctx, cancel := context.WithTimeout(ctx, s.sinkTimeout)
	defer cancel()

	if err := sink.Record(ctx, record); err != nil {
		s.logger.Warn().
			Err(err).
			Str("sink", sink.Name()).
			Str("action", string(record.Action)).
			Str("game_id", record.GameID).
			Msg("failed to deliver audit record")
	}
}

// Flush waits for in-flight deliveries
func (s *service) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
