package audit

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/mysterybox/internal/services/audit Service,Sink

import (
	"context"

	"github.com/KirkDiggler/mysterybox/internal/models"
)

// Service records state changes without making callers wait for, or depend on, the sinks
type Service interface {
	// Emit hands the record to every sink in the background
	Emit(ctx context.Context, input *EmitInput)

	// Flush waits for in-flight records until ctx is done
	Flush(ctx context.Context) error
}

// Sink stores or forwards audit records
type Sink interface {
	// Record delivers one record
	Record(ctx context.Context, record *models.AuditRecord) error

	// Name identifies the sink in logs
	Name() string
}
