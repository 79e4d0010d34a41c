package audit

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/mysterybox/internal/repositories/audit Repository

import (
	"context"

	"github.com/KirkDiggler/mysterybox/internal/models"
)

// Repository appends audit records to an append-only log
type Repository interface {
	// Append adds a record to the log
	Append(ctx context.Context, input *AppendInput) error

	// ListRecent returns the newest records first
	ListRecent(ctx context.Context, input *ListRecentInput) ([]*models.AuditRecord, error)
}
