package audit

import (
	"context"

	"github.com/KirkDiggler/mysterybox/internal/models"
	auditRepo "github.com/KirkDiggler/mysterybox/internal/repositories/audit"
)

// repositorySink appends records to the audit repository
type repositorySink struct {
	repo auditRepo.Repository
}

// NewRepositorySink adapts an audit repository to a Sink
func NewRepositorySink(repo auditRepo.Repository) (*repositorySink, error) {
	if repo == nil {
		return nil, ErrNilRepo
	}

	return &repositorySink{repo: repo}, nil
}

// Record appends the record
func (s *repositorySink) Record(ctx context.Context, record *models.AuditRecord) error {
	return s.repo.Append(ctx, &auditRepo.AppendInput{Record: record})
}

// Name identifies the sink in logs
func (s *repositorySink) Name() string {
	return "repository"
}
