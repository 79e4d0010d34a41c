package audit

import "github.com/KirkDiggler/mysterybox/internal/models"

type AppendInput struct {
	Record *models.AuditRecord
}

type ListRecentInput struct {
	Count int64
}
