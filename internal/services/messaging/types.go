package messaging

import (
	"github.com/KirkDiggler/mysterybox/internal/models"
	"github.com/KirkDiggler/mysterybox/internal/picker"
)

// Config contains configuration for the messaging service
type Config struct {
	// Picker chooses among message variants; a time-seeded picker is used when nil
	Picker picker.Picker
}

// ErrorType names the failures players can be told about
type ErrorType string

const (
	ErrorTypeNoActiveGame  ErrorType = "no_active_game"
	ErrorTypeNotAccepting  ErrorType = "not_accepting"
	ErrorTypeQuotaExceeded ErrorType = "quota_exceeded"
	ErrorTypeRejected      ErrorType = "rejected"
	ErrorTypeUnknown       ErrorType = "unknown"
)

// GetAnnouncementInput contains the event to announce
type GetAnnouncementInput struct {
	Record *models.AuditRecord
}

// GetAnnouncementOutput contains the announcement
type GetAnnouncementOutput struct {
	// Announce is false for actions that are not broadcast
	Announce bool

	Title   string
	Message string
}

// GetLiveMessageInput describes the live game
type GetLiveMessageInput struct {
	Status          models.GameStatus
	RevealedClues   int
	SubmissionCount int
}

// GetLiveMessageOutput contains the status line
type GetLiveMessageOutput struct {
	Message string
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	ErrorType ErrorType
}

// GetErrorMessageOutput contains the error message
type GetErrorMessageOutput struct {
	Title   string
	Message string
}
