package messaging

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/mysterybox/internal/services/messaging Service

import "context"

// Service turns game events into public announcement texts
type Service interface {
	// GetAnnouncement returns the announcement for an audit record, if the action is public
	GetAnnouncement(ctx context.Context, input *GetAnnouncementInput) (*GetAnnouncementOutput, error)

	// GetLiveMessage returns a status line for the live game
	GetLiveMessage(ctx context.Context, input *GetLiveMessageInput) (*GetLiveMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
