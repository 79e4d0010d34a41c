package participant

// ParticipantError is a custom error type for participant errors
type ParticipantError string

// Error implements the error interface
func (e ParticipantError) Error() string {
	return string(e)
}

const (
	// Configuration errors
	ErrNilConfig          ParticipantError = "config cannot be nil"
	ErrNilParticipantRepo ParticipantError = "participant repository cannot be nil"
	ErrNilAudit           ParticipantError = "audit service cannot be nil"
	ErrNilClock           ParticipantError = "clock cannot be nil"
	ErrNilUUID            ParticipantError = "uuid generator cannot be nil"

	// Input errors
	ErrNilInput        ParticipantError = "input cannot be nil"
	ErrMissingName     ParticipantError = "name is required"
	ErrMissingPhone    ParticipantError = "phone is required"
	ErrInvalidPhone    ParticipantError = "phone must have between 10 and 13 digits"
	ErrMissingIdentity ParticipantError = "participant id or name and phone are required"

	ErrParticipantNotFound ParticipantError = "participant not found"
	ErrReferralCodeSpace   ParticipantError = "could not allocate a unique referral code"
)
