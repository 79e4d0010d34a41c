package moderation

// ModerationError is a custom error type for moderation errors
type ModerationError string

// Error implements the error interface
func (e ModerationError) Error() string {
	return string(e)
}

const (
	ErrNilInput          ModerationError = "input cannot be nil"
	ErrEmptyGuess        ModerationError = "guess cannot be empty"
	ErrUnparsableVerdict ModerationError = "provider verdict is missing the approved field"
)
