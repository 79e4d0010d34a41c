package validation

// ValidationError is a custom error type for validation errors
type ValidationError string

// Error implements the error interface
func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrNilInput          ValidationError = "input cannot be nil"
	ErrEmptyAnswer       ValidationError = "answer cannot be empty"
	ErrUnparsableVerdict ValidationError = "provider verdict is missing the isCorrect field"
)
