package audit

// AuditError is a custom error type for audit errors
type AuditError string

// Error implements the error interface
func (e AuditError) Error() string {
	return string(e)
}

const (
	ErrNilConfig AuditError = "config cannot be nil"
	ErrNilClock  AuditError = "clock cannot be nil"
	ErrNilSink   AuditError = "sink cannot be nil"
	ErrNilRepo   AuditError = "repository cannot be nil"
)
