package auth

// AuthError is a custom error type for token errors
type AuthError string

// Error implements the error interface
func (e AuthError) Error() string {
	return string(e)
}

const (
	ErrMissingSecret    AuthError = "jwt secret is required"
	ErrMissingToken     AuthError = "missing bearer token"
	ErrMalformedToken   AuthError = "token is malformed"
	ErrExpiredToken     AuthError = "token is expired"
	ErrInvalidSignature AuthError = "signature is invalid"
	ErrInvalidToken     AuthError = "invalid token"
	ErrForbidden        AuthError = "admin role required"
)
