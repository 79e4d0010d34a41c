// Package uuid hands out identifiers for games, submissions, participants and referral codes.
package uuid

import (
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/mysterybox/internal/common/uuid UUID

// UUID generates identifiers
type UUID interface {
	// NewUUID returns a random RFC 4122 identifier
	NewUUID() string

	// NewCode returns an upper-case alphanumeric code of the given length
	NewCode(length int) string
}

// DefaultUUID implements the UUID interface using the google uuid package
type DefaultUUID struct{}

func New() *DefaultUUID {
	return &DefaultUUID{}
}

// NewUUID returns a new UUID
func (d *DefaultUUID) NewUUID() string {
	return uuid.New().String()
}

// NewCode returns the first length hex digits of fresh UUIDs, upper-cased
func (d *DefaultUUID) NewCode(length int) string {
	if length <= 0 {
		return ""
	}

	var b strings.Builder
	for b.Len() < length {
		b.WriteString(strings.ReplaceAll(uuid.New().String(), "-", ""))
	}

	return strings.ToUpper(b.String()[:length])
}
