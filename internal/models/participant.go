package models

import (
	"time"
)

// Participant is a registered member of the public taking part in games
type Participant struct {
	// ID is the unique identifier for the participant
	ID string

	// Name is the display name of the participant
	Name string

	// Phone is the identity key of the participant
	Phone string

	// Neighborhood is where the participant lives
	Neighborhood string

	// City is the participant's city
	City string

	// OwnReferralCode is the code this participant shares with friends
	OwnReferralCode string

	// ReferredByCode is the code used when this participant registered
	ReferredByCode string

	// ExtraGuesses are additional guesses earned through referrals
	ExtraGuesses int

	// CreatedAt is when the participant registered
	CreatedAt time.Time

	// UpdatedAt is when the participant was last updated
	UpdatedAt time.Time
}

// Quota is the number of guesses the participant may submit in one game
func (p *Participant) Quota() int {
	return 1 + p.ExtraGuesses
}
