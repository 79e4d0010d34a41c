package models

import (
	"time"
)

// ReferralReward records the bonus granted to a referrer for one referred participant
type ReferralReward struct {
	// ReferrerID is the participant who shared the code
	ReferrerID string

	// ReferredID is the participant who registered with the code
	ReferredID string

	// Granted indicates the bonus guess was credited
	Granted bool

	// CreatedAt is when the reward was recorded
	CreatedAt time.Time
}
