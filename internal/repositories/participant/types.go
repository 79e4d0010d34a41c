package participant

import (
	"strings"
	"time"

	"github.com/KirkDiggler/mysterybox/internal/models"
)

type CreateParticipantInput struct {
	Participant *models.Participant
}

type GetParticipantInput struct {
	ParticipantID string
}

type GetParticipantByPhoneInput struct {
	Phone string
}

type GetParticipantByReferralCodeInput struct {
	ReferralCode string
}

// UpdateProfileInput carries the fields a re-registration may change.
// Empty fields are left untouched and ReferredByCode is only set once.
type UpdateProfileInput struct {
	ParticipantID  string
	Name           string
	Neighborhood   string
	City           string
	ReferredByCode string
	UpdatedAt      time.Time
}

// Apply copies the non-empty fields of a re-registration onto p
func (in *UpdateProfileInput) Apply(p *models.Participant) {
	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Neighborhood != "" {
		p.Neighborhood = in.Neighborhood
	}
	if in.City != "" {
		p.City = in.City
	}
	if p.ReferredByCode == "" && in.ReferredByCode != "" {
		p.ReferredByCode = strings.ToUpper(in.ReferredByCode)
	}
	if !in.UpdatedAt.IsZero() {
		p.UpdatedAt = in.UpdatedAt
	}
}

type GrantReferralRewardInput struct {
	ReferrerID string
	ReferredID string
	CreatedAt  time.Time
}

type GrantReferralRewardOutput struct {
	// Granted is false when the referred participant had already been rewarded
	Granted bool

	// Referrer is the referrer after the grant
	Referrer *models.Participant
}

type GetReferralRewardInput struct {
	ReferredID string
}

type ResetExtraGuessesInput struct {
	UpdatedAt time.Time
}

type ResetExtraGuessesOutput struct {
	ParticipantsReset int
}
