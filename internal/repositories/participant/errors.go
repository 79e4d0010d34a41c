package participant

import "errors"

var (
	// ErrParticipantNotFound is returned when a participant is not found
	ErrParticipantNotFound = errors.New("participant not found")

	// ErrPhoneAlreadyRegistered is returned when the phone belongs to another participant
	ErrPhoneAlreadyRegistered = errors.New("phone already registered")

	// ErrReferralCodeTaken is returned when the referral code belongs to another participant
	ErrReferralCodeTaken = errors.New("referral code already taken")

	// ErrReferralRewardNotFound is returned when the participant was never rewarded for
	ErrReferralRewardNotFound = errors.New("referral reward not found")

	// ErrTooMuchContention is returned when an optimistic transaction keeps losing races
	ErrTooMuchContention = errors.New("too much contention on participant")
)
