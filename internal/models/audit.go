package models

import (
	"time"
)

// AuditAction names a state-changing operation
type AuditAction string

const (
	AuditActionGameStarted        AuditAction = "game_started"
	AuditActionClueRevealed       AuditAction = "clue_revealed"
	AuditActionSubmissionsEnded   AuditAction = "submissions_ended"
	AuditActionWinnerDrawn        AuditAction = "winner_drawn"
	AuditActionWinnerDrawnFromAll AuditAction = "winner_drawn_from_all"
	AuditActionGameReset          AuditAction = "game_reset"
	AuditActionGuessSubmitted     AuditAction = "guess_submitted"
	AuditActionParticipantJoined  AuditAction = "participant_registered"
	AuditActionReferralGranted    AuditAction = "referral_granted"
)

// AuditRecord is an append-only record of a state change
type AuditRecord struct {
	// Action is the operation performed
	Action AuditAction

	// ActorID is who performed the operation (admin subject or participant id)
	ActorID string

	// GameID is the game affected, if any
	GameID string

	// Details carries action specific values
	Details map[string]string

	// CreatedAt is when the action happened
	CreatedAt time.Time
}
