package models

import "github.com/google/uuid"

// PendingInvitation is the transient pairing-cache entry written at invite
// time, keyed by the hashed invitee phone number. CaregiverID pins the exact
// registry row created by the invite, so verification never has to guess
// which of an inviter's rows to promote.
type PendingInvitation struct {
	UserID           uuid.UUID `json:"user_id"`
	CaregiverID      uuid.UUID `json:"caregiver_id"`
	AccessLevel      int       `json:"access_level"`
	VerificationCode string    `json:"verification_code"`
}
