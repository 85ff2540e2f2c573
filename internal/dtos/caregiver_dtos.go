package dtos

import "github.com/google/uuid"

// InviteCaregiverRequest starts the handshake. AccessLevel is a pointer so
// a legitimate level of 0 is distinguishable from an absent field.
type InviteCaregiverRequest struct {
	Name        string `json:"name" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	AccessLevel *int   `json:"accessLevel" validate:"required"`
}

type InviteCaregiverResponse struct {
	HashedNumber     string    `json:"hashedNumber"`
	AccessLevel      int       `json:"accessLevel"`
	VerificationCode string    `json:"verificationCode"`
	CaregiverID      uuid.UUID `json:"caregiverId"`
}

// VerifyCaregiverRequest carries the out-of-band code; the caller's identity
// and phone number come from the auth context, not the body.
type VerifyCaregiverRequest struct {
	VerificationCode string `json:"verificationCode" validate:"required"`
}

type VerifyCaregiverResponse struct {
	UserID      uuid.UUID `json:"userId"`
	AccessLevel int       `json:"accessLevel"`
}

// UpdateCaregiverRequest is a partial patch. Only fields that are present
// and non-zero are applied; a zero access level or empty string is dropped.
type UpdateCaregiverRequest struct {
	Name             *string `json:"name,omitempty"`
	PhoneNumber      *string `json:"phoneNumber,omitempty"`
	VerificationCode *string `json:"verificationCode,omitempty"`
	AccessLevel      *int    `json:"accessLevel,omitempty"`
	Status           *string `json:"status,omitempty"`
}
