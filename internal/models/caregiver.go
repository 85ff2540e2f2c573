package models

import (
	"time"

	"github.com/google/uuid"
)

// Caregiver status values for the caregivers table.
const (
	CaregiverStatusPending  = "pending"
	CaregiverStatusAccepted = "accepted"
)

// Caregiver for the caregivers table. A row is created pending at invite
// time and flipped to accepted by a successful verification. Rows are only
// ever soft-deleted.
type Caregiver struct {
	ID               uuid.UUID  `json:"id"`
	UserID           uuid.UUID  `json:"user_id"`
	Name             string     `json:"name"`
	PhoneNumber      string     `json:"phone_number"`
	AccessLevel      int        `json:"access_level"`
	HashedNumber     string     `json:"hashed_number"`
	VerificationCode string     `json:"verification_code,omitempty"`
	Status           string     `json:"status"`
	IsVerified       bool       `json:"is_verified"`
	IsDeleted        bool       `json:"is_deleted"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
