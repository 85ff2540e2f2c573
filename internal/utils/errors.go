package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrInvalidPhone            = errors.New("invalid_phone")
	ErrNoPendingInvitation     = errors.New("no_pending_invitation")
	ErrInvalidVerificationCode = errors.New("invalid_verification_code")
	ErrCaregiverNotFound       = errors.New("caregiver_not_found")
	ErrPhoneMissingFromProfile = errors.New("phone_missing_from_profile")
	ErrEmptyPatch              = errors.New("empty_patch")

	// For external service failures (e.g., Twilio)
	ErrExternalServiceFailure = errors.New("external_service_failure")
)

// AppError carries structured failures from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError wrapping an underlying cause.
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{StatusCode: status, Code: code, Message: message, Err: err}
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, appErr.Err)
	} else {
		// Fallback for unexpected error types
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", err)
	}
}
