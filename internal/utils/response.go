package utils

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

const (
	ErrCodeInvalidPayload          = "invalid_payload"
	ErrCodeValidation              = "validation_error"
	ErrCodeUnauthorized            = "unauthorized"
	ErrCodeTokenExpired            = "token_expired"
	ErrCodeInternal                = "internal_server_error"
	ErrCodeNotFound                = "not_found"
	ErrCodeConflict                = "conflict"
	ErrCodeNoPendingInvitation     = "no_pending_invitation"
	ErrCodeInvalidVerificationCode = "invalid_verification_code"
	ErrCodeExternalServiceFailure  = "external_service_failure"
)

// APIResponse is the envelope every endpoint writes: a success flag, a
// human-readable message, an error code on failures, and an optional payload.
type APIResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// RespondErrorWithCode builds a JSON error response with a standard
// code and public message. The optional devErrs are logged server-side
// and never leak to the caller.
func RespondErrorWithCode(
	w http.ResponseWriter,
	status int,
	errorCode string,
	publicMessage string,
	devErrs ...error,
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(APIResponse{
		Success: false,
		Code:    errorCode,
		Message: publicMessage,
	})

	if len(devErrs) > 0 && devErrs[0] != nil {
		Logger.WithFields(logrus.Fields{
			"status": status,
			"error":  devErrs[0].Error(),
		}).Error(publicMessage)
	} else {
		Logger.WithFields(logrus.Fields{
			"status": status,
		}).Error(publicMessage)
	}
}

// RespondWithJSON for successful cases.
func RespondWithJSON(w http.ResponseWriter, status int, message string, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(APIResponse{
		Success: true,
		Message: message,
		Data:    payload,
	})
}
