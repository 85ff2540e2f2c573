package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/carebridge/caregiver-service/internal/middleware"
)

// getUserIDFromContext parses the authenticated caller's id placed on the
// context by the auth middleware.
func getUserIDFromContext(r *http.Request) *uuid.UUID {
	userID, ok := r.Context().Value(middleware.ContextKeyUserID).(string)
	if !ok || userID == "" {
		return nil
	}
	parsed, err := uuid.Parse(userID)
	if err != nil {
		return nil
	}
	return &parsed
}

// getUserPhoneFromContext returns the caller's phone number claim, if any.
func getUserPhoneFromContext(r *http.Request) string {
	phone, _ := r.Context().Value(middleware.ContextKeyUserPhone).(string)
	return phone
}
