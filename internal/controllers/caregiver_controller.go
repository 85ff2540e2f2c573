package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/carebridge/caregiver-service/internal/dtos"
	"github.com/carebridge/caregiver-service/internal/services"
	"github.com/carebridge/caregiver-service/internal/utils"
)

type CaregiverController struct {
	caregiverService services.CaregiverService
}

func NewCaregiverController(caregiverService services.CaregiverService) *CaregiverController {
	return &CaregiverController{caregiverService: caregiverService}
}

var validate = validator.New()

// ---------------------------------------------------------------------
// POST /api/v1/caregivers/invite
// ---------------------------------------------------------------------
func (c *CaregiverController) InviteCaregiver(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == nil {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Unauthorized access.",
		)
		return
	}

	var req dtos.InviteCaregiverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", err,
		)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation,
			"Name, phone number, and access level are required.", err,
		)
		return
	}

	resp, token, err := c.caregiverService.Invite(r.Context(), *userID, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	w.Header().Set("Authorization", "Bearer "+token)
	utils.RespondWithJSON(w, http.StatusCreated, "Caregiver invited successfully", resp)
}

// ---------------------------------------------------------------------
// POST /api/v1/caregivers/verify
// ---------------------------------------------------------------------
func (c *CaregiverController) VerifyCaregiver(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == nil {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Unauthorized access.",
		)
		return
	}

	var req dtos.VerifyCaregiverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", err,
		)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Verification code is required.", err,
		)
		return
	}

	phone := getUserPhoneFromContext(r)
	if phone == "" {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation,
			"Phone number is missing from the current user.", utils.ErrPhoneMissingFromProfile,
		)
		return
	}

	resp, err := c.caregiverService.Verify(r.Context(), *userID, phone, req.VerificationCode)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, "Caregiver verification successful.", resp)
}

// ---------------------------------------------------------------------
// PATCH /api/v1/caregivers/update/{id}
// ---------------------------------------------------------------------
func (c *CaregiverController) UpdateCaregiverPermission(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == nil {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Unauthorized access.",
		)
		return
	}

	caregiverID, ok := parseCaregiverID(w, r)
	if !ok {
		return
	}

	var req dtos.UpdateCaregiverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", err,
		)
		return
	}

	updated, err := c.caregiverService.UpdatePermission(r.Context(), *userID, caregiverID, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, "Permission updated successfully", updated)
}

// ---------------------------------------------------------------------
// DELETE /api/v1/caregivers/delete/{id}
// ---------------------------------------------------------------------
func (c *CaregiverController) SoftDeleteCaregiver(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == nil {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Unauthorized access.",
		)
		return
	}

	caregiverID, ok := parseCaregiverID(w, r)
	if !ok {
		return
	}

	deleted, err := c.caregiverService.SoftDelete(r.Context(), *userID, caregiverID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, "Caregiver deleted successfully", deleted)
}

func parseCaregiverID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := mux.Vars(r)["id"]
	if raw == "" {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Caregiver id is missing.",
		)
		return uuid.Nil, false
	}
	caregiverID, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Caregiver id is malformed.", err,
		)
		return uuid.Nil, false
	}
	return caregiverID, true
}
