package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	twilio "github.com/twilio/twilio-go"

	"github.com/carebridge/caregiver-service/internal/cache"
	"github.com/carebridge/caregiver-service/internal/config"
	"github.com/carebridge/caregiver-service/internal/dtos"
	"github.com/carebridge/caregiver-service/internal/models"
	"github.com/carebridge/caregiver-service/internal/repositories"
	"github.com/carebridge/caregiver-service/internal/utils"
)

// CaregiverService orchestrates the invite → verify handshake and the
// permission/delete operations on caregiver records.
type CaregiverService interface {
	// Invite hands a pairing code to the invitee's phone, records the
	// pending relationship, and returns the invite payload plus a session
	// credential for the inviter.
	Invite(ctx context.Context, userID uuid.UUID, req dtos.InviteCaregiverRequest) (*dtos.InviteCaregiverResponse, string, error)

	// Verify redeems a pending invitation for the authenticated caller.
	// The pairing entry is consumed only after the registry row commits.
	Verify(ctx context.Context, callerID uuid.UUID, callerPhone, code string) (*dtos.VerifyCaregiverResponse, error)

	UpdatePermission(ctx context.Context, userID, caregiverID uuid.UUID, req dtos.UpdateCaregiverRequest) (*models.Caregiver, error)
	SoftDelete(ctx context.Context, userID, caregiverID uuid.UUID) (*models.Caregiver, error)
}

type caregiverService struct {
	caregiverRepo repositories.CaregiverRepository
	pairingCache  cache.PairingCache
	delivery      CodeDeliveryService
	credentials   CredentialService

	cfg          *config.Config
	twilioClient *twilio.RestClient
}

func NewCaregiverService(
	caregiverRepo repositories.CaregiverRepository,
	pairingCache cache.PairingCache,
	delivery CodeDeliveryService,
	credentials CredentialService,
	cfg *config.Config,
) CaregiverService {
	tClient := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})

	return &caregiverService{
		caregiverRepo: caregiverRepo,
		pairingCache:  pairingCache,
		delivery:      delivery,
		credentials:   credentials,
		cfg:           cfg,
		twilioClient:  tClient,
	}
}

// ---------------------------------------------------------------------
// Invite
// ---------------------------------------------------------------------
func (s *caregiverService) Invite(
	ctx context.Context,
	userID uuid.UUID,
	req dtos.InviteCaregiverRequest,
) (*dtos.InviteCaregiverResponse, string, error) {

	ok, err := utils.ValidatePhoneNumber(ctx, req.PhoneNumber, s.cfg.LDFlag_ValidatePhoneWithTwilio, s.twilioClient)
	if err != nil {
		return nil, "", utils.NewAppError(
			http.StatusInternalServerError, utils.ErrCodeExternalServiceFailure,
			"Error occurred while inviting the caregiver.", err,
		)
	}
	if !ok {
		return nil, "", utils.NewAppError(
			http.StatusBadRequest, utils.ErrCodeValidation,
			"Phone number is malformed.", utils.ErrInvalidPhone,
		)
	}

	hashedNumber := utils.HashPhoneNumber(req.PhoneNumber)

	code, err := s.delivery.DeliverCode(ctx, req.PhoneNumber)
	if err != nil {
		return nil, "", utils.NewAppError(
			http.StatusInternalServerError, utils.ErrCodeInternal,
			"Error occurred while inviting the caregiver.", err,
		)
	}

	caregiver := &models.Caregiver{
		ID:               uuid.New(),
		UserID:           userID,
		Name:             req.Name,
		PhoneNumber:      req.PhoneNumber,
		AccessLevel:      *req.AccessLevel,
		HashedNumber:     hashedNumber,
		VerificationCode: code,
		Status:           models.CaregiverStatusPending,
		IsVerified:       false,
	}
	if err := s.caregiverRepo.Create(ctx, caregiver); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, "", utils.NewAppError(
				http.StatusConflict, utils.ErrCodeConflict,
				"A caregiver record for this phone number already exists.", err,
			)
		}
		return nil, "", utils.NewAppError(
			http.StatusInternalServerError, utils.ErrCodeInternal,
			"Error occurred while inviting the caregiver.", err,
		)
	}

	// The cache entry carries the row id so verification can resolve the
	// exact record even when an inviter has several pending invitations.
	s.pairingCache.Put(hashedNumber, models.PendingInvitation{
		UserID:           userID,
		CaregiverID:      caregiver.ID,
		AccessLevel:      *req.AccessLevel,
		VerificationCode: code,
	}, s.cfg.PairingTTL)

	token, err := s.credentials.IssueCredential(ctx, userID, "")
	if err != nil {
		return nil, "", utils.NewAppError(
			http.StatusInternalServerError, utils.ErrCodeInternal,
			"Error occurred while inviting the caregiver.", err,
		)
	}

	return &dtos.InviteCaregiverResponse{
		HashedNumber:     hashedNumber,
		AccessLevel:      *req.AccessLevel,
		VerificationCode: code,
		CaregiverID:      caregiver.ID,
	}, token, nil
}

// ---------------------------------------------------------------------
// Verify
// ---------------------------------------------------------------------
func (s *caregiverService) Verify(
	ctx context.Context,
	callerID uuid.UUID,
	callerPhone, code string,
) (*dtos.VerifyCaregiverResponse, error) {

	hashedNumber := utils.HashPhoneNumber(callerPhone)

	inv, found := s.pairingCache.Get(hashedNumber)
	if !found {
		return nil, utils.NewAppError(
			http.StatusNotFound, utils.ErrCodeNoPendingInvitation,
			"No pending invitation found.", utils.ErrNoPendingInvitation,
		)
	}

	// A mismatch leaves the entry intact so the invitee can retry while
	// it is still live.
	if inv.VerificationCode != code {
		return nil, utils.NewAppError(
			http.StatusConflict, utils.ErrCodeInvalidVerificationCode,
			"Invalid verification code.", utils.ErrInvalidVerificationCode,
		)
	}

	caregiverID, err := s.resolveCaregiverID(ctx, inv)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NewAppError(
				http.StatusNotFound, utils.ErrCodeNotFound,
				"Caregiver record not found.", utils.ErrCaregiverNotFound,
			)
		}
		return nil, utils.NewAppError(
			http.StatusInternalServerError, utils.ErrCodeInternal,
			"An error occurred while verifying the caregiver.", err,
		)
	}

	if _, err := s.caregiverRepo.MarkVerified(ctx, inv.UserID, caregiverID, inv.AccessLevel); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NewAppError(
				http.StatusNotFound, utils.ErrCodeNotFound,
				"Caregiver record not found.", utils.ErrCaregiverNotFound,
			)
		}
		return nil, utils.NewAppError(
			http.StatusInternalServerError, utils.ErrCodeInternal,
			"An error occurred while verifying the caregiver.", err,
		)
	}

	// Consuming the entry after the registry commit is the single-use
	// guarantee: a replay now misses the cache.
	s.pairingCache.Delete(hashedNumber)

	utils.Logger.Infof("Caregiver %s verified for user %s", caregiverID, inv.UserID)

	return &dtos.VerifyCaregiverResponse{
		UserID:      inv.UserID,
		AccessLevel: inv.AccessLevel,
	}, nil
}

// resolveCaregiverID pins the registry row named by the cache entry.
// Entries written before row ids were cached fall back to the by-inviter
// lookup.
func (s *caregiverService) resolveCaregiverID(ctx context.Context, inv models.PendingInvitation) (uuid.UUID, error) {
	if inv.CaregiverID != uuid.Nil {
		caregiver, err := s.caregiverRepo.GetByUserAndID(ctx, inv.UserID, inv.CaregiverID)
		if err != nil {
			return uuid.Nil, err
		}
		return caregiver.ID, nil
	}
	caregiver, err := s.caregiverRepo.GetByUserID(ctx, inv.UserID)
	if err != nil {
		return uuid.Nil, err
	}
	return caregiver.ID, nil
}

// ---------------------------------------------------------------------
// UpdatePermission
// ---------------------------------------------------------------------
func (s *caregiverService) UpdatePermission(
	ctx context.Context,
	userID, caregiverID uuid.UUID,
	req dtos.UpdateCaregiverRequest,
) (*models.Caregiver, error) {

	// Only present, non-zero fields are applied; accessLevel=0 and empty
	// strings are dropped.
	patch := map[string]any{}
	if req.Name != nil && *req.Name != "" {
		patch["name"] = *req.Name
	}
	if req.PhoneNumber != nil && *req.PhoneNumber != "" {
		patch["phone_number"] = *req.PhoneNumber
	}
	if req.VerificationCode != nil && *req.VerificationCode != "" {
		patch["verification_code"] = *req.VerificationCode
	}
	if req.AccessLevel != nil && *req.AccessLevel != 0 {
		patch["access_level"] = *req.AccessLevel
	}
	if req.Status != nil && *req.Status != "" {
		patch["status"] = *req.Status
	}

	if len(patch) == 0 {
		return nil, utils.NewAppError(
			http.StatusBadRequest, utils.ErrCodeValidation,
			"No updatable fields in request.", utils.ErrEmptyPatch,
		)
	}

	updated, err := s.caregiverRepo.Update(ctx, userID, caregiverID, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NewAppError(
				http.StatusNotFound, utils.ErrCodeNotFound,
				"Caregiver record not found.", utils.ErrCaregiverNotFound,
			)
		}
		return nil, utils.NewAppError(
			http.StatusInternalServerError, utils.ErrCodeInternal,
			"Updating permission of caregiver failed.", err,
		)
	}
	return updated, nil
}

// ---------------------------------------------------------------------
// SoftDelete
// ---------------------------------------------------------------------
func (s *caregiverService) SoftDelete(
	ctx context.Context,
	userID, caregiverID uuid.UUID,
) (*models.Caregiver, error) {

	deleted, err := s.caregiverRepo.SoftDelete(ctx, userID, caregiverID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NewAppError(
				http.StatusNotFound, utils.ErrCodeNotFound,
				"Caregiver record not found.", utils.ErrCaregiverNotFound,
			)
		}
		return nil, utils.NewAppError(
			http.StatusInternalServerError, utils.ErrCodeInternal,
			"Caregiver deletion failed.", err,
		)
	}
	return deleted, nil
}
