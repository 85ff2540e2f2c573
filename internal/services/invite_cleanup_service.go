package services

import (
	"context"
	"time"

	"github.com/carebridge/caregiver-service/internal/repositories"
	"github.com/carebridge/caregiver-service/internal/utils"
)

// StalePendingAge is how long a pending, unverified invitation may sit in
// the registry before the daily sweep soft-deletes it. The pairing-cache
// entry itself is long gone by then; this only tidies the durable side.
const StalePendingAge = 30 * 24 * time.Hour

// InviteCleanupService soft-deletes abandoned pending invitations.
type InviteCleanupService interface {
	SweepStalePending(ctx context.Context) error
}

type inviteCleanupService struct {
	caregiverRepo repositories.CaregiverRepository
}

func NewInviteCleanupService(caregiverRepo repositories.CaregiverRepository) InviteCleanupService {
	return &inviteCleanupService{caregiverRepo: caregiverRepo}
}

func (s *inviteCleanupService) SweepStalePending(ctx context.Context) error {
	cutoff := time.Now().Add(-StalePendingAge)

	swept, err := s.caregiverRepo.SoftDeleteStalePending(ctx, cutoff)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to sweep stale pending invitations")
		return err
	}

	if swept > 0 {
		utils.Logger.Infof("Soft-deleted %d stale pending invitations", swept)
	}
	return nil
}
