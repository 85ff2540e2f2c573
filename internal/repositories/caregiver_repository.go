package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/carebridge/caregiver-service/internal/models"
)

type CaregiverRepository interface {
	Create(ctx context.Context, c *models.Caregiver) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Caregiver, error)
	GetByUserAndID(ctx context.Context, userID, caregiverID uuid.UUID) (*models.Caregiver, error)

	// Update applies the given column patch to the row matching both
	// userID and caregiverID, returning the updated row. pgx.ErrNoRows
	// when the filter matches nothing.
	Update(ctx context.Context, userID, caregiverID uuid.UUID, patch map[string]any) (*models.Caregiver, error)

	// MarkVerified promotes the row in a single statement: is_verified,
	// access_level and status move together so the mutation is a pure
	// overwrite. pgx.ErrNoRows when the filter matches nothing.
	MarkVerified(ctx context.Context, userID, caregiverID uuid.UUID, accessLevel int) (*models.Caregiver, error)

	// SoftDelete marks the row deleted without removing it. The filter is
	// (user_id, id) only, so repeating the call re-applies the same marker.
	SoftDelete(ctx context.Context, userID, caregiverID uuid.UUID) (*models.Caregiver, error)

	// SoftDeleteStalePending marks pending, unverified, non-deleted rows
	// created before cutoff as deleted. Returns the number of rows swept.
	SoftDeleteStalePending(ctx context.Context, cutoff time.Time) (int64, error)
}

type caregiverRepo struct {
	db DB
}

func NewCaregiverRepository(db DB) CaregiverRepository {
	return &caregiverRepo{db: db}
}

const caregiverColumns = `
	id, user_id, name, phone_number, access_level, hashed_number,
	verification_code, status, is_verified, is_deleted, deleted_at,
	created_at, updated_at`

// patchColumns is the fixed order in which patch keys are rendered into a
// SET clause. Keys outside this list are ignored.
var patchColumns = []string{"name", "phone_number", "verification_code", "access_level", "status"}

func (r *caregiverRepo) Create(ctx context.Context, c *models.Caregiver) error {
	q := `
        INSERT INTO caregivers
            (id, user_id, name, phone_number, access_level, hashed_number,
             verification_code, status, is_verified, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
    `
	_, err := r.db.Exec(ctx, q,
		c.ID, c.UserID, c.Name, c.PhoneNumber, c.AccessLevel,
		c.HashedNumber, c.VerificationCode, c.Status, c.IsVerified,
	)
	return err
}

func (r *caregiverRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Caregiver, error) {
	q := `SELECT ` + caregiverColumns + `
        FROM caregivers
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT 1
    `
	return r.scanCaregiver(r.db.QueryRow(ctx, q, userID))
}

func (r *caregiverRepo) GetByUserAndID(ctx context.Context, userID, caregiverID uuid.UUID) (*models.Caregiver, error) {
	q := `SELECT ` + caregiverColumns + `
        FROM caregivers
        WHERE user_id = $1 AND id = $2
    `
	return r.scanCaregiver(r.db.QueryRow(ctx, q, userID, caregiverID))
}

func (r *caregiverRepo) Update(
	ctx context.Context,
	userID, caregiverID uuid.UUID,
	patch map[string]any,
) (*models.Caregiver, error) {
	setClause, args := buildUpdateSet(patch, 1)
	if setClause == "" {
		return nil, pgx.ErrNoRows
	}

	q := fmt.Sprintf(`
        UPDATE caregivers
        SET %s, updated_at = NOW()
        WHERE user_id = $%d AND id = $%d
        RETURNING `+caregiverColumns,
		setClause, len(args)+1, len(args)+2,
	)
	args = append(args, userID, caregiverID)
	return r.scanCaregiver(r.db.QueryRow(ctx, q, args...))
}

func (r *caregiverRepo) MarkVerified(
	ctx context.Context,
	userID, caregiverID uuid.UUID,
	accessLevel int,
) (*models.Caregiver, error) {
	q := `
        UPDATE caregivers
        SET is_verified = TRUE,
            access_level = $3,
            status = $4,
            updated_at = NOW()
        WHERE user_id = $1 AND id = $2
        RETURNING ` + caregiverColumns
	return r.scanCaregiver(r.db.QueryRow(ctx, q, userID, caregiverID, accessLevel, models.CaregiverStatusAccepted))
}

func (r *caregiverRepo) SoftDelete(ctx context.Context, userID, caregiverID uuid.UUID) (*models.Caregiver, error) {
	q := `
        UPDATE caregivers
        SET is_deleted = TRUE, deleted_at = NOW(), updated_at = NOW()
        WHERE user_id = $1 AND id = $2
        RETURNING ` + caregiverColumns
	return r.scanCaregiver(r.db.QueryRow(ctx, q, userID, caregiverID))
}

func (r *caregiverRepo) SoftDeleteStalePending(ctx context.Context, cutoff time.Time) (int64, error) {
	q := `
        UPDATE caregivers
        SET is_deleted = TRUE, deleted_at = NOW(), updated_at = NOW()
        WHERE status = $1
          AND is_verified = FALSE
          AND is_deleted = FALSE
          AND created_at < $2
    `
	tag, err := r.db.Exec(ctx, q, models.CaregiverStatusPending, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// buildUpdateSet renders patch into "col = $n" pairs in patchColumns order,
// numbering placeholders from startIndex. Returns the clause and args.
func buildUpdateSet(patch map[string]any, startIndex int) (string, []any) {
	var (
		parts []string
		args  []any
	)
	for _, col := range patchColumns {
		v, ok := patch[col]
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s = $%d", col, startIndex+len(args)))
		args = append(args, v)
	}
	return strings.Join(parts, ", "), args
}

func (r *caregiverRepo) scanCaregiver(row pgx.Row) (*models.Caregiver, error) {
	var c models.Caregiver
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Name,
		&c.PhoneNumber,
		&c.AccessLevel,
		&c.HashedNumber,
		&c.VerificationCode,
		&c.Status,
		&c.IsVerified,
		&c.IsDeleted,
		&c.DeletedAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
