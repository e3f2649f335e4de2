// internal/repository/postgres/profile_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"gigpay/internal/domain"
	"gigpay/internal/repository"
	"gigpay/internal/util"
)

// ProfileRepository implements repository.ProfileRepository for PostgreSQL.
type ProfileRepository struct {
	// Methods receive a DBExecutor directly, so no connection is held here.
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &ProfileRepository{}
}

// CreateProfile inserts a new profile into the database using the provided DBExecutor.
func (r *ProfileRepository) CreateProfile(ctx context.Context, q repository.DBExecutor, profile *domain.Profile) error {
	query := `INSERT INTO profiles (first_name, last_name, profession, role, balance, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		profile.FirstName,
		profile.LastName,
		profile.Profession,
		profile.Role,
		profile.Balance,
		profile.CreatedAt,
		profile.UpdatedAt,
	).Scan(&profile.ID)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetProfileByID retrieves a profile by its ID using the provided DBExecutor.
func (r *ProfileRepository) GetProfileByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Profile, error) {
	var profile domain.Profile
	query := `SELECT id, first_name, last_name, profession, role, balance, created_at, updated_at
	          FROM profiles WHERE id = $1`
	err := q.GetContext(ctx, &profile, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile by ID %d: %w", id, err)
	}
	return &profile, nil
}

// GetProfileByIDForUpdate retrieves a profile and locks its row until the
// enclosing transaction ends. Must be called with a transactional executor.
func (r *ProfileRepository) GetProfileByIDForUpdate(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Profile, error) {
	var profile domain.Profile
	query := `SELECT id, first_name, last_name, profession, role, balance, created_at, updated_at
	          FROM profiles WHERE id = $1 FOR UPDATE`
	err := q.GetContext(ctx, &profile, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile %d for update: %w", id, err)
	}
	return &profile, nil
}

// AdjustProfileBalance applies a signed delta to a profile balance.
// Rounding happens in the statement so repeated adjustments cannot drift.
func (r *ProfileRepository) AdjustProfileBalance(ctx context.Context, q repository.DBExecutor, profileID int64, delta decimal.Decimal) error {
	query := `UPDATE profiles SET balance = ROUND(balance + $1, 2), updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, delta, time.Now().UTC(), profileID)
	if err != nil {
		return fmt.Errorf("failed to adjust balance for profile %d: %w", profileID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after adjusting balance for profile %d: %w", profileID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no rows affected when adjusting balance for profile %d: %w", profileID, util.ErrNotFound)
	}
	return nil
}
