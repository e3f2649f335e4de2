// internal/repository/profile_repo.go
package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"gigpay/internal/domain"
)

// ProfileRepository defines the interface for profile data operations.
type ProfileRepository interface {
	// CreateProfile adds a new profile to the database using the provided DBExecutor.
	CreateProfile(ctx context.Context, q DBExecutor, profile *domain.Profile) error
	// GetProfileByID retrieves a profile by its ID using the provided DBExecutor.
	GetProfileByID(ctx context.Context, q DBExecutor, id int64) (*domain.Profile, error)
	// GetProfileByIDForUpdate retrieves a profile by its ID and acquires a row
	// lock for the duration of the enclosing transaction.
	GetProfileByIDForUpdate(ctx context.Context, q DBExecutor, id int64) (*domain.Profile, error)
	// AdjustProfileBalance applies a signed delta to the profile balance,
	// rounded to 2 decimal places at the point of persistence.
	AdjustProfileBalance(ctx context.Context, q DBExecutor, profileID int64, delta decimal.Decimal) error
}
