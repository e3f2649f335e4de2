// internal/domain/profile.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// Role tags a profile as one side of the marketplace.
type Role string

const (
	RoleClient     Role = "client"
	RoleContractor Role = "contractor"
)

// Valid reports whether the role is one of the known variants.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleContractor:
		return true
	}
	return false
}

// Profile represents an account with a role and a currency balance.
// The balance is mutated only by the payment and deposit engines.
type Profile struct {
	ID         int64           `db:"id" json:"id"`                 // Primary key, BIGSERIAL in DB
	FirstName  string          `db:"first_name" json:"first_name"`
	LastName   string          `db:"last_name" json:"last_name"`
	Profession string          `db:"profession" json:"profession"`
	Role       Role            `db:"role" json:"role"`
	Balance    decimal.Decimal `db:"balance" json:"balance"` // NUMERIC(20, 2) in DB
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updated_at"`
}

// NewProfile creates a new Profile instance with a zero balance.
func NewProfile(firstName, lastName, profession string, role Role) *Profile {
	now := time.Now().UTC()
	return &Profile{
		FirstName:  firstName,
		LastName:   lastName,
		Profession: profession,
		Role:       role,
		Balance:    decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
