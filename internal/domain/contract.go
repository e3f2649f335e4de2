// internal/domain/contract.go
package domain

import "time"

// ContractStatus defines the lifecycle status of a contract.
type ContractStatus string

const (
	ContractStatusNew        ContractStatus = "new"
	ContractStatusInProgress ContractStatus = "in_progress"
	ContractStatusTerminated ContractStatus = "terminated"
)

// Valid reports whether the status is one of the known variants.
func (s ContractStatus) Valid() bool {
	switch s {
	case ContractStatusNew, ContractStatusInProgress, ContractStatusTerminated:
		return true
	}
	return false
}

// Active reports whether the contract status counts as active.
// Terminated contracts are excluded from all active-contract queries.
func (s ContractStatus) Active() bool {
	return s != ContractStatusTerminated
}

// Contract represents an agreement between a client and a contractor.
type Contract struct {
	ID           int64          `db:"id" json:"id"` // Primary key, BIGSERIAL in DB
	ClientID     int64          `db:"client_id" json:"client_id"`
	ContractorID int64          `db:"contractor_id" json:"contractor_id"`
	Terms        string         `db:"terms" json:"terms"`
	Status       ContractStatus `db:"status" json:"status"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// Involves reports whether the profile is a party to the contract.
func (c *Contract) Involves(profileID int64) bool {
	return c.ClientID == profileID || c.ContractorID == profileID
}
