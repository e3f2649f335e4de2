// internal/domain/job.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// Job represents a unit of billable work under a contract.
// Paid transitions false -> true exactly once; PaymentDate is set atomically
// with that transition.
type Job struct {
	ID          int64           `db:"id" json:"id"` // Primary key, BIGSERIAL in DB
	ContractID  int64           `db:"contract_id" json:"contract_id"`
	Description string          `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"` // NUMERIC(20, 2) in DB, >= 0
	Paid        bool            `db:"paid" json:"paid"`
	PaymentDate *time.Time      `db:"payment_date" json:"payment_date"` // Nullable until paid
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}
