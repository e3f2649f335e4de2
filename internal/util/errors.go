// internal/util/errors.go
package util

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Common application-specific errors.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input provided")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrForbiddenRole     = errors.New("operation not permitted for this profile role")
	ErrNotOwner          = errors.New("resource does not belong to this profile")
	ErrAlreadyPaid       = errors.New("job is already paid")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrForbiddenTarget   = errors.New("deposits are restricted to the caller's own balance")
	ErrTransactionFailed = errors.New("transaction failed")
)

// DepositLimitError is returned when a deposit exceeds the allowed ceiling.
// MaxDeposit is the largest amount the caller could have deposited instead.
type DepositLimitError struct {
	MaxDeposit decimal.Decimal
}

func (e *DepositLimitError) Error() string {
	return fmt.Sprintf("deposit exceeds the allowed limit, maximum is %s", e.MaxDeposit.StringFixed(2))
}

// IsError reports whether err matches the target sentinel error.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
