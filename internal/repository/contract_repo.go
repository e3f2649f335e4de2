// internal/repository/contract_repo.go
package repository

import (
	"context"

	"gigpay/internal/domain"
)

// ContractRepository defines the interface for contract data operations.
type ContractRepository interface {
	// CreateContract adds a new contract to the database using the provided DBExecutor.
	CreateContract(ctx context.Context, q DBExecutor, contract *domain.Contract) error
	// GetContractByID retrieves a contract by its ID using the provided DBExecutor.
	GetContractByID(ctx context.Context, q DBExecutor, id int64) (*domain.Contract, error)
	// ListContractsByProfile retrieves the non-terminated contracts where the
	// profile is a party, as client or contractor.
	ListContractsByProfile(ctx context.Context, q DBExecutor, profileID int64) ([]domain.Contract, error)
}
