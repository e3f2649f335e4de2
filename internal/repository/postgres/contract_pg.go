// internal/repository/postgres/contract_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gigpay/internal/domain"
	"gigpay/internal/repository"
	"gigpay/internal/util"
)

// ContractRepository implements repository.ContractRepository for PostgreSQL.
type ContractRepository struct{}

// NewContractRepository creates a new ContractRepository.
func NewContractRepository(db *sqlx.DB) repository.ContractRepository {
	return &ContractRepository{}
}

// CreateContract inserts a new contract into the database using the provided DBExecutor.
func (r *ContractRepository) CreateContract(ctx context.Context, q repository.DBExecutor, contract *domain.Contract) error {
	query := `INSERT INTO contracts (client_id, contractor_id, terms, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		contract.ClientID,
		contract.ContractorID,
		contract.Terms,
		contract.Status,
		contract.CreatedAt,
		contract.UpdatedAt,
	).Scan(&contract.ID)
	if err != nil {
		return fmt.Errorf("failed to create contract: %w", err)
	}
	return nil
}

// GetContractByID retrieves a contract by its ID using the provided DBExecutor.
func (r *ContractRepository) GetContractByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Contract, error) {
	var contract domain.Contract
	query := `SELECT id, client_id, contractor_id, terms, status, created_at, updated_at
	          FROM contracts WHERE id = $1`
	err := q.GetContext(ctx, &contract, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contract by ID %d: %w", id, err)
	}
	return &contract, nil
}

// ListContractsByProfile retrieves the non-terminated contracts where the
// profile is a party, as client or contractor.
func (r *ContractRepository) ListContractsByProfile(ctx context.Context, q repository.DBExecutor, profileID int64) ([]domain.Contract, error) {
	contracts := []domain.Contract{}
	query := `
		SELECT id, client_id, contractor_id, terms, status, created_at, updated_at
		FROM contracts
		WHERE (client_id = $1 OR contractor_id = $1) AND status <> 'terminated'
		ORDER BY id`
	if err := q.SelectContext(ctx, &contracts, query, profileID); err != nil {
		return nil, fmt.Errorf("failed to list contracts for profile %d: %w", profileID, err)
	}
	return contracts, nil
}
