// internal/service/contract_service.go
package service

import (
	"context"
	"fmt"

	"gigpay/internal/domain"
	"gigpay/internal/repository"
	"gigpay/internal/util"
)

// ContractService defines the interface for read-only contract and job queries.
type ContractService interface {
	// GetContract returns the contract by ID if the actor is a party to it.
	GetContract(ctx context.Context, actor *domain.Profile, contractID int64) (*domain.Contract, error)
	// ListContracts returns the actor's non-terminated contracts.
	ListContracts(ctx context.Context, actor *domain.Profile) ([]domain.Contract, error)
	// ListUnpaidJobs returns the actor's unpaid jobs on non-terminated contracts.
	ListUnpaidJobs(ctx context.Context, actor *domain.Profile) ([]domain.Job, error)
}

// contractService implements the ContractService interface.
type contractService struct {
	dbExecutor   repository.DBExecutor
	contractRepo repository.ContractRepository
	jobRepo      repository.JobRepository
}

// NewContractService creates a new instance of ContractService.
func NewContractService(
	dbExecutor repository.DBExecutor,
	contractRepo repository.ContractRepository,
	jobRepo repository.JobRepository,
) ContractService {
	return &contractService{
		dbExecutor:   dbExecutor,
		contractRepo: contractRepo,
		jobRepo:      jobRepo,
	}
}

func (s *contractService) GetContract(ctx context.Context, actor *domain.Profile, contractID int64) (*domain.Contract, error) {
	contract, err := s.contractRepo.GetContractByID(ctx, s.dbExecutor, contractID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("get contract: failed to get contract %d: %w", contractID, err)
	}
	if !contract.Involves(actor.ID) {
		return nil, util.ErrNotOwner
	}
	return contract, nil
}

func (s *contractService) ListContracts(ctx context.Context, actor *domain.Profile) ([]domain.Contract, error) {
	contracts, err := s.contractRepo.ListContractsByProfile(ctx, s.dbExecutor, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	return contracts, nil
}

func (s *contractService) ListUnpaidJobs(ctx context.Context, actor *domain.Profile) ([]domain.Job, error) {
	jobs, err := s.jobRepo.ListUnpaidJobs(ctx, s.dbExecutor, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list unpaid jobs: %w", err)
	}
	return jobs, nil
}
