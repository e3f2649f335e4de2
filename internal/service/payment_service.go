// internal/service/payment_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"gigpay/internal/domain"
	"gigpay/internal/repository"
	"gigpay/internal/util"
	"gigpay/pkg/db"
)

// depositCeilingDivisor bounds a single deposit to 25% of the client's total
// outstanding unpaid job value.
var depositCeilingDivisor = decimal.NewFromInt(4)

// PaymentService defines the interface for the payment and deposit engines.
type PaymentService interface {
	// PayJob moves the job price from the client balance to the contractor
	// balance and marks the job paid, as one atomic unit.
	PayJob(ctx context.Context, actor *domain.Profile, jobID int64) (*domain.Job, error)
	// Deposit adds money to the client's own balance, bounded by 25% of the
	// total unpaid job value on their active contracts.
	Deposit(ctx context.Context, actor *domain.Profile, targetProfileID int64, amount decimal.Decimal) (*domain.Profile, error)
}

// paymentService implements the PaymentService interface.
type paymentService struct {
	dbBeginner  db.DBTxBeginner       // For starting transactions (e.g., *sqlx.DB)
	dbExecutor  repository.DBExecutor // For non-transactional reads (e.g., *sqlx.DB)
	profileRepo repository.ProfileRepository
	jobRepo     repository.JobRepository
	beginTx     db.BeginTxFunc
	commitTx    db.CommitTxFunc
	rollbackTx  db.RollbackTxFunc
}

// NewPaymentService creates a new instance of PaymentService.
func NewPaymentService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	profileRepo repository.ProfileRepository,
	jobRepo repository.JobRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) PaymentService {
	return &paymentService{
		dbBeginner:  dbBeginner,
		dbExecutor:  dbExecutor,
		profileRepo: profileRepo,
		jobRepo:     jobRepo,
		beginTx:     beginTx,
		commitTx:    commitTx,
		rollbackTx:  rollbackTx,
	}
}

// PayJob validates and executes a single job payment. Precondition checks run
// against the same locked rows the writes commit, so a concurrent payment on
// the same job either waits on the job row lock or observes paid = TRUE.
func (s *paymentService) PayJob(ctx context.Context, actor *domain.Profile, jobID int64) (*domain.Job, error) {
	if actor.Role != domain.RoleClient {
		return nil, util.ErrForbiddenRole
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("pay job: failed to begin transaction: %w: %v", util.ErrTransactionFailed, err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("pay job: transaction controller does not implement DBExecutor")
	}

	job, contract, err := s.jobRepo.GetJobWithContractForUpdate(ctx, txExecutor, jobID)
	if err != nil {
		// A missing job has no owning client, so it folds into the ownership check.
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrNotOwner
		}
		return nil, fmt.Errorf("pay job: failed to load job %d: %w", jobID, err)
	}
	if contract.ClientID != actor.ID {
		return nil, util.ErrNotOwner
	}
	if job.Paid {
		return nil, util.ErrAlreadyPaid
	}

	// Reload the client balance under a row lock; the actor snapshot may be stale.
	client, err := s.profileRepo.GetProfileByIDForUpdate(ctx, txExecutor, contract.ClientID)
	if err != nil {
		return nil, fmt.Errorf("pay job: failed to load client %d: %w", contract.ClientID, err)
	}
	if client.Balance.LessThan(job.Price) {
		return nil, util.ErrInsufficientFunds
	}

	if err := s.profileRepo.AdjustProfileBalance(ctx, txExecutor, contract.ClientID, job.Price.Neg()); err != nil {
		return nil, fmt.Errorf("pay job: failed to debit client %d: %w: %v", contract.ClientID, util.ErrTransactionFailed, err)
	}
	if err := s.profileRepo.AdjustProfileBalance(ctx, txExecutor, contract.ContractorID, job.Price); err != nil {
		return nil, fmt.Errorf("pay job: failed to credit contractor %d: %w: %v", contract.ContractorID, util.ErrTransactionFailed, err)
	}

	paidAt := time.Now().UTC()
	if err := s.jobRepo.MarkJobPaid(ctx, txExecutor, jobID, paidAt); err != nil {
		if util.IsError(err, util.ErrAlreadyPaid) {
			return nil, util.ErrAlreadyPaid
		}
		return nil, fmt.Errorf("pay job: failed to mark job %d paid: %w: %v", jobID, util.ErrTransactionFailed, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("pay job: failed to commit transaction: %w: %v", util.ErrTransactionFailed, err)
	}

	job.Paid = true
	job.PaymentDate = &paidAt
	return job, nil
}

// Deposit validates and executes a client self-deposit. The ceiling is
// computed inside the same transaction that credits the balance, so a racing
// payment cannot shift it between check and write.
func (s *paymentService) Deposit(ctx context.Context, actor *domain.Profile, targetProfileID int64, amount decimal.Decimal) (*domain.Profile, error) {
	if actor.Role != domain.RoleClient {
		return nil, util.ErrForbiddenRole
	}
	if actor.ID != targetProfileID {
		return nil, util.ErrForbiddenTarget
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidInput
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("deposit: failed to begin transaction: %w: %v", util.ErrTransactionFailed, err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("deposit: transaction controller does not implement DBExecutor")
	}

	if _, err := s.profileRepo.GetProfileByIDForUpdate(ctx, txExecutor, targetProfileID); err != nil {
		return nil, fmt.Errorf("deposit: failed to load profile %d: %w", targetProfileID, err)
	}

	// Unpaid jobs on active contracts on either side of the actor feed the
	// ceiling.
	totalUnpaid, err := s.jobRepo.SumUnpaidJobs(ctx, txExecutor, targetProfileID)
	if err != nil {
		return nil, fmt.Errorf("deposit: failed to sum unpaid jobs for profile %d: %w", targetProfileID, err)
	}
	maxDeposit := totalUnpaid.Div(depositCeilingDivisor).Round(2)
	if amount.GreaterThan(maxDeposit) {
		return nil, &util.DepositLimitError{MaxDeposit: maxDeposit}
	}

	if err := s.profileRepo.AdjustProfileBalance(ctx, txExecutor, targetProfileID, amount); err != nil {
		return nil, fmt.Errorf("deposit: failed to credit profile %d: %w: %v", targetProfileID, util.ErrTransactionFailed, err)
	}

	updatedProfile, err := s.profileRepo.GetProfileByID(ctx, txExecutor, targetProfileID)
	if err != nil {
		return nil, fmt.Errorf("deposit: failed to re-fetch profile %d: %w", targetProfileID, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("deposit: failed to commit transaction: %w: %v", util.ErrTransactionFailed, err)
	}

	return updatedProfile, nil
}
