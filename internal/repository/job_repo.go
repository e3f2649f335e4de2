// internal/repository/job_repo.go
package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"gigpay/internal/domain"
)

// JobRepository defines the interface for job data operations.
type JobRepository interface {
	// CreateJob adds a new job to the database using the provided DBExecutor.
	CreateJob(ctx context.Context, q DBExecutor, job *domain.Job) error
	// GetJobWithContract retrieves a job together with its owning contract.
	GetJobWithContract(ctx context.Context, q DBExecutor, jobID int64) (*domain.Job, *domain.Contract, error)
	// GetJobWithContractForUpdate does the same but locks the job row for the
	// duration of the enclosing transaction, serializing concurrent payments
	// on the same job.
	GetJobWithContractForUpdate(ctx context.Context, q DBExecutor, jobID int64) (*domain.Job, *domain.Contract, error)
	// MarkJobPaid flips paid to true and records the payment date. The update
	// is guarded by paid = FALSE; if another transaction already paid the job,
	// util.ErrAlreadyPaid is returned.
	MarkJobPaid(ctx context.Context, q DBExecutor, jobID int64, paidAt time.Time) error
	// SumUnpaidJobs returns the total price of unpaid jobs on non-terminated
	// contracts where the profile is a party, as client or contractor.
	SumUnpaidJobs(ctx context.Context, q DBExecutor, profileID int64) (decimal.Decimal, error)
	// ListUnpaidJobs retrieves the unpaid jobs on non-terminated contracts
	// where the profile is a party.
	ListUnpaidJobs(ctx context.Context, q DBExecutor, profileID int64) ([]domain.Job, error)
}
