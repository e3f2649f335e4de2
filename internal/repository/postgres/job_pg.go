// internal/repository/postgres/job_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"gigpay/internal/domain"
	"gigpay/internal/repository"
	"gigpay/internal/util"
)

// JobRepository implements repository.JobRepository for PostgreSQL.
type JobRepository struct{}

// NewJobRepository creates a new JobRepository.
func NewJobRepository(db *sqlx.DB) repository.JobRepository {
	return &JobRepository{}
}

// CreateJob inserts a new job into the database using the provided DBExecutor.
func (r *JobRepository) CreateJob(ctx context.Context, q repository.DBExecutor, job *domain.Job) error {
	query := `INSERT INTO jobs (contract_id, description, price, paid, payment_date, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		job.ContractID,
		job.Description,
		job.Price,
		job.Paid,
		job.PaymentDate,
		job.CreatedAt,
		job.UpdatedAt,
	).Scan(&job.ID)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

const jobWithContractQuery = `
	SELECT j.id, j.contract_id, j.description, j.price, j.paid, j.payment_date, j.created_at, j.updated_at,
	       c.id, c.client_id, c.contractor_id, c.terms, c.status, c.created_at, c.updated_at
	FROM jobs j
	JOIN contracts c ON c.id = j.contract_id
	WHERE j.id = $1`

// GetJobWithContract retrieves a job together with its owning contract.
func (r *JobRepository) GetJobWithContract(ctx context.Context, q repository.DBExecutor, jobID int64) (*domain.Job, *domain.Contract, error) {
	return r.scanJobWithContract(q.QueryRowContext(ctx, jobWithContractQuery, jobID), jobID)
}

// GetJobWithContractForUpdate retrieves a job with its contract and locks the
// job row until the enclosing transaction ends. Concurrent payments on the
// same job serialize on this lock.
func (r *JobRepository) GetJobWithContractForUpdate(ctx context.Context, q repository.DBExecutor, jobID int64) (*domain.Job, *domain.Contract, error) {
	return r.scanJobWithContract(q.QueryRowContext(ctx, jobWithContractQuery+` FOR UPDATE OF j`, jobID), jobID)
}

func (r *JobRepository) scanJobWithContract(row *sql.Row, jobID int64) (*domain.Job, *domain.Contract, error) {
	var (
		job         domain.Job
		contract    domain.Contract
		paymentDate sql.NullTime
	)
	err := row.Scan(
		&job.ID, &job.ContractID, &job.Description, &job.Price, &job.Paid, &paymentDate, &job.CreatedAt, &job.UpdatedAt,
		&contract.ID, &contract.ClientID, &contract.ContractorID, &contract.Terms, &contract.Status, &contract.CreatedAt, &contract.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, util.ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to get job %d with contract: %w", jobID, err)
	}
	if paymentDate.Valid {
		t := paymentDate.Time
		job.PaymentDate = &t
	}
	return &job, &contract, nil
}

// MarkJobPaid flips the paid flag and records the payment date in one guarded
// statement. The paid = FALSE condition makes the transition a compare-and-set:
// a concurrent payment that already committed leaves zero rows to update.
func (r *JobRepository) MarkJobPaid(ctx context.Context, q repository.DBExecutor, jobID int64, paidAt time.Time) error {
	query := `UPDATE jobs SET paid = TRUE, payment_date = $1, updated_at = $1 WHERE id = $2 AND paid = FALSE`
	result, err := q.ExecContext(ctx, query, paidAt, jobID)
	if err != nil {
		return fmt.Errorf("failed to mark job %d paid: %w", jobID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after marking job %d paid: %w", jobID, err)
	}
	if rowsAffected == 0 {
		return util.ErrAlreadyPaid
	}
	return nil
}

// SumUnpaidJobs returns the total price of unpaid jobs on non-terminated
// contracts where the profile is a party, as client or contractor.
func (r *JobRepository) SumUnpaidJobs(ctx context.Context, q repository.DBExecutor, profileID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `
		SELECT COALESCE(SUM(j.price), 0)
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		WHERE j.paid = FALSE
		  AND c.status <> 'terminated'
		  AND (c.client_id = $1 OR c.contractor_id = $1)`
	if err := q.GetContext(ctx, &total, query, profileID); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum unpaid jobs for profile %d: %w", profileID, err)
	}
	return total, nil
}

// ListUnpaidJobs retrieves the unpaid jobs on non-terminated contracts where
// the profile is a party.
func (r *JobRepository) ListUnpaidJobs(ctx context.Context, q repository.DBExecutor, profileID int64) ([]domain.Job, error) {
	jobs := []domain.Job{}
	query := `
		SELECT j.id, j.contract_id, j.description, j.price, j.paid, j.payment_date, j.created_at, j.updated_at
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		WHERE j.paid = FALSE
		  AND c.status <> 'terminated'
		  AND (c.client_id = $1 OR c.contractor_id = $1)
		ORDER BY j.id`
	if err := q.SelectContext(ctx, &jobs, query, profileID); err != nil {
		return nil, fmt.Errorf("failed to list unpaid jobs for profile %d: %w", profileID, err)
	}
	return jobs, nil
}
