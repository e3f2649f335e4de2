// internal/repository/postgres/report_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"gigpay/internal/domain"
	"gigpay/internal/repository"
	"gigpay/internal/util"
)

// ReportRepository implements repository.ReportRepository for PostgreSQL.
type ReportRepository struct{}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(db *sqlx.DB) repository.ReportRepository {
	return &ReportRepository{}
}

// BestProfession returns the profession that earned the most over paid jobs
// within the date range.
func (r *ReportRepository) BestProfession(ctx context.Context, q repository.DBExecutor, start, end time.Time) (*domain.ProfessionEarnings, error) {
	var row domain.ProfessionEarnings
	query := `
		SELECT p.profession, SUM(j.price) AS earned
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		JOIN profiles p ON p.id = c.contractor_id
		WHERE j.paid = TRUE AND j.payment_date BETWEEN $1 AND $2
		GROUP BY p.profession
		ORDER BY earned DESC
		LIMIT 1`
	err := q.GetContext(ctx, &row, query, start, end)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query best profession: %w", err)
	}
	return &row, nil
}

// BestClients returns the clients that paid the most for jobs within the date
// range, limited to the given number of rows.
func (r *ReportRepository) BestClients(ctx context.Context, q repository.DBExecutor, start, end time.Time, limit int) ([]domain.ClientSpending, error) {
	clients := []domain.ClientSpending{}
	query := `
		SELECT p.id, p.first_name || ' ' || p.last_name AS full_name, SUM(j.price) AS paid
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		JOIN profiles p ON p.id = c.client_id
		WHERE j.paid = TRUE AND j.payment_date BETWEEN $1 AND $2
		GROUP BY p.id, full_name
		ORDER BY paid DESC
		LIMIT $3`
	if err := q.SelectContext(ctx, &clients, query, start, end, limit); err != nil {
		return nil, fmt.Errorf("failed to query best clients: %w", err)
	}
	return clients, nil
}
