// internal/repository/report_repo.go
package repository

import (
	"context"
	"time"

	"gigpay/internal/domain"
)

// ReportRepository defines the interface for the analytic reporting queries.
// These are raw aggregates; result rows are surfaced without validation.
type ReportRepository interface {
	// BestProfession returns the profession that earned the most over paid
	// jobs within the date range.
	BestProfession(ctx context.Context, q DBExecutor, start, end time.Time) (*domain.ProfessionEarnings, error)
	// BestClients returns the clients that paid the most for jobs within the
	// date range, limited to the given number of rows.
	BestClients(ctx context.Context, q DBExecutor, start, end time.Time, limit int) ([]domain.ClientSpending, error)
}
