// internal/service/report_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"gigpay/internal/domain"
	"gigpay/internal/repository"
)

// ReportService defines the interface for the analytic reporting queries.
type ReportService interface {
	// BestProfession returns the profession that earned the most within the range.
	BestProfession(ctx context.Context, start, end time.Time) (*domain.ProfessionEarnings, error)
	// BestClients returns the top paying clients within the range.
	BestClients(ctx context.Context, start, end time.Time, limit int) ([]domain.ClientSpending, error)
}

// reportService implements the ReportService interface.
type reportService struct {
	dbExecutor repository.DBExecutor
	reportRepo repository.ReportRepository
}

// NewReportService creates a new instance of ReportService.
func NewReportService(dbExecutor repository.DBExecutor, reportRepo repository.ReportRepository) ReportService {
	return &reportService{
		dbExecutor: dbExecutor,
		reportRepo: reportRepo,
	}
}

func (s *reportService) BestProfession(ctx context.Context, start, end time.Time) (*domain.ProfessionEarnings, error) {
	row, err := s.reportRepo.BestProfession(ctx, s.dbExecutor, start, end)
	if err != nil {
		return nil, fmt.Errorf("best profession: %w", err)
	}
	return row, nil
}

func (s *reportService) BestClients(ctx context.Context, start, end time.Time, limit int) ([]domain.ClientSpending, error) {
	if limit <= 0 {
		limit = 2
	}
	clients, err := s.reportRepo.BestClients(ctx, s.dbExecutor, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("best clients: %w", err)
	}
	return clients, nil
}
