package service

import (
	"context"

	"github.com/stemsi/orgportal-backend/internal/model"
	"github.com/stemsi/orgportal-backend/internal/repository"
)

// ReportService handles per-student activity report business logic.
type ReportService struct {
	reportRepo *repository.ReportRepository
}

// NewReportService creates a new ReportService.
func NewReportService(reportRepo *repository.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// GetByID retrieves a report by ID.
func (s *ReportService) GetByID(ctx context.Context, id int) (*model.Report, error) {
	return s.reportRepo.GetByID(ctx, id)
}

// List retrieves reports with optional student and program filters.
func (s *ReportService) List(ctx context.Context, studentID, programID *int) ([]model.Report, error) {
	reports, err := s.reportRepo.List(ctx, studentID, programID)
	if err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []model.Report{}
	}
	return reports, nil
}

// Create creates a new report.
func (s *ReportService) Create(ctx context.Context, rep *model.Report) error {
	return s.reportRepo.Create(ctx, rep)
}

// Update modifies an existing report.
func (s *ReportService) Update(ctx context.Context, rep *model.Report) error {
	return s.reportRepo.Update(ctx, rep)
}

// Delete removes a report by ID.
func (s *ReportService) Delete(ctx context.Context, id int) error {
	return s.reportRepo.Delete(ctx, id)
}
