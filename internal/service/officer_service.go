package service

import (
	"context"

	"github.com/stemsi/orgportal-backend/internal/model"
	"github.com/stemsi/orgportal-backend/internal/repository"
)

// OfficerService handles officer business logic.
type OfficerService struct {
	officerRepo *repository.OfficerRepository
}

// NewOfficerService creates a new OfficerService.
func NewOfficerService(officerRepo *repository.OfficerRepository) *OfficerService {
	return &OfficerService{officerRepo: officerRepo}
}

// GetByUsername retrieves an officer by username.
func (s *OfficerService) GetByUsername(ctx context.Context, username string) (*model.Officer, error) {
	return s.officerRepo.GetByUsername(ctx, username)
}

// GetByID retrieves an officer by ID.
func (s *OfficerService) GetByID(ctx context.Context, id int) (*model.Officer, error) {
	return s.officerRepo.GetByID(ctx, id)
}

// List retrieves all officers.
func (s *OfficerService) List(ctx context.Context) ([]model.Officer, error) {
	officers, err := s.officerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if officers == nil {
		officers = []model.Officer{}
	}
	return officers, nil
}
