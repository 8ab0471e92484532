package service

import (
	"context"

	"github.com/stemsi/orgportal-backend/internal/model"
	"github.com/stemsi/orgportal-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// CoordinatorService handles coordinator business logic.
type CoordinatorService struct {
	coordinatorRepo *repository.CoordinatorRepository
}

// NewCoordinatorService creates a new CoordinatorService.
func NewCoordinatorService(coordinatorRepo *repository.CoordinatorRepository) *CoordinatorService {
	return &CoordinatorService{coordinatorRepo: coordinatorRepo}
}

// GetByEmail retrieves a coordinator by email.
func (s *CoordinatorService) GetByEmail(ctx context.Context, email string) (*model.Coordinator, error) {
	return s.coordinatorRepo.GetByEmail(ctx, email)
}

// GetByID retrieves a coordinator by ID.
func (s *CoordinatorService) GetByID(ctx context.Context, id int) (*model.Coordinator, error) {
	return s.coordinatorRepo.GetByID(ctx, id)
}

// List retrieves all coordinators.
func (s *CoordinatorService) List(ctx context.Context) ([]model.Coordinator, error) {
	coordinators, err := s.coordinatorRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if coordinators == nil {
		coordinators = []model.Coordinator{}
	}
	return coordinators, nil
}

// Create inserts a new coordinator with a hashed password.
func (s *CoordinatorService) Create(ctx context.Context, co *model.Coordinator, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	co.PasswordHash = string(hashed)
	return s.coordinatorRepo.Create(ctx, co)
}

// Update modifies a coordinator's details. Updates password if provided.
func (s *CoordinatorService) Update(ctx context.Context, co *model.Coordinator, password string) error {
	if err := s.coordinatorRepo.Update(ctx, co); err != nil {
		return err
	}

	if password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		return s.coordinatorRepo.UpdatePassword(ctx, co.ID, string(hashed))
	}

	return nil
}

// Delete removes a coordinator by ID.
func (s *CoordinatorService) Delete(ctx context.Context, id int) error {
	return s.coordinatorRepo.Delete(ctx, id)
}
