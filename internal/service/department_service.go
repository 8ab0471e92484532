package service

import (
	"context"

	"github.com/stemsi/orgportal-backend/internal/model"
	"github.com/stemsi/orgportal-backend/internal/repository"
)

// DepartmentService handles department business logic.
type DepartmentService struct {
	departmentRepo *repository.DepartmentRepository
}

// NewDepartmentService creates a new DepartmentService.
func NewDepartmentService(departmentRepo *repository.DepartmentRepository) *DepartmentService {
	return &DepartmentService{departmentRepo: departmentRepo}
}

// GetByID retrieves a department by ID.
func (s *DepartmentService) GetByID(ctx context.Context, id int) (*model.Department, error) {
	return s.departmentRepo.GetByID(ctx, id)
}

// List retrieves all departments.
func (s *DepartmentService) List(ctx context.Context) ([]model.Department, error) {
	departments, err := s.departmentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if departments == nil {
		departments = []model.Department{}
	}
	return departments, nil
}

// Create creates a new department.
func (s *DepartmentService) Create(ctx context.Context, d *model.Department) error {
	return s.departmentRepo.Create(ctx, d)
}

// Update modifies an existing department.
func (s *DepartmentService) Update(ctx context.Context, d *model.Department) error {
	return s.departmentRepo.Update(ctx, d)
}

// Delete removes a department. Foreign key constraints prevent deletion
// while students or programs still reference it.
func (s *DepartmentService) Delete(ctx context.Context, id int) error {
	return s.departmentRepo.Delete(ctx, id)
}
