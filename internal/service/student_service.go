package service

import (
	"context"

	"github.com/stemsi/orgportal-backend/internal/model"
	"github.com/stemsi/orgportal-backend/internal/repository"
	"github.com/stemsi/orgportal-backend/internal/response"
	"golang.org/x/crypto/bcrypt"
)

// StudentService handles student business logic.
type StudentService struct {
	studentRepo *repository.StudentRepository
}

// NewStudentService creates a new StudentService.
func NewStudentService(studentRepo *repository.StudentRepository) *StudentService {
	return &StudentService{studentRepo: studentRepo}
}

// GetByNIS retrieves a student by their NIS.
func (s *StudentService) GetByNIS(ctx context.Context, nis string) (*model.Student, error) {
	return s.studentRepo.GetByNIS(ctx, nis)
}

// GetByID retrieves a student by ID.
func (s *StudentService) GetByID(ctx context.Context, id int) (*model.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// ListAll retrieves every student. Used by the bootstrap load.
func (s *StudentService) ListAll(ctx context.Context) ([]model.Student, error) {
	students, err := s.studentRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []model.Student{}
	}
	return students, nil
}

// List retrieves students with pagination and optional department filter.
func (s *StudentService) List(ctx context.Context, departmentID *int, page, perPage int) ([]model.Student, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	limit := perPage
	offset := (page - 1) * perPage

	students, total, err := s.studentRepo.ListPaginated(ctx, departmentID, limit, offset)
	if err != nil {
		return nil, nil, err
	}

	if students == nil {
		students = []model.Student{}
	}

	totalPages := (total + perPage - 1) / perPage

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	}

	return students, pagination, nil
}

// Create inserts a new student with a hashed password.
func (s *StudentService) Create(ctx context.Context, student *model.Student, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	student.PasswordHash = string(hashed)
	return s.studentRepo.Create(ctx, student)
}

// Update modifies a student's details. Updates password if provided.
func (s *StudentService) Update(ctx context.Context, student *model.Student, password string) error {
	if err := s.studentRepo.Update(ctx, student); err != nil {
		return err
	}

	if password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		return s.studentRepo.UpdatePassword(ctx, student.ID, string(hashed))
	}

	return nil
}

// UpdatePhoto sets a student's profile photo URL.
func (s *StudentService) UpdatePhoto(ctx context.Context, id int, photoURL string) error {
	return s.studentRepo.UpdatePhoto(ctx, id, photoURL)
}

// Delete removes a student by ID.
func (s *StudentService) Delete(ctx context.Context, id int) error {
	return s.studentRepo.Delete(ctx, id)
}
