package service

import (
	"context"

	"github.com/stemsi/orgportal-backend/internal/model"
	"golang.org/x/sync/errgroup"
)

// BootstrapData is the full initial payload the client renders from.
type BootstrapData struct {
	Programs     []model.Program     `json:"programs"`
	Students     []model.Student     `json:"students"`
	Coordinators []model.Coordinator `json:"coordinators"`
	Departments  []model.Department  `json:"departments"`
}

type programLister interface {
	ListAll(ctx context.Context) ([]model.Program, error)
}

type studentLister interface {
	ListAll(ctx context.Context) ([]model.Student, error)
}

type coordinatorLister interface {
	List(ctx context.Context) ([]model.Coordinator, error)
}

type departmentLister interface {
	List(ctx context.Context) ([]model.Department, error)
}

// BootstrapService assembles the initial data load. The four fetches run
// concurrently and the load is all-or-nothing: one failure fails the whole
// response, never a partially populated payload.
type BootstrapService struct {
	programs     programLister
	students     studentLister
	coordinators coordinatorLister
	departments  departmentLister
}

// NewBootstrapService creates a new BootstrapService.
func NewBootstrapService(
	programs programLister,
	students studentLister,
	coordinators coordinatorLister,
	departments departmentLister,
) *BootstrapService {
	return &BootstrapService{
		programs:     programs,
		students:     students,
		coordinators: coordinators,
		departments:  departments,
	}
}

// Load fans out the four fetches and waits for all of them.
func (s *BootstrapService) Load(ctx context.Context) (*BootstrapData, error) {
	g, ctx := errgroup.WithContext(ctx)
	data := &BootstrapData{}

	g.Go(func() error {
		programs, err := s.programs.ListAll(ctx)
		if err != nil {
			return err
		}
		data.Programs = programs
		return nil
	})
	g.Go(func() error {
		students, err := s.students.ListAll(ctx)
		if err != nil {
			return err
		}
		data.Students = students
		return nil
	})
	g.Go(func() error {
		coordinators, err := s.coordinators.List(ctx)
		if err != nil {
			return err
		}
		data.Coordinators = coordinators
		return nil
	})
	g.Go(func() error {
		departments, err := s.departments.List(ctx)
		if err != nil {
			return err
		}
		data.Departments = departments
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}
