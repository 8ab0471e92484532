package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stemsi/orgportal-backend/internal/model"
)

type stubListers struct {
	programs        []model.Program
	programsErr     error
	students        []model.Student
	studentsErr     error
	coordinators    []model.Coordinator
	coordinatorsErr error
	departments     []model.Department
	departmentsErr  error
}

func (s *stubListers) ListAll(context.Context) ([]model.Program, error) {
	return s.programs, s.programsErr
}

type studentStub struct{ *stubListers }

func (s studentStub) ListAll(context.Context) ([]model.Student, error) {
	return s.students, s.studentsErr
}

func (s *stubListers) List(context.Context) ([]model.Coordinator, error) {
	return s.coordinators, s.coordinatorsErr
}

type departmentStub struct{ *stubListers }

func (s departmentStub) List(context.Context) ([]model.Department, error) {
	return s.departments, s.departmentsErr
}

func newStubBootstrap(stub *stubListers) *BootstrapService {
	return NewBootstrapService(stub, studentStub{stub}, stub, departmentStub{stub})
}

func TestBootstrapLoadsAllFour(t *testing.T) {
	stub := &stubListers{
		programs:     []model.Program{{ID: 1, Title: "LDKS"}},
		students:     []model.Student{{ID: 2, Name: "Budi"}},
		coordinators: []model.Coordinator{{ID: 3, Name: "Pak Agus"}},
		departments:  []model.Department{{ID: 4, Name: "Humas"}},
	}

	data, err := newStubBootstrap(stub).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(data.Programs) != 1 || len(data.Students) != 1 || len(data.Coordinators) != 1 || len(data.Departments) != 1 {
		t.Errorf("incomplete payload: %+v", data)
	}
}

func TestBootstrapFailsWholeLoadOnSingleError(t *testing.T) {
	boom := errors.New("programs table unreachable")
	stub := &stubListers{
		programsErr:  boom,
		students:     []model.Student{{ID: 2, Name: "Budi"}},
		coordinators: []model.Coordinator{{ID: 3, Name: "Pak Agus"}},
		departments:  []model.Department{{ID: 4, Name: "Humas"}},
	}

	data, err := newStubBootstrap(stub).Load(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Load err = %v, want %v", err, boom)
	}
	if data != nil {
		t.Errorf("Load returned partial payload %+v, want nil", data)
	}
}
