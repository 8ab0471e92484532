package model

import "time"

// ProgramStatus represents the lifecycle state of a program.
type ProgramStatus string

const (
	ProgramDraft  ProgramStatus = "draft"
	ProgramOpen   ProgramStatus = "open"
	ProgramClosed ProgramStatus = "closed"
)

// Program represents an organization activity (kegiatan).
type Program struct {
	ID            int           `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Location      string        `json:"location"`
	StartsAt      time.Time     `json:"starts_at"`
	EndsAt        time.Time     `json:"ends_at"`
	Status        ProgramStatus `json:"status"`
	CoordinatorID *int          `json:"coordinator_id"`
	DepartmentID  *int          `json:"department_id"`
	Gallery       []string      `json:"gallery"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Participant is a student enrolled in a program, with attendance state.
type Participant struct {
	ProgramID   int        `json:"program_id"`
	StudentID   int        `json:"student_id"`
	StudentNIS  string     `json:"student_nis"`
	StudentName string     `json:"student_name"`
	Attended    bool       `json:"attended"`
	CheckedInAt *time.Time `json:"checked_in_at"`
}

// ProgramRequest is the payload for creating or updating a program.
type ProgramRequest struct {
	Title         string        `json:"title" binding:"required,min=3,max=200"`
	Description   string        `json:"description" binding:"max=2000"`
	Location      string        `json:"location" binding:"max=200"`
	StartsAt      time.Time     `json:"starts_at" binding:"required"`
	EndsAt        time.Time     `json:"ends_at" binding:"required,gtfield=StartsAt"`
	Status        ProgramStatus `json:"status" binding:"required,oneof=draft open closed"`
	CoordinatorID *int          `json:"coordinator_id"`
	DepartmentID  *int          `json:"department_id"`
}

// AddParticipantRequest is the payload for enrolling a student in a program.
type AddParticipantRequest struct {
	StudentID int `json:"student_id" binding:"required"`
}
