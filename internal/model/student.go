package model

import "time"

// Student represents a student member of the organization.
type Student struct {
	ID           int       `json:"id"`
	NIS          string    `json:"nis"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	DepartmentID *int      `json:"department_id"`
	PhotoURL     string    `json:"photo_url"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateStudentRequest is the payload for creating a new student account.
type CreateStudentRequest struct {
	NIS          string `json:"nis" binding:"required,min=4,max=20"`
	Name         string `json:"name" binding:"required,min=2,max=100"`
	Email        string `json:"email" binding:"required,email,max=255"`
	DepartmentID *int   `json:"department_id"`
	PhotoURL     string `json:"photo_url" binding:"omitempty,max=255"`
	Password     string `json:"password" binding:"required,min=6,max=128"`
}

// UpdateStudentRequest is the payload for updating an existing student.
// Password is optional; empty means unchanged.
type UpdateStudentRequest struct {
	NIS          string `json:"nis" binding:"required,min=4,max=20"`
	Name         string `json:"name" binding:"required,min=2,max=100"`
	Email        string `json:"email" binding:"required,email,max=255"`
	DepartmentID *int   `json:"department_id"`
	PhotoURL     string `json:"photo_url" binding:"omitempty,max=255"`
	Password     string `json:"password" binding:"omitempty,min=6,max=128"`
}
