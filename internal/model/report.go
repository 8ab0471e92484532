package model

import "time"

// Report is a per-student activity report attached to a program.
type Report struct {
	ID        int       `json:"id"`
	StudentID int       `json:"student_id"`
	ProgramID int       `json:"program_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Score     *int      `json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReportRequest is the payload for creating or updating a report.
type ReportRequest struct {
	StudentID int    `json:"student_id" binding:"required"`
	ProgramID int    `json:"program_id" binding:"required"`
	Title     string `json:"title" binding:"required,min=3,max=200"`
	Content   string `json:"content" binding:"required,max=5000"`
	Score     *int   `json:"score" binding:"omitempty,min=0,max=100"`
}
