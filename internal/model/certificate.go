package model

import "time"

// Certificate records a rendered participation certificate file.
type Certificate struct {
	ID        int       `json:"id"`
	ProgramID int       `json:"program_id"`
	StudentID int       `json:"student_id"`
	FileURL   string    `json:"file_url"`
	IssuedAt  time.Time `json:"issued_at"`
}
