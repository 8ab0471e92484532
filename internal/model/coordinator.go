package model

import "time"

// Coordinator represents a teacher supervising organization programs (pembina).
type Coordinator struct {
	ID           int       `json:"id"`
	NIP          string    `json:"nip"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PhotoURL     string    `json:"photo_url"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateCoordinatorRequest is the payload for creating a new coordinator.
type CreateCoordinatorRequest struct {
	NIP      string `json:"nip" binding:"required,min=4,max=30"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	PhotoURL string `json:"photo_url" binding:"omitempty,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// UpdateCoordinatorRequest is the payload for updating an existing coordinator.
type UpdateCoordinatorRequest struct {
	NIP      string `json:"nip" binding:"required,min=4,max=30"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	PhotoURL string `json:"photo_url" binding:"omitempty,max=255"`
	Password string `json:"password" binding:"omitempty,min=6,max=128"`
}
