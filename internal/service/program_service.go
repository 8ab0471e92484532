package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/orgportal-backend/internal/config"
	"github.com/stemsi/orgportal-backend/internal/model"
	"github.com/stemsi/orgportal-backend/internal/repository"
)

// ErrProgramClosed is returned for participant edits on a closed program.
var ErrProgramClosed = errors.New("program is closed")

// CheckInEvent is published on the program's attendance channel whenever a
// participant is marked present.
type CheckInEvent struct {
	ProgramID   int       `json:"program_id"`
	StudentID   int       `json:"student_id"`
	StudentName string    `json:"student_name"`
	CheckedInAt time.Time `json:"checked_in_at"`
}

// ProgramService handles program, participant, and attendance business logic.
type ProgramService struct {
	programRepo *repository.ProgramRepository
	studentRepo *repository.StudentRepository
	rdb         *redis.Client
	log         zerolog.Logger
}

// NewProgramService creates a new ProgramService.
func NewProgramService(
	programRepo *repository.ProgramRepository,
	studentRepo *repository.StudentRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *ProgramService {
	return &ProgramService{
		programRepo: programRepo,
		studentRepo: studentRepo,
		rdb:         rdb,
		log:         log.With().Str("component", "program_service").Logger(),
	}
}

// GetByID retrieves a program by ID.
func (s *ProgramService) GetByID(ctx context.Context, id int) (*model.Program, error) {
	return s.programRepo.GetByID(ctx, id)
}

// ListAll retrieves every program.
func (s *ProgramService) ListAll(ctx context.Context) ([]model.Program, error) {
	programs, err := s.programRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if programs == nil {
		programs = []model.Program{}
	}
	return programs, nil
}

// Create creates a new program.
func (s *ProgramService) Create(ctx context.Context, p *model.Program) error {
	return s.programRepo.Create(ctx, p)
}

// Update modifies an existing program.
func (s *ProgramService) Update(ctx context.Context, p *model.Program) error {
	return s.programRepo.Update(ctx, p)
}

// Delete removes a program and its participants/gallery (cascade).
func (s *ProgramService) Delete(ctx context.Context, id int) error {
	return s.programRepo.Delete(ctx, id)
}

// AddGalleryURLs appends uploaded image URLs to a program's gallery.
func (s *ProgramService) AddGalleryURLs(ctx context.Context, programID int, urls []string) error {
	return s.programRepo.AddGalleryURLs(ctx, programID, urls)
}

// ListParticipants retrieves a program's participants.
func (s *ProgramService) ListParticipants(ctx context.Context, programID int) ([]model.Participant, error) {
	participants, err := s.programRepo.ListParticipants(ctx, programID)
	if err != nil {
		return nil, err
	}
	if participants == nil {
		participants = []model.Participant{}
	}
	return participants, nil
}

// AddParticipant enrolls a student in a program. The write is confirmed by
// the repository before any state is reported back; callers re-read the
// participant list from the response, never from a local optimistic copy.
func (s *ProgramService) AddParticipant(ctx context.Context, programID, studentID int) ([]model.Participant, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		return nil, err
	}
	if program.Status == model.ProgramClosed {
		return nil, ErrProgramClosed
	}

	if err := s.programRepo.AddParticipant(ctx, programID, studentID); err != nil {
		return nil, err
	}
	return s.ListParticipants(ctx, programID)
}

// RemoveParticipant removes a student from a program and returns the
// confirmed participant list.
func (s *ProgramService) RemoveParticipant(ctx context.Context, programID, studentID int) ([]model.Participant, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		return nil, err
	}
	if program.Status == model.ProgramClosed {
		return nil, ErrProgramClosed
	}

	if err := s.programRepo.RemoveParticipant(ctx, programID, studentID); err != nil {
		return nil, err
	}
	return s.ListParticipants(ctx, programID)
}

// CheckIn marks a participant as present and publishes the event on the
// program's attendance channel for live monitors.
func (s *ProgramService) CheckIn(ctx context.Context, programID, studentID int) (*CheckInEvent, error) {
	now := time.Now()

	if err := s.programRepo.MarkAttendance(ctx, programID, studentID, now); err != nil {
		return nil, err
	}

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("load student: %w", err)
	}

	event := &CheckInEvent{
		ProgramID:   programID,
		StudentID:   studentID,
		StudentName: student.Name,
		CheckedInAt: now,
	}

	raw, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal check-in event: %w", err)
	}

	channel := config.CacheKey.ProgramAttendanceChannel(programID)
	if err := s.rdb.Publish(ctx, channel, raw).Err(); err != nil {
		// The check-in is already persisted; the live stream is best effort.
		s.log.Warn().Err(err).Int("program_id", programID).Msg("publish check-in event failed")
	}

	return event, nil
}
