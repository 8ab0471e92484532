package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/orgportal-backend/internal/model"
)

var (
	ErrAlreadyParticipant = errors.New("student is already a participant of this program")
	ErrNotParticipant     = errors.New("student is not a participant of this program")
)

// ProgramRepository handles program, gallery, and participant data access.
type ProgramRepository struct {
	pool *pgxpool.Pool
}

// NewProgramRepository creates a new ProgramRepository.
func NewProgramRepository(pool *pgxpool.Pool) *ProgramRepository {
	return &ProgramRepository{pool: pool}
}

// GetByID retrieves a program by ID, including its gallery URLs.
func (r *ProgramRepository) GetByID(ctx context.Context, id int) (*model.Program, error) {
	p := &model.Program{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, description, location, starts_at, ends_at, status, coordinator_id, department_id, created_at, updated_at
		 FROM programs WHERE id = $1`, id,
	).Scan(&p.ID, &p.Title, &p.Description, &p.Location, &p.StartsAt, &p.EndsAt, &p.Status, &p.CoordinatorID, &p.DepartmentID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	gallery, err := r.galleryFor(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Gallery = gallery
	return p, nil
}

// ListAll retrieves every program ordered by start time, galleries included.
func (r *ProgramRepository) ListAll(ctx context.Context) ([]model.Program, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, description, location, starts_at, ends_at, status, coordinator_id, department_id, created_at, updated_at
		 FROM programs ORDER BY starts_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var programs []model.Program
	for rows.Next() {
		var p model.Program
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Location, &p.StartsAt, &p.EndsAt, &p.Status, &p.CoordinatorID, &p.DepartmentID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Attach galleries in one pass instead of one query per program.
	galleries, err := r.allGalleries(ctx)
	if err != nil {
		return nil, err
	}
	for i := range programs {
		programs[i].Gallery = galleries[programs[i].ID]
	}
	return programs, nil
}

// Create inserts a new program.
func (r *ProgramRepository) Create(ctx context.Context, p *model.Program) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO programs (title, description, location, starts_at, ends_at, status, coordinator_id, department_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		p.Title, p.Description, p.Location, p.StartsAt, p.EndsAt, p.Status, p.CoordinatorID, p.DepartmentID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// Update modifies a program.
func (r *ProgramRepository) Update(ctx context.Context, p *model.Program) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE programs SET title = $1, description = $2, location = $3, starts_at = $4, ends_at = $5,
		        status = $6, coordinator_id = $7, department_id = $8, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $9`,
		p.Title, p.Description, p.Location, p.StartsAt, p.EndsAt, p.Status, p.CoordinatorID, p.DepartmentID, p.ID,
	)
	return err
}

// Delete removes a program by ID.
func (r *ProgramRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM programs WHERE id = $1`, id)
	return err
}

// AddGalleryURLs appends uploaded image URLs to a program's gallery.
func (r *ProgramRepository) AddGalleryURLs(ctx context.Context, programID int, urls []string) error {
	for _, url := range urls {
		if _, err := r.pool.Exec(ctx,
			`INSERT INTO program_gallery (program_id, url) VALUES ($1, $2)`,
			programID, url,
		); err != nil {
			return err
		}
	}
	return nil
}

// ListParticipants retrieves a program's participants joined with student info.
func (r *ProgramRepository) ListParticipants(ctx context.Context, programID int) ([]model.Participant, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT pp.program_id, pp.student_id, s.nis, s.name, pp.attended, pp.checked_in_at
		 FROM program_participants pp
		 JOIN students s ON s.id = pp.student_id
		 WHERE pp.program_id = $1
		 ORDER BY s.name`, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []model.Participant
	for rows.Next() {
		var p model.Participant
		if err := rows.Scan(&p.ProgramID, &p.StudentID, &p.StudentNIS, &p.StudentName, &p.Attended, &p.CheckedInAt); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// AddParticipant enrolls a student in a program.
func (r *ProgramRepository) AddParticipant(ctx context.Context, programID, studentID int) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO program_participants (program_id, student_id) VALUES ($1, $2)`,
		programID, studentID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyParticipant
		}
		return err
	}
	return nil
}

// RemoveParticipant removes a student from a program.
func (r *ProgramRepository) RemoveParticipant(ctx context.Context, programID, studentID int) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM program_participants WHERE program_id = $1 AND student_id = $2`,
		programID, studentID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotParticipant
	}
	return nil
}

// MarkAttendance records a participant's check-in.
func (r *ProgramRepository) MarkAttendance(ctx context.Context, programID, studentID int, at time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE program_participants SET attended = TRUE, checked_in_at = $1
		 WHERE program_id = $2 AND student_id = $3`,
		at, programID, studentID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotParticipant
	}
	return nil
}

func (r *ProgramRepository) galleryFor(ctx context.Context, programID int) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT url FROM program_gallery WHERE program_id = $1 ORDER BY id`, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, rows.Err()
}

func (r *ProgramRepository) allGalleries(ctx context.Context) (map[int][]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT program_id, url FROM program_gallery ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	galleries := make(map[int][]string)
	for rows.Next() {
		var programID int
		var url string
		if err := rows.Scan(&programID, &url); err != nil {
			return nil, err
		}
		galleries[programID] = append(galleries[programID], url)
	}
	return galleries, rows.Err()
}
