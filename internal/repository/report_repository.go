package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/orgportal-backend/internal/model"
)

// ReportRepository handles per-student activity report data access.
type ReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// GetByID retrieves a report by ID.
func (r *ReportRepository) GetByID(ctx context.Context, id int) (*model.Report, error) {
	rep := &model.Report{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, student_id, program_id, title, content, score, created_at, updated_at
		 FROM reports WHERE id = $1`, id,
	).Scan(&rep.ID, &rep.StudentID, &rep.ProgramID, &rep.Title, &rep.Content, &rep.Score, &rep.CreatedAt, &rep.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rep, nil
}

// List retrieves reports with optional student and program filters.
func (r *ReportRepository) List(ctx context.Context, studentID, programID *int) ([]model.Report, error) {
	query := `SELECT id, student_id, program_id, title, content, score, created_at, updated_at FROM reports`
	var args []interface{}
	argIdx := 1

	if studentID != nil {
		query += ` WHERE student_id = $` + strconv.Itoa(argIdx)
		args = append(args, *studentID)
		argIdx++
	}
	if programID != nil {
		if len(args) == 0 {
			query += ` WHERE`
		} else {
			query += ` AND`
		}
		query += ` program_id = $` + strconv.Itoa(argIdx)
		args = append(args, *programID)
	}

	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []model.Report
	for rows.Next() {
		var rep model.Report
		if err := rows.Scan(&rep.ID, &rep.StudentID, &rep.ProgramID, &rep.Title, &rep.Content, &rep.Score, &rep.CreatedAt, &rep.UpdatedAt); err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

// Create inserts a new report.
func (r *ReportRepository) Create(ctx context.Context, rep *model.Report) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO reports (student_id, program_id, title, content, score)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		rep.StudentID, rep.ProgramID, rep.Title, rep.Content, rep.Score,
	).Scan(&rep.ID, &rep.CreatedAt, &rep.UpdatedAt)
}

// Update modifies a report.
func (r *ReportRepository) Update(ctx context.Context, rep *model.Report) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE reports SET student_id = $1, program_id = $2, title = $3, content = $4, score = $5, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $6`,
		rep.StudentID, rep.ProgramID, rep.Title, rep.Content, rep.Score, rep.ID,
	)
	return err
}

// Delete removes a report by ID.
func (r *ReportRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	return err
}
