package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/orgportal-backend/internal/model"
)

var ErrDuplicateNIS = errors.New("student with this NIS already exists")

// StudentRepository handles student data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

// GetByID retrieves a student by ID.
func (r *StudentRepository) GetByID(ctx context.Context, id int) (*model.Student, error) {
	s := &model.Student{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, nis, name, email, department_id, photo_url, password_hash, created_at, updated_at
		 FROM students WHERE id = $1`, id,
	).Scan(&s.ID, &s.NIS, &s.Name, &s.Email, &s.DepartmentID, &s.PhotoURL, &s.PasswordHash, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByNIS retrieves a student by their unique NIS.
func (r *StudentRepository) GetByNIS(ctx context.Context, nis string) (*model.Student, error) {
	s := &model.Student{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, nis, name, email, department_id, photo_url, password_hash, created_at, updated_at
		 FROM students WHERE nis = $1`, nis,
	).Scan(&s.ID, &s.NIS, &s.Name, &s.Email, &s.DepartmentID, &s.PhotoURL, &s.PasswordHash, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListAll retrieves every student ordered by name. Used by the bootstrap load.
func (r *StudentRepository) ListAll(ctx context.Context) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, nis, name, email, department_id, photo_url, password_hash, created_at, updated_at
		 FROM students ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.NIS, &s.Name, &s.Email, &s.DepartmentID, &s.PhotoURL, &s.PasswordHash, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// ListPaginated retrieves students with pagination and optional department filter.
func (r *StudentRepository) ListPaginated(ctx context.Context, departmentID *int, limit, offset int) ([]model.Student, int, error) {
	// 1. Get total count
	countQuery := `SELECT COUNT(*) FROM students`
	var countArgs []interface{}
	if departmentID != nil {
		countQuery += ` WHERE department_id = $1`
		countArgs = append(countArgs, *departmentID)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	// 2. Get paginated data
	query := `SELECT id, nis, name, email, department_id, photo_url, password_hash, created_at, updated_at FROM students`
	var args []interface{}
	argIdx := 1

	if departmentID != nil {
		query += ` WHERE department_id = $1`
		args = append(args, *departmentID)
		argIdx++
	}

	query += ` ORDER BY name LIMIT $` + strconv.Itoa(argIdx) + ` OFFSET $` + strconv.Itoa(argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.NIS, &s.Name, &s.Email, &s.DepartmentID, &s.PhotoURL, &s.PasswordHash, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, err
		}
		students = append(students, s)
	}
	return students, total, rows.Err()
}

// Create inserts a new student.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO students (nis, name, email, department_id, photo_url, password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		s.NIS, s.Name, s.Email, s.DepartmentID, s.PhotoURL, s.PasswordHash,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateNIS
		}
		return err
	}
	return nil
}

// Update modifies a student's basic info (excluding password).
func (r *StudentRepository) Update(ctx context.Context, s *model.Student) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE students SET nis = $1, name = $2, email = $3, department_id = $4, photo_url = $5, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $6`,
		s.NIS, s.Name, s.Email, s.DepartmentID, s.PhotoURL, s.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateNIS
		}
		return err
	}
	return nil
}

// UpdatePassword updates a student's password hash.
func (r *StudentRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE students SET password_hash = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		passwordHash, id,
	)
	return err
}

// UpdatePhoto updates a student's profile photo URL.
func (r *StudentRepository) UpdatePhoto(ctx context.Context, id int, photoURL string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE students SET photo_url = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		photoURL, id,
	)
	return err
}

// Delete removes a student by ID.
func (r *StudentRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	return err
}
