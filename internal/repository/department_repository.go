package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/orgportal-backend/internal/model"
)

var ErrDuplicateDepartment = errors.New("department with this name already exists")

// DepartmentRepository handles department data access.
type DepartmentRepository struct {
	pool *pgxpool.Pool
}

// NewDepartmentRepository creates a new DepartmentRepository.
func NewDepartmentRepository(pool *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{pool: pool}
}

// GetByID retrieves a department by ID.
func (r *DepartmentRepository) GetByID(ctx context.Context, id int) (*model.Department, error) {
	d := &model.Department{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, created_at, updated_at
		 FROM departments WHERE id = $1`, id,
	).Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// List retrieves all departments ordered by name.
func (r *DepartmentRepository) List(ctx context.Context) ([]model.Department, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, created_at, updated_at
		 FROM departments ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []model.Department
	for rows.Next() {
		var d model.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

// Create inserts a new department.
func (r *DepartmentRepository) Create(ctx context.Context, d *model.Department) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO departments (name, description)
		 VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		d.Name, d.Description,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateDepartment
		}
		return err
	}
	return nil
}

// Update modifies a department.
func (r *DepartmentRepository) Update(ctx context.Context, d *model.Department) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE departments SET name = $1, description = $2, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $3`,
		d.Name, d.Description, d.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateDepartment
		}
		return err
	}
	return nil
}

// Delete removes a department by ID.
func (r *DepartmentRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	return err
}
