package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/orgportal-backend/internal/model"
)

var ErrDuplicateCoordinator = errors.New("coordinator with this NIP or email already exists")

// CoordinatorRepository handles coordinator data access.
type CoordinatorRepository struct {
	pool *pgxpool.Pool
}

// NewCoordinatorRepository creates a new CoordinatorRepository.
func NewCoordinatorRepository(pool *pgxpool.Pool) *CoordinatorRepository {
	return &CoordinatorRepository{pool: pool}
}

// GetByID retrieves a coordinator by ID.
func (r *CoordinatorRepository) GetByID(ctx context.Context, id int) (*model.Coordinator, error) {
	co := &model.Coordinator{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, nip, name, email, photo_url, password_hash, created_at, updated_at
		 FROM coordinators WHERE id = $1`, id,
	).Scan(&co.ID, &co.NIP, &co.Name, &co.Email, &co.PhotoURL, &co.PasswordHash, &co.CreatedAt, &co.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return co, nil
}

// GetByEmail retrieves a coordinator by their unique email.
func (r *CoordinatorRepository) GetByEmail(ctx context.Context, email string) (*model.Coordinator, error) {
	co := &model.Coordinator{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, nip, name, email, photo_url, password_hash, created_at, updated_at
		 FROM coordinators WHERE email = $1`, email,
	).Scan(&co.ID, &co.NIP, &co.Name, &co.Email, &co.PhotoURL, &co.PasswordHash, &co.CreatedAt, &co.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return co, nil
}

// List retrieves all coordinators ordered by name.
func (r *CoordinatorRepository) List(ctx context.Context) ([]model.Coordinator, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, nip, name, email, photo_url, password_hash, created_at, updated_at
		 FROM coordinators ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coordinators []model.Coordinator
	for rows.Next() {
		var co model.Coordinator
		if err := rows.Scan(&co.ID, &co.NIP, &co.Name, &co.Email, &co.PhotoURL, &co.PasswordHash, &co.CreatedAt, &co.UpdatedAt); err != nil {
			return nil, err
		}
		coordinators = append(coordinators, co)
	}
	return coordinators, rows.Err()
}

// Create inserts a new coordinator.
func (r *CoordinatorRepository) Create(ctx context.Context, co *model.Coordinator) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO coordinators (nip, name, email, photo_url, password_hash)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		co.NIP, co.Name, co.Email, co.PhotoURL, co.PasswordHash,
	).Scan(&co.ID, &co.CreatedAt, &co.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateCoordinator
		}
		return err
	}
	return nil
}

// Update modifies a coordinator's basic info (excluding password).
func (r *CoordinatorRepository) Update(ctx context.Context, co *model.Coordinator) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE coordinators SET nip = $1, name = $2, email = $3, photo_url = $4, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5`,
		co.NIP, co.Name, co.Email, co.PhotoURL, co.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateCoordinator
		}
		return err
	}
	return nil
}

// UpdatePassword updates a coordinator's password hash.
func (r *CoordinatorRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE coordinators SET password_hash = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		passwordHash, id,
	)
	return err
}

// Delete removes a coordinator by ID.
func (r *CoordinatorRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM coordinators WHERE id = $1`, id)
	return err
}
