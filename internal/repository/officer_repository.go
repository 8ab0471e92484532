package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/orgportal-backend/internal/model"
)

var ErrDuplicateOfficer = errors.New("officer with this username already exists")

// OfficerRepository handles officer data access.
type OfficerRepository struct {
	pool *pgxpool.Pool
}

// NewOfficerRepository creates a new OfficerRepository.
func NewOfficerRepository(pool *pgxpool.Pool) *OfficerRepository {
	return &OfficerRepository{pool: pool}
}

// GetByID retrieves an officer by ID.
func (r *OfficerRepository) GetByID(ctx context.Context, id int) (*model.Officer, error) {
	o := &model.Officer{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, name, position, password_hash, created_at, updated_at
		 FROM officers WHERE id = $1`, id,
	).Scan(&o.ID, &o.Username, &o.Name, &o.Position, &o.PasswordHash, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// GetByUsername retrieves an officer by their unique username.
func (r *OfficerRepository) GetByUsername(ctx context.Context, username string) (*model.Officer, error) {
	o := &model.Officer{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, name, position, password_hash, created_at, updated_at
		 FROM officers WHERE username = $1`, username,
	).Scan(&o.ID, &o.Username, &o.Name, &o.Position, &o.PasswordHash, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// List retrieves all officers ordered by name.
func (r *OfficerRepository) List(ctx context.Context) ([]model.Officer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, username, name, position, password_hash, created_at, updated_at
		 FROM officers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var officers []model.Officer
	for rows.Next() {
		var o model.Officer
		if err := rows.Scan(&o.ID, &o.Username, &o.Name, &o.Position, &o.PasswordHash, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		officers = append(officers, o)
	}
	return officers, rows.Err()
}

// Create inserts a new officer.
func (r *OfficerRepository) Create(ctx context.Context, o *model.Officer) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO officers (username, name, position, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		o.Username, o.Name, o.Position, o.PasswordHash,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateOfficer
		}
		return err
	}
	return nil
}

// Delete removes an officer by ID.
func (r *OfficerRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM officers WHERE id = $1`, id)
	return err
}
