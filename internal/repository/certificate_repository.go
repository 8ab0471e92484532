package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/orgportal-backend/internal/model"
)

// CertificateRepository handles rendered certificate records.
type CertificateRepository struct {
	pool *pgxpool.Pool
}

// NewCertificateRepository creates a new CertificateRepository.
func NewCertificateRepository(pool *pgxpool.Pool) *CertificateRepository {
	return &CertificateRepository{pool: pool}
}

// Create inserts a certificate record. A re-render for the same
// program/student pair replaces the previous file URL.
func (r *CertificateRepository) Create(ctx context.Context, c *model.Certificate) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO certificates (program_id, student_id, file_url)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (program_id, student_id)
		 DO UPDATE SET file_url = EXCLUDED.file_url, issued_at = CURRENT_TIMESTAMP
		 RETURNING id, issued_at`,
		c.ProgramID, c.StudentID, c.FileURL,
	).Scan(&c.ID, &c.IssuedAt)
}

// ListByProgram retrieves all certificates issued for a program.
func (r *CertificateRepository) ListByProgram(ctx context.Context, programID int) ([]model.Certificate, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, program_id, student_id, file_url, issued_at
		 FROM certificates WHERE program_id = $1 ORDER BY student_id`, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var certs []model.Certificate
	for rows.Next() {
		var c model.Certificate
		if err := rows.Scan(&c.ID, &c.ProgramID, &c.StudentID, &c.FileURL, &c.IssuedAt); err != nil {
			return nil, err
		}
		certs = append(certs, c)
	}
	return certs, rows.Err()
}
