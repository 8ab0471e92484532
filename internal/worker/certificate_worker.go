package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/orgportal-backend/internal/config"
	"github.com/stemsi/orgportal-backend/internal/document"
	"github.com/stemsi/orgportal-backend/internal/model"
	"github.com/stemsi/orgportal-backend/internal/repository"
)

const (
	CertPollTimeout = 1 * time.Second
	CertMaxAttempts = 3
)

// CertificateWorker consumes render jobs from Redis, renders the PDF to
// the upload directory, and records the file in the database. Failed
// jobs are requeued until CertMaxAttempts.
type CertificateWorker struct {
	programRepo *repository.ProgramRepository
	studentRepo *repository.StudentRepository
	certRepo    *repository.CertificateRepository
	renderer    *document.CertificateRenderer
	rdb         *redis.Client
	uploadDir   string
	log         zerolog.Logger
}

func NewCertificateWorker(
	programRepo *repository.ProgramRepository,
	studentRepo *repository.StudentRepository,
	certRepo *repository.CertificateRepository,
	renderer *document.CertificateRenderer,
	rdb *redis.Client,
	uploadDir string,
	log zerolog.Logger,
) *CertificateWorker {
	return &CertificateWorker{
		programRepo: programRepo,
		studentRepo: studentRepo,
		certRepo:    certRepo,
		renderer:    renderer,
		rdb:         rdb,
		uploadDir:   uploadDir,
		log:         log.With().Str("component", "certificate_worker").Logger(),
	}
}

// CertificateJob is the queue payload for one certificate render.
type CertificateJob struct {
	ProgramID int `json:"program_id"`
	StudentID int `json:"student_id"`
	Attempts  int `json:"attempts"`
}

// Enqueue pushes a render job onto the queue.
func Enqueue(ctx context.Context, rdb *redis.Client, job CertificateJob) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return rdb.RPush(ctx, config.WorkerKey.CertificateQueue, raw).Err()
}

func (w *CertificateWorker) Start(ctx context.Context) {
	w.log.Info().Msg("CertificateWorker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. CertificateWorker stopping...")
			return

		default:
			item, err := w.rdb.BLPop(ctx, CertPollTimeout, config.WorkerKey.CertificateQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var job CertificateJob
			if err := json.Unmarshal([]byte(item[1]), &job); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			if err := w.process(ctx, job); err != nil {
				w.retry(ctx, job, err)
			}
		}
	}
}

func (w *CertificateWorker) process(ctx context.Context, job CertificateJob) error {
	program, err := w.programRepo.GetByID(ctx, job.ProgramID)
	if err != nil {
		return fmt.Errorf("load program %d: %w", job.ProgramID, err)
	}
	student, err := w.studentRepo.GetByID(ctx, job.StudentID)
	if err != nil {
		return fmt.Errorf("load student %d: %w", job.StudentID, err)
	}

	dir := filepath.Join(w.uploadDir, "certificates")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create certificates dir: %w", err)
	}

	filename := fmt.Sprintf("cert_%d_%d.pdf", job.ProgramID, job.StudentID)
	f, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return fmt.Errorf("create pdf file: %w", err)
	}

	now := time.Now()
	err = w.renderer.Render(f, document.CertificateData{
		Number:       fmt.Sprintf("%03d/%d/OSIS/%d", job.StudentID, job.ProgramID, now.Year()),
		StudentName:  student.Name,
		StudentNIS:   student.NIS,
		ProgramTitle: program.Title,
		IssuedAt:     now,
	})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(filepath.Join(dir, filename))
		return fmt.Errorf("render certificate: %w", err)
	}

	cert := &model.Certificate{
		ProgramID: job.ProgramID,
		StudentID: job.StudentID,
		FileURL:   "/uploads/certificates/" + filename,
	}
	if err := w.certRepo.Create(ctx, cert); err != nil {
		return fmt.Errorf("record certificate: %w", err)
	}

	w.log.Info().
		Int("program_id", job.ProgramID).
		Int("student_id", job.StudentID).
		Str("file_url", cert.FileURL).
		Msg("Certificate rendered")
	return nil
}

func (w *CertificateWorker) retry(ctx context.Context, job CertificateJob, cause error) {
	job.Attempts++
	if job.Attempts >= CertMaxAttempts {
		w.log.Error().Err(cause).
			Int("program_id", job.ProgramID).
			Int("student_id", job.StudentID).
			Msg("Certificate render failed permanently")
		return
	}

	w.log.Warn().Err(cause).
		Int("attempt", job.Attempts).
		Msg("Certificate render failed, requeueing")
	raw, _ := json.Marshal(job)
	w.rdb.RPush(ctx, config.WorkerKey.CertificateQueue, raw)
}
