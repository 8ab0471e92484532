package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/orgportal-backend/internal/config"
	"github.com/stemsi/orgportal-backend/internal/database"
	"github.com/stemsi/orgportal-backend/internal/document"
	"github.com/stemsi/orgportal-backend/internal/handler"
	"github.com/stemsi/orgportal-backend/internal/logger"
	"github.com/stemsi/orgportal-backend/internal/repository"
	"github.com/stemsi/orgportal-backend/internal/router"
	"github.com/stemsi/orgportal-backend/internal/service"
	"github.com/stemsi/orgportal-backend/internal/session"
	"github.com/stemsi/orgportal-backend/internal/validator"
	"github.com/stemsi/orgportal-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting OrgPortal Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	departmentRepo := repository.NewDepartmentRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	coordinatorRepo := repository.NewCoordinatorRepository(pool)
	officerRepo := repository.NewOfficerRepository(pool)
	programRepo := repository.NewProgramRepository(pool)
	reportRepo := repository.NewReportRepository(pool)
	certRepo := repository.NewCertificateRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	sessions := session.NewManager(session.NewRedisStore(rdb, cfg.SessionIdleTTL), cfg.SessionIdleTTL)

	departmentService := service.NewDepartmentService(departmentRepo)
	studentService := service.NewStudentService(studentRepo)
	coordinatorService := service.NewCoordinatorService(coordinatorRepo)
	officerService := service.NewOfficerService(officerRepo)
	programService := service.NewProgramService(programRepo, studentRepo, rdb, log)
	reportService := service.NewReportService(reportRepo)
	mediaService := service.NewMediaService(cfg)
	bootstrapService := service.NewBootstrapService(programService, studentService, coordinatorService, departmentService)

	authService := service.NewAuthService(cfg, sessions,
		service.DefaultCredentialPaths(officerService, coordinatorService, studentService))

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(authService, studentService, coordinatorService, officerService),
		View:         handler.NewViewHandler(authService),
		Bootstrap:    handler.NewBootstrapHandler(bootstrapService),
		Department:   handler.NewDepartmentHandler(departmentService),
		Student:      handler.NewStudentHandler(studentService, mediaService),
		Coordinator:  handler.NewCoordinatorHandler(coordinatorService),
		Program:      handler.NewProgramHandler(programService, mediaService, certRepo, rdb),
		Report:       handler.NewReportHandler(reportService),
		Media:        handler.NewMediaHandler(mediaService),
		AttendanceWS: handler.NewAttendanceWSHandler(rdb, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	renderer, err := document.NewCertificateRenderer(cfg.CertFontPath)
	if err != nil {
		log.Warn().Err(err).Msg("Certificate renderer disabled")
	} else {
		certWorker := worker.NewCertificateWorker(
			programRepo, studentRepo, certRepo, renderer, rdb, cfg.UploadDir, log)
		go certWorker.Start(workerCtx)
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for the queue to drain.
	workerCancel()
	time.Sleep(2 * time.Second)

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
