package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/stemsi/orgportal-backend/internal/document"
	"github.com/stemsi/orgportal-backend/internal/model"
	"github.com/stemsi/orgportal-backend/internal/repository"
	"github.com/stemsi/orgportal-backend/internal/response"
	"github.com/stemsi/orgportal-backend/internal/service"
	"github.com/stemsi/orgportal-backend/internal/validator"
	"github.com/stemsi/orgportal-backend/internal/worker"
)

// ProgramHandler handles program management, participants, attendance,
// and generated documents.
type ProgramHandler struct {
	programService *service.ProgramService
	mediaService   *service.MediaService
	certRepo       *repository.CertificateRepository
	rdb            *redis.Client
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(
	programService *service.ProgramService,
	mediaService *service.MediaService,
	certRepo *repository.CertificateRepository,
	rdb *redis.Client,
) *ProgramHandler {
	return &ProgramHandler{
		programService: programService,
		mediaService:   mediaService,
		certRepo:       certRepo,
		rdb:            rdb,
	}
}

// ListPrograms godoc
// GET /api/v1/programs
// Lists all programs with their galleries. Public.
func (h *ProgramHandler) ListPrograms(c *gin.Context) {
	programs, err := h.programService.ListAll(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"programs": programs})
}

// GetProgram godoc
// GET /api/v1/programs/:id
func (h *ProgramHandler) GetProgram(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	program, err := h.programService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"program": program})
}

// CreateProgram godoc
// POST /api/v1/programs
func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	var req model.ProgramRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	program := programFromRequest(0, &req)
	if err := h.programService.Create(c.Request.Context(), program); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"program": program})
}

// UpdateProgram godoc
// PUT /api/v1/programs/:id
func (h *ProgramHandler) UpdateProgram(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.ProgramRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	program := programFromRequest(id, &req)
	if err := h.programService.Update(c.Request.Context(), program); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	updated, err := h.programService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"program": updated})
}

// DeleteProgram godoc
// DELETE /api/v1/programs/:id
// Deletes a program with its participants and gallery.
func (h *ProgramHandler) DeleteProgram(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.programService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "program deleted successfully"})
}

// UploadGallery godoc
// POST /api/v1/programs/:id/gallery
// Accepts multiple images in the "files" form field. Saving is
// all-or-nothing; a failed file removes the ones already written.
func (h *ProgramHandler) UploadGallery(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}

	urls, err := h.mediaService.SaveUploads(form.File["files"])
	if err != nil {
		failUpload(c, err)
		return
	}

	if err := h.programService.AddGalleryURLs(c.Request.Context(), id, urls); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"urls": urls})
}

// ListParticipants godoc
// GET /api/v1/programs/:id/participants
func (h *ProgramHandler) ListParticipants(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	participants, err := h.programService.ListParticipants(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"participants": participants})
}

// AddParticipant godoc
// POST /api/v1/programs/:id/participants
// Enrolls a student and returns the confirmed participant list.
func (h *ProgramHandler) AddParticipant(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.AddParticipantRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	participants, err := h.programService.AddParticipant(c.Request.Context(), id, req.StudentID)
	if err != nil {
		failParticipant(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"participants": participants})
}

// RemoveParticipant godoc
// DELETE /api/v1/programs/:id/participants/:studentId
// Removes a student and returns the confirmed participant list.
func (h *ProgramHandler) RemoveParticipant(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	studentID, err := strconv.Atoi(c.Param("studentId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	participants, err := h.programService.RemoveParticipant(c.Request.Context(), id, studentID)
	if err != nil {
		failParticipant(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"participants": participants})
}

// CheckIn godoc
// POST /api/v1/programs/:id/participants/:studentId/check-in
// Marks a participant as present and broadcasts the event to live
// attendance monitors.
func (h *ProgramHandler) CheckIn(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	studentID, err := strconv.Atoi(c.Param("studentId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	event, err := h.programService.CheckIn(c.Request.Context(), id, studentID)
	if err != nil {
		failParticipant(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"check_in": event})
}

// DownloadAttendanceSheet godoc
// GET /api/v1/programs/:id/attendance-sheet
// Streams the program's attendance list as an XLSX download.
func (h *ProgramHandler) DownloadAttendanceSheet(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	program, err := h.programService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	participants, err := h.programService.ListParticipants(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	f, err := document.BuildAttendanceSheet(program, participants)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	filename := fmt.Sprintf("daftar-hadir-%d.xlsx", program.ID)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

// QueueCertificates godoc
// POST /api/v1/programs/:id/certificates
// Enqueues a certificate render for every participant who attended.
func (h *ProgramHandler) QueueCertificates(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	participants, err := h.programService.ListParticipants(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	queued := 0
	for _, p := range participants {
		if !p.Attended {
			continue
		}
		job := worker.CertificateJob{ProgramID: id, StudentID: p.StudentID}
		if err := worker.Enqueue(c.Request.Context(), h.rdb, job); err != nil {
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}
		queued++
	}

	if queued == 0 {
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrNoParticipants)
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{"queued": queued})
}

// ListCertificates godoc
// GET /api/v1/programs/:id/certificates
// Lists certificates already rendered for a program.
func (h *ProgramHandler) ListCertificates(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	certificates, err := h.certRepo.ListByProgram(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if certificates == nil {
		certificates = []model.Certificate{}
	}

	response.Success(c, http.StatusOK, gin.H{"certificates": certificates})
}

func programFromRequest(id int, req *model.ProgramRequest) *model.Program {
	return &model.Program{
		ID:            id,
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		StartsAt:      req.StartsAt,
		EndsAt:        req.EndsAt,
		Status:        req.Status,
		CoordinatorID: req.CoordinatorID,
		DepartmentID:  req.DepartmentID,
	}
}

// failParticipant maps participant mutation errors to API error codes.
func failParticipant(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProgramClosed):
		response.Fail(c, http.StatusConflict, response.ErrProgramClosed)
	case errors.Is(err, repository.ErrAlreadyParticipant):
		response.Fail(c, http.StatusConflict, response.ErrAlreadyParticipant)
	case errors.Is(err, repository.ErrNotParticipant):
		response.Fail(c, http.StatusNotFound, response.ErrNotParticipant)
	case errors.Is(err, pgx.ErrNoRows):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
