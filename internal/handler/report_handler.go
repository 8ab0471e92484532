package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stemsi/orgportal-backend/internal/middleware"
	"github.com/stemsi/orgportal-backend/internal/model"
	"github.com/stemsi/orgportal-backend/internal/response"
	"github.com/stemsi/orgportal-backend/internal/service"
	"github.com/stemsi/orgportal-backend/internal/validator"
)

// ReportHandler handles activity reports attached to programs.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ListReports godoc
// GET /api/v1/reports?student_id=&program_id=
// Lists reports with optional student and program filters. Students are
// always restricted to their own reports regardless of the filter.
func (h *ReportHandler) ListReports(c *gin.Context) {
	var studentID, programID *int

	if raw := c.Query("student_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		studentID = &id
	}
	if raw := c.Query("program_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		programID = &id
	}

	if claims := middleware.GetClaims(c); claims != nil && claims.Role == model.RoleStudent {
		own := claims.UserID
		studentID = &own
	}

	reports, err := h.reportService.List(c.Request.Context(), studentID, programID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reports": reports})
}

// GetReport godoc
// GET /api/v1/reports/:id
// Students can only fetch their own reports; anyone else's look absent.
func (h *ReportHandler) GetReport(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	report, err := h.reportService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	if claims := middleware.GetClaims(c); claims != nil && claims.Role == model.RoleStudent && report.StudentID != claims.UserID {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"report": report})
}

// CreateReport godoc
// POST /api/v1/reports
func (h *ReportHandler) CreateReport(c *gin.Context) {
	var req model.ReportRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	report := &model.Report{
		StudentID: req.StudentID,
		ProgramID: req.ProgramID,
		Title:     req.Title,
		Content:   req.Content,
		Score:     req.Score,
	}

	if err := h.reportService.Create(c.Request.Context(), report); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"report": report})
}

// UpdateReport godoc
// PUT /api/v1/reports/:id
func (h *ReportHandler) UpdateReport(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.ReportRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	report := &model.Report{
		ID:        id,
		StudentID: req.StudentID,
		ProgramID: req.ProgramID,
		Title:     req.Title,
		Content:   req.Content,
		Score:     req.Score,
	}

	if err := h.reportService.Update(c.Request.Context(), report); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	updated, err := h.reportService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"report": updated})
}

// DeleteReport godoc
// DELETE /api/v1/reports/:id
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.reportService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "report deleted successfully"})
}
