package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stemsi/orgportal-backend/internal/model"
	"github.com/stemsi/orgportal-backend/internal/repository"
	"github.com/stemsi/orgportal-backend/internal/response"
	"github.com/stemsi/orgportal-backend/internal/service"
	"github.com/stemsi/orgportal-backend/internal/validator"
)

// DepartmentHandler handles officer-facing department management (CRUD).
type DepartmentHandler struct {
	departmentService *service.DepartmentService
}

// NewDepartmentHandler creates a new DepartmentHandler.
func NewDepartmentHandler(departmentService *service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departmentService: departmentService}
}

// ListDepartments godoc
// GET /api/v1/departments
// Lists all departments without pagination.
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	departments, err := h.departmentService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"departments": departments})
}

// GetDepartment godoc
// GET /api/v1/departments/:id
func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	department, err := h.departmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"department": department})
}

// CreateDepartment godoc
// POST /api/v1/departments
// Creates a new department.
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req model.DepartmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	department := &model.Department{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := h.departmentService.Create(c.Request.Context(), department); err != nil {
		if errors.Is(err, repository.ErrDuplicateDepartment) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"department": department})
}

// UpdateDepartment godoc
// PUT /api/v1/departments/:id
// Updates an existing department.
func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.DepartmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	department := &model.Department{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	}

	if err := h.departmentService.Update(c.Request.Context(), department); err != nil {
		if errors.Is(err, repository.ErrDuplicateDepartment) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	updated, err := h.departmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"department": updated})
}

// DeleteDepartment godoc
// DELETE /api/v1/departments/:id
// Deletes a department by ID. Fails if students or programs reference it.
func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.departmentService.Delete(c.Request.Context(), id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "department deleted successfully"})
}
