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

// CoordinatorHandler handles officer-facing coordinator account management.
type CoordinatorHandler struct {
	coordinatorService *service.CoordinatorService
}

// NewCoordinatorHandler creates a new CoordinatorHandler.
func NewCoordinatorHandler(coordinatorService *service.CoordinatorService) *CoordinatorHandler {
	return &CoordinatorHandler{coordinatorService: coordinatorService}
}

// ListCoordinators godoc
// GET /api/v1/coordinators
func (h *CoordinatorHandler) ListCoordinators(c *gin.Context) {
	coordinators, err := h.coordinatorService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"coordinators": coordinators})
}

// GetCoordinator godoc
// GET /api/v1/coordinators/:id
func (h *CoordinatorHandler) GetCoordinator(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	coordinator, err := h.coordinatorService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"coordinator": coordinator})
}

// CreateCoordinator godoc
// POST /api/v1/coordinators
func (h *CoordinatorHandler) CreateCoordinator(c *gin.Context) {
	var req model.CreateCoordinatorRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	coordinator := &model.Coordinator{
		NIP:      req.NIP,
		Name:     req.Name,
		Email:    req.Email,
		PhotoURL: req.PhotoURL,
	}

	if err := h.coordinatorService.Create(c.Request.Context(), coordinator, req.Password); err != nil {
		if errors.Is(err, repository.ErrDuplicateCoordinator) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"coordinator": coordinator})
}

// UpdateCoordinator godoc
// PUT /api/v1/coordinators/:id
// An empty password leaves the current one unchanged.
func (h *CoordinatorHandler) UpdateCoordinator(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateCoordinatorRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	coordinator := &model.Coordinator{
		ID:       id,
		NIP:      req.NIP,
		Name:     req.Name,
		Email:    req.Email,
		PhotoURL: req.PhotoURL,
	}

	if err := h.coordinatorService.Update(c.Request.Context(), coordinator, req.Password); err != nil {
		if errors.Is(err, repository.ErrDuplicateCoordinator) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	updated, err := h.coordinatorService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"coordinator": updated})
}

// DeleteCoordinator godoc
// DELETE /api/v1/coordinators/:id
// Fails if the coordinator still supervises programs.
func (h *CoordinatorHandler) DeleteCoordinator(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.coordinatorService.Delete(c.Request.Context(), id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "coordinator deleted successfully"})
}
