package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/orgportal-backend/internal/middleware"
	"github.com/stemsi/orgportal-backend/internal/model"
	"github.com/stemsi/orgportal-backend/internal/response"
	"github.com/stemsi/orgportal-backend/internal/service"
	"github.com/stemsi/orgportal-backend/internal/validator"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService        *service.AuthService
	studentService     *service.StudentService
	coordinatorService *service.CoordinatorService
	officerService     *service.OfficerService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	authService *service.AuthService,
	studentService *service.StudentService,
	coordinatorService *service.CoordinatorService,
	officerService *service.OfficerService,
) *AuthHandler {
	return &AuthHandler{
		authService:        authService,
		studentService:     studentService,
		coordinatorService: coordinatorService,
		officerService:     officerService,
	}
}

// LoginRequest is the single login payload for all roles. The identifier
// is matched against officer usernames, coordinator emails, and student
// NIS numbers in that order.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required,min=1,max=255"`
	Password   string `json:"password" binding:"required,min=1,max=128"`
}

// Login godoc
// POST /api/v1/auth/login
// Validates credentials against each role in precedence order and
// returns a JWT. A new login replaces any existing session for the user.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token": result.Token,
		"role":  result.Role,
		"user": gin.H{
			"id":   result.Identity.ID,
			"name": result.Identity.Name,
		},
	})
}

// Logout godoc
// POST /api/v1/auth/logout
// Ends the authenticated user's session.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims.Role, claims.UserID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// Me godoc
// GET /api/v1/auth/me
// Returns the profile of the currently authenticated user, shaped by role.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	switch claims.Role {
	case model.RoleStudent:
		student, err := h.studentService.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"role": claims.Role, "student": student})

	case model.RoleCoordinator:
		coordinator, err := h.coordinatorService.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"role": claims.Role, "coordinator": coordinator})

	case model.RoleOfficer:
		officer, err := h.officerService.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"role": claims.Role, "officer": officer})

	default:
		response.Fail(c, http.StatusForbidden, response.ErrRoleDenied)
	}
}
