package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/orgportal-backend/internal/middleware"
	"github.com/stemsi/orgportal-backend/internal/response"
	"github.com/stemsi/orgportal-backend/internal/service"
	"github.com/stemsi/orgportal-backend/internal/view"
)

// ViewHandler resolves view tags to panels for the client shell.
type ViewHandler struct {
	authService *service.AuthService
}

// NewViewHandler creates a new ViewHandler.
func NewViewHandler(authService *service.AuthService) *ViewHandler {
	return &ViewHandler{authService: authService}
}

// ResolveView godoc
// GET /api/v1/view/:tag
// Resolves a view tag to the single panel the client should render,
// given the caller's (optional) authenticated role. Protected views
// resolve to the login panel for anonymous or under-privileged callers.
// A valid JWT whose session has been ended, idle-expired, or replaced
// counts as anonymous; resolving a view is a passive read and does not
// rearm the idle deadline.
func (h *ViewHandler) ResolveView(c *gin.Context) {
	tag, ok := view.ParseTag(c.Param("tag"))
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidView)
		return
	}

	var sess *view.Session
	if claims := middleware.GetClaims(c); claims != nil {
		if err := h.authService.ValidateSession(c.Request.Context(), claims); err == nil {
			sess = &view.Session{Role: claims.Role}
		}
	}

	response.Success(c, http.StatusOK, gin.H{
		"tag":   tag,
		"panel": view.Resolve(tag, sess),
	})
}
