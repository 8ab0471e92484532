package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/orgportal-backend/internal/response"
	"github.com/stemsi/orgportal-backend/internal/service"
)

// BootstrapHandler serves the initial data load for the client shell.
type BootstrapHandler struct {
	bootstrapService *service.BootstrapService
}

// NewBootstrapHandler creates a new BootstrapHandler.
func NewBootstrapHandler(bootstrapService *service.BootstrapService) *BootstrapHandler {
	return &BootstrapHandler{bootstrapService: bootstrapService}
}

// Bootstrap godoc
// GET /api/v1/bootstrap
// Loads programs, students, coordinators, and departments in one shot.
// The load is all-or-nothing: any failed fetch fails the whole request
// so the client can show its connection-error screen.
func (h *BootstrapHandler) Bootstrap(c *gin.Context) {
	data, err := h.bootstrapService.Load(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusServiceUnavailable, response.ErrConnection)
		return
	}

	response.Success(c, http.StatusOK, data)
}
