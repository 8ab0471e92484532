package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/orgportal-backend/internal/response"
	"github.com/stemsi/orgportal-backend/internal/service"
)

// MediaHandler handles standalone file uploads.
type MediaHandler struct {
	mediaService *service.MediaService
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Upload godoc
// POST /api/v1/media
// Accepts a single image in the "file" form field and returns its URL.
func (h *MediaHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	url, err := h.mediaService.SaveUpload(file, header)
	if err != nil {
		failUpload(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"url": url})
}

// UploadMany godoc
// POST /api/v1/media/batch
// Accepts multiple images in the "files" form field and returns their URLs.
func (h *MediaHandler) UploadMany(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}

	urls, err := h.mediaService.SaveUploads(headers)
	if err != nil {
		failUpload(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"urls": urls})
}

// failUpload maps media service errors to API error codes.
func failUpload(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnsupportedFileType):
		response.Fail(c, http.StatusUnsupportedMediaType, response.ErrUnsupportedFile)
	case errors.Is(err, service.ErrFileTooLarge):
		response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
