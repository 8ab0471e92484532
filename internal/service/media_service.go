package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/stemsi/orgportal-backend/internal/config"
)

// Sentinel errors for media uploads.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)

// Allowed image MIME types.
var allowedMIMETypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// MediaService handles file upload operations.
type MediaService struct {
	cfg *config.Config
}

// NewMediaService creates a new MediaService.
func NewMediaService(cfg *config.Config) *MediaService {
	return &MediaService{cfg: cfg}
}

// SaveUpload saves an uploaded file to local storage with a UUID filename.
// Returns the relative URL path to the saved file.
func (s *MediaService) SaveUpload(file multipart.File, header *multipart.FileHeader) (string, error) {
	// Validate MIME type.
	contentType := header.Header.Get("Content-Type")
	ext, ok := allowedMIMETypes[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s (allowed: %s)",
			ErrUnsupportedFileType, contentType, strings.Join(allowedTypes(), ", "))
	}

	// Validate file size.
	if header.Size > s.cfg.MaxUploadBytes {
		return "", fmt.Errorf("%w: %d bytes (max: %d)", ErrFileTooLarge, header.Size, s.cfg.MaxUploadBytes)
	}

	// Ensure upload directory exists.
	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	// Generate UUID filename.
	filename := uuid.New().String() + ext
	destPath := filepath.Join(s.cfg.UploadDir, filename)

	dst, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	// Return relative URL path.
	return "/uploads/" + filename, nil
}

// SaveUploads saves a batch of uploaded files. All-or-nothing: the first
// failure aborts the batch and already-saved files are removed again.
func (s *MediaService) SaveUploads(headers []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(headers))

	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			s.removeAll(urls)
			return nil, fmt.Errorf("open upload: %w", err)
		}

		url, err := s.SaveUpload(file, header)
		file.Close()
		if err != nil {
			s.removeAll(urls)
			return nil, err
		}
		urls = append(urls, url)
	}

	return urls, nil
}

func (s *MediaService) removeAll(urls []string) {
	for _, url := range urls {
		name := strings.TrimPrefix(url, "/uploads/")
		_ = os.Remove(filepath.Join(s.cfg.UploadDir, name))
	}
}

func allowedTypes() []string {
	types := make([]string, 0, len(allowedMIMETypes))
	for t := range allowedMIMETypes {
		types = append(types, t)
	}
	return types
}
