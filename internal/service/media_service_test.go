package service

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stemsi/orgportal-backend/internal/config"
)

type uploadPart struct {
	filename    string
	contentType string
	content     []byte
}

// buildUploadRequest assembles a multipart/form-data request with the given
// file parts under the "files" field.
func buildUploadRequest(t *testing.T, parts []uploadPart) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="files"; filename="`+p.filename+`"`)
		h.Set("Content-Type", p.contentType)
		w, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := w.Write(p.content); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, "/media/upload", &body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func newTestMediaService(t *testing.T) *MediaService {
	t.Helper()
	return NewMediaService(&config.Config{
		UploadDir:      t.TempDir(),
		MaxUploadBytes: 1024,
	})
}

func TestSaveUpload(t *testing.T) {
	svc := newTestMediaService(t)

	req := buildUploadRequest(t, []uploadPart{
		{filename: "photo.jpg", contentType: "image/jpeg", content: []byte("jpeg-bytes")},
	})
	file, header, err := req.FormFile("files")
	if err != nil {
		t.Fatalf("FormFile: %v", err)
	}
	defer file.Close()

	url, err := svc.SaveUpload(file, header)
	if err != nil {
		t.Fatalf("SaveUpload: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/") || !strings.HasSuffix(url, ".jpg") {
		t.Errorf("url = %q, want /uploads/<uuid>.jpg", url)
	}

	name := strings.TrimPrefix(url, "/uploads/")
	saved, err := os.ReadFile(filepath.Join(svc.cfg.UploadDir, name))
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(saved) != "jpeg-bytes" {
		t.Errorf("saved content = %q, want %q", saved, "jpeg-bytes")
	}
}

func TestSaveUploadRejectsUnsupportedType(t *testing.T) {
	svc := newTestMediaService(t)

	req := buildUploadRequest(t, []uploadPart{
		{filename: "evil.sh", contentType: "application/x-sh", content: []byte("#!/bin/sh")},
	})
	file, header, err := req.FormFile("files")
	if err != nil {
		t.Fatalf("FormFile: %v", err)
	}
	defer file.Close()

	if _, err := svc.SaveUpload(file, header); !errors.Is(err, ErrUnsupportedFileType) {
		t.Fatalf("SaveUpload = %v, want ErrUnsupportedFileType", err)
	}
}

func TestSaveUploadRejectsOversizedFile(t *testing.T) {
	svc := newTestMediaService(t)

	req := buildUploadRequest(t, []uploadPart{
		{filename: "big.png", contentType: "image/png", content: bytes.Repeat([]byte("x"), 2048)},
	})
	file, header, err := req.FormFile("files")
	if err != nil {
		t.Fatalf("FormFile: %v", err)
	}
	defer file.Close()

	if _, err := svc.SaveUpload(file, header); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("SaveUpload = %v, want ErrFileTooLarge", err)
	}
}

func TestSaveUploadsCleansUpOnFailure(t *testing.T) {
	svc := newTestMediaService(t)

	req := buildUploadRequest(t, []uploadPart{
		{filename: "a.jpg", contentType: "image/jpeg", content: []byte("a")},
		{filename: "b.txt", contentType: "text/plain", content: []byte("b")},
	})
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("ParseMultipartForm: %v", err)
	}
	headers := req.MultipartForm.File["files"]
	if len(headers) != 2 {
		t.Fatalf("got %d file headers, want 2", len(headers))
	}

	if _, err := svc.SaveUploads(headers); !errors.Is(err, ErrUnsupportedFileType) {
		t.Fatalf("SaveUploads = %v, want ErrUnsupportedFileType", err)
	}

	// The already-saved first file must have been removed again.
	entries, err := os.ReadDir(svc.cfg.UploadDir)
	if err != nil {
		t.Fatalf("read upload dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("upload dir has %d leftover files, want 0", len(entries))
	}
}
