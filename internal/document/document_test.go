package document

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stemsi/orgportal-backend/internal/model"
	"github.com/xuri/excelize/v2"
)

func TestBuildAttendanceSheet(t *testing.T) {
	checkedIn := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	program := &model.Program{
		ID:       1,
		Title:    "Latihan Dasar Kepemimpinan",
		Location: "Aula Utama",
		StartsAt: time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC),
	}
	participants := []model.Participant{
		{StudentID: 1, StudentNIS: "2024001", StudentName: "Andi Saputra", Attended: true, CheckedInAt: &checkedIn},
		{StudentID: 2, StudentNIS: "2024002", StudentName: "Budi Santoso", Attended: false},
	}

	f, err := BuildAttendanceSheet(program, participants)
	if err != nil {
		t.Fatalf("BuildAttendanceSheet: %v", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	reopened, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer reopened.Close()

	checks := map[string]string{
		"A1": "DAFTAR HADIR: Latihan Dasar Kepemimpinan",
		"B2": "14-03-2026",
		"B3": "Aula Utama",
		"B5": "NIS",
		"B6": "2024001",
		"C6": "Andi Saputra",
		"D6": "Ya",
		"E6": "09:30",
		"D7": "Tidak",
	}
	for cell, want := range checks {
		got, err := reopened.GetCellValue(AttendanceSheetName, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		if got != want {
			t.Errorf("cell %s = %q, want %q", cell, got, want)
		}
	}

	if got, _ := reopened.GetCellValue(AttendanceSheetName, "E7"); got != "" {
		t.Errorf("absent participant should have empty check-in time, got %q", got)
	}
}

func TestNewCertificateRendererMissingFont(t *testing.T) {
	if _, err := NewCertificateRenderer("/nonexistent/font.ttf"); err == nil {
		t.Fatal("expected error for missing font file")
	}
}

func TestCertificateRender(t *testing.T) {
	fontPath := os.Getenv("CERT_FONT_PATH")
	if fontPath == "" {
		t.Skip("CERT_FONT_PATH not set")
	}

	r, err := NewCertificateRenderer(fontPath)
	if err != nil {
		t.Fatalf("NewCertificateRenderer: %v", err)
	}

	var buf bytes.Buffer
	err = r.Render(&buf, CertificateData{
		Number:       "001/OSIS/III/2026",
		StudentName:  "Andi Saputra",
		StudentNIS:   "2024001",
		ProgramTitle: "Latihan Dasar Kepemimpinan",
		IssuedAt:     time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("output does not start with PDF header")
	}
}
