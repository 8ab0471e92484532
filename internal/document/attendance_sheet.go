package document

import (
	"fmt"
	"strconv"

	"github.com/stemsi/orgportal-backend/internal/model"
	"github.com/xuri/excelize/v2"
)

// AttendanceSheetName is the single worksheet in a generated workbook.
const AttendanceSheetName = "Daftar Hadir"

const attendanceDateLayout = "02-01-2006"

// BuildAttendanceSheet renders a program's attendance list as an XLSX
// workbook: one row per participant with NIS, name, attendance status,
// check-in time, and a blank signature column.
func BuildAttendanceSheet(program *model.Program, participants []model.Participant) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", AttendanceSheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	// Title block.
	if err := f.MergeCell(AttendanceSheetName, "A1", "F1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	setCell(f, "A1", "DAFTAR HADIR: "+program.Title)
	setCell(f, "A2", "Tanggal")
	setCell(f, "B2", program.StartsAt.Format(attendanceDateLayout))
	setCell(f, "A3", "Tempat")
	setCell(f, "B3", program.Location)

	// Header row.
	headers := []string{"No", "NIS", "Nama", "Hadir", "Waktu Hadir", "Tanda Tangan"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		setCell(f, col+"5", h)
	}

	// Participant rows.
	for i, p := range participants {
		row := strconv.Itoa(6 + i)
		setCell(f, "A"+row, i+1)
		setCell(f, "B"+row, p.StudentNIS)
		setCell(f, "C"+row, p.StudentName)
		if p.Attended {
			setCell(f, "D"+row, "Ya")
			if p.CheckedInAt != nil {
				setCell(f, "E"+row, p.CheckedInAt.Format("15:04"))
			}
		} else {
			setCell(f, "D"+row, "Tidak")
		}
	}

	if err := f.SetColWidth(AttendanceSheetName, "B", "C", 24); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(AttendanceSheetName, "E", "F", 18); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	return f, nil
}

func setCell(f *excelize.File, cell string, value interface{}) {
	// SetCellValue only fails on malformed coordinates, which are all
	// hardcoded or generated here.
	_ = f.SetCellValue(AttendanceSheetName, cell, value)
}
