package attendance

import (
	"fmt"
	"io"
	"strings"

	attendanceerrors "go-hrms/internal/attendance/errors"

	"github.com/xuri/excelize/v2"
)

var (
	employeeHeaders = map[string]bool{
		"EMPLOYEE":        true,
		"EMPLOYEE_ID":     true,
		"EMPLOYEE_NUMBER": true,
		"EMP_ID":          true,
		"EMP_NO":          true,
	}
	payableDaysHeaders = map[string]bool{
		"PAYABLE_DAYS": true,
		"PAYABLE":      true,
		"DAYS":         true,
	}
)

func headerKey(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

// ParseWorkbook reads the first sheet of an xlsx workbook. The first row
// is the header; columns are located by name so extra columns are ignored.
// Rows with a blank employee cell are skipped.
func ParseWorkbook(r io.Reader) ([]EntryInput, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidWorkbook
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, attendanceerrors.ErrInvalidWorkbook
	}
	if len(rows) == 0 {
		return nil, attendanceerrors.ErrEmptySheet
	}

	keyCol, daysCol := -1, -1
	for i, cell := range rows[0] {
		h := headerKey(cell)
		switch {
		case keyCol < 0 && employeeHeaders[h]:
			keyCol = i
		case daysCol < 0 && payableDaysHeaders[h]:
			daysCol = i
		}
	}
	if keyCol < 0 || daysCol < 0 {
		return nil, attendanceerrors.ErrMissingColumns
	}

	var entries []EntryInput
	for _, row := range rows[1:] {
		if keyCol >= len(row) || strings.TrimSpace(row[keyCol]) == "" {
			continue
		}
		entry := EntryInput{EmployeeKey: strings.TrimSpace(row[keyCol])}
		if daysCol < len(row) {
			entry.PayableDays = strings.TrimSpace(row[daysCol])
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return nil, attendanceerrors.ErrEmptySheet
	}
	return entries, nil
}

// Template is an empty workbook with the expected header row.
func Template() (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Attendance"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		return nil, err
	}

	for i, h := range []string{"employee", "payable_days"} {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := fmt.Sprintf("%s1", col)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, style)
		f.SetColWidth(sheet, col, col, 20)
	}
	return f, nil
}
