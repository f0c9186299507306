package payroll

import (
	"fmt"

	"go-hrms/internal/employee"

	"github.com/xuri/excelize/v2"
)

var registerHeaders = []string{
	"Employee Number",
	"Employee Name",
	"Payable Days",
	"Days In Month",
	"Gross Salary",
	"Basic Salary",
	"Total Earnings",
	"Total Deductions",
	"Net Pay",
}

// BuildRegister writes one row per record followed by a totals row.
// Employees missing from the directory are listed by id.
func BuildRegister(month, year int, records []GeneratedPayrollRecord, directory employee.Directory) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := fmt.Sprintf("Payroll %04d-%02d", year, month)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	boldStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, err
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, err
	}

	for i, h := range registerHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for i, r := range records {
		row := i + 2
		number, name := r.EmployeeID.String(), ""
		if emp, ok := directory.Resolve(r.EmployeeID.String()); ok {
			number, name = emp.EmployeeNumber, emp.FullName
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), number)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.PayableDays.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.TotalDaysInMonth)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.GrossSalary.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.BasicSalary.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.TotalEarnings.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), r.TotalDeductions.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), r.NetPay.InexactFloat64())
	}

	if len(records) > 0 {
		last := len(records) + 1
		totalRow := last + 1
		f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "Total")
		for _, col := range []string{"E", "F", "G", "H", "I"} {
			f.SetCellFormula(sheet, fmt.Sprintf("%s%d", col, totalRow), fmt.Sprintf("SUM(%s2:%s%d)", col, col, last))
		}
		f.SetCellStyle(sheet, "E2", fmt.Sprintf("I%d", totalRow), moneyStyle)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("D%d", totalRow), boldStyle)
	}

	widths := []float64{18, 28, 13, 13, 15, 15, 15, 17, 15}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}
	return f, nil
}
