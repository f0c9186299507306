package payroll

import (
	"bytes"
	"fmt"
	"time"

	"go-hrms/internal/employee"

	"github.com/jung-kurt/gofpdf"
)

// RenderPayslip lays out one record as a single A4 page.
func RenderPayslip(record GeneratedPayrollRecord, emp employee.Employee) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %s %04d-%02d", emp.EmployeeNumber, record.Year, record.Month), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	period := time.Date(record.Year, time.Month(record.Month), 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
	header := [][2]string{
		{"Employee", fmt.Sprintf("%s (%s)", emp.FullName, emp.EmployeeNumber)},
		{"Period", period},
		{"Payable days", fmt.Sprintf("%s of %d", record.PayableDays.String(), record.TotalDaysInMonth)},
		{"Gross salary", record.GrossSalary.StringFixed(2)},
	}
	for _, row := range header {
		pdf.CellFormat(45, 7, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	writeSection(pdf, "Earnings", record.Earnings, "Total earnings", record.TotalEarnings.StringFixed(2))
	pdf.Ln(4)
	writeSection(pdf, "Deductions", record.Deductions, "Total deductions", record.TotalDeductions.StringFixed(2))
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(130, 8, "Net pay", "T", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, record.NetPay.StringFixed(2), "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSection(pdf *gofpdf.Fpdf, title string, lines []PayLine, totalLabel, total string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(217, 225, 242)
	pdf.CellFormat(130, 7, title, "B", 0, "L", true, 0, "")
	pdf.CellFormat(50, 7, "Amount", "B", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, l := range lines {
		pdf.CellFormat(130, 6, l.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, l.Amount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(130, 7, totalLabel, "T", 0, "L", false, 0, "")
	pdf.CellFormat(50, 7, total, "T", 1, "R", false, 0, "")
}
