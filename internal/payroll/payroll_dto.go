package payroll

import (
	"go-hrms/internal/attendance"

	"github.com/shopspring/decimal"
)

// GenerateRequest falls back to the stored attendance sheet when Entries
// is empty.
type GenerateRequest struct {
	Month   int                     `json:"month" binding:"required,min=1,max=12"`
	Year    int                     `json:"year" binding:"required,min=2000,max=2100"`
	Entries []attendance.EntryInput `json:"entries" binding:"omitempty,dive"`
}

type RowError struct {
	Employee string `json:"employee"`
	Message  string `json:"message"`
}

type GenerateResult struct {
	Month        int        `json:"month"`
	Year         int        `json:"year"`
	TotalDays    int        `json:"total_days"`
	SuccessCount int        `json:"success_count"`
	ErrorCount   int        `json:"error_count"`
	Errors       []RowError `json:"errors"`
}

type PeriodQuery struct {
	Month int `form:"month" binding:"required,min=1,max=12"`
	Year  int `form:"year" binding:"required,min=2000,max=2100"`
}

type RecordResponse struct {
	ID               string          `json:"id"`
	AdminID          string          `json:"admin_id"`
	EmployeeID       string          `json:"employee_id"`
	Month            int             `json:"month"`
	Year             int             `json:"year"`
	PayableDays      decimal.Decimal `json:"payable_days"`
	TotalDaysInMonth int             `json:"total_days_in_month"`
	GrossSalary      decimal.Decimal `json:"gross_salary"`
	BasicSalary      decimal.Decimal `json:"basic_salary"`
	Earnings         []PayLine       `json:"earnings"`
	Deductions       []PayLine       `json:"deductions"`
	TotalEarnings    decimal.Decimal `json:"total_earnings"`
	TotalDeductions  decimal.Decimal `json:"total_deductions"`
	NetPay           decimal.Decimal `json:"net_pay"`
	GeneratedAt      string          `json:"generated_at"`
}

type CreateAdjustmentRequest struct {
	EmployeeID    string           `json:"employee_id" binding:"required,uuid"`
	Month         int              `json:"month" binding:"required,min=1,max=12"`
	Year          int              `json:"year" binding:"required,min=2000,max=2100"`
	ComponentType string           `json:"component_type" binding:"required,oneof=earning deduction"`
	Name          string           `json:"name" binding:"required,max=120"`
	Quantity      *decimal.Decimal `json:"quantity"`
	UnitAmount    decimal.Decimal  `json:"unit_amount"`
	Notes         *string          `json:"notes"`
}

type AdjustmentResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	ComponentType string          `json:"component_type"`
	Name          string          `json:"name"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitAmount    decimal.Decimal `json:"unit_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Notes         *string         `json:"notes,omitempty"`
}
