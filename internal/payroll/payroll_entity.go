package payroll

import (
	"time"

	"go-hrms/internal/breakdown"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PayLine is one earning or deduction as printed on the payslip.
type PayLine struct {
	Code   string          `json:"code,omitempty"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Type   string          `json:"type"`
}

// LineTypeAdjustment marks lines that came from a PayrollAdjustment rather
// than the salary structure.
const LineTypeAdjustment = "adjustment"

// CalculationSnapshot is everything the record was computed from, kept for
// audit.
type CalculationSnapshot struct {
	ConfigID      uuid.UUID        `json:"config_id"`
	StructureID   uuid.UUID        `json:"structure_id"`
	EmployeeState string           `json:"employee_state"`
	GrossAnnual   decimal.Decimal  `json:"gross_annual"`
	PayableDays   decimal.Decimal  `json:"payable_days"`
	TotalDays     int              `json:"total_days"`
	ProrataFactor decimal.Decimal  `json:"prorata_factor"`
	FullMonth     breakdown.Result `json:"full_month"`
	Prorated      breakdown.Result `json:"prorated"`
	Adjustments   []PayLine        `json:"adjustments"`
}

// GeneratedPayrollRecord is the frozen result of one generation run for one
// employee. A rerun for the same period overwrites it whole.
type GeneratedPayrollRecord struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrganizationID       uuid.UUID       `gorm:"type:uuid;index"`
	AdminID              uuid.UUID       `gorm:"type:uuid;uniqueIndex:uq_generated_payroll_period"`
	EmployeeID           uuid.UUID       `gorm:"type:uuid;uniqueIndex:uq_generated_payroll_period"`
	Month                int             `gorm:"uniqueIndex:uq_generated_payroll_period"`
	Year                 int             `gorm:"uniqueIndex:uq_generated_payroll_period"`
	PayableDays          decimal.Decimal `gorm:"type:numeric(5,2)"`
	TotalDaysInMonth     int
	GrossSalary          decimal.Decimal `gorm:"type:numeric(14,2)"`
	BasicSalary          decimal.Decimal `gorm:"type:numeric(14,2)"`
	Earnings             datatypes.JSONSlice[PayLine]
	Deductions           datatypes.JSONSlice[PayLine]
	TotalEarnings        decimal.Decimal `gorm:"type:numeric(14,2)"`
	TotalDeductions      decimal.Decimal `gorm:"type:numeric(14,2)"`
	NetPay               decimal.Decimal `gorm:"type:numeric(14,2)"`
	CalculationBreakdown datatypes.JSONType[CalculationSnapshot]
	GeneratedAt          time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (GeneratedPayrollRecord) TableName() string {
	return "generated_payroll_records"
}

// PayrollAdjustment is an ad-hoc line for one employee and period, such as
// overtime, a bonus, an advance recovery or a fine.
type PayrollAdjustment struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID       `gorm:"type:uuid;index"`
	AdminID        uuid.UUID       `gorm:"type:uuid;index:idx_payroll_adjustment_period"`
	EmployeeID     uuid.UUID       `gorm:"type:uuid;index"`
	Month          int             `gorm:"index:idx_payroll_adjustment_period"`
	Year           int             `gorm:"index:idx_payroll_adjustment_period"`
	ComponentType  string          `gorm:"type:varchar(20)"`
	Name           string          `gorm:"type:varchar(120)"`
	Quantity       decimal.Decimal `gorm:"type:numeric(10,2)"`
	UnitAmount     decimal.Decimal `gorm:"type:numeric(14,2)"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric(14,2)"`
	Notes          *string         `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (PayrollAdjustment) TableName() string {
	return "payroll_adjustments"
}

func (a PayrollAdjustment) Line() PayLine {
	return PayLine{Name: a.Name, Amount: a.TotalAmount, Type: LineTypeAdjustment}
}
