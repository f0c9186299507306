package payrollconfig

import (
	"time"

	"go-hrms/internal/breakdown"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmployeePayrollConfig binds an employee to a salary structure from an
// effective month onwards. GrossSalary is annual.
type EmployeePayrollConfig struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrganizationID     uuid.UUID       `gorm:"type:uuid;index"`
	AdminID            uuid.UUID       `gorm:"type:uuid;index"`
	EmployeeID         uuid.UUID       `gorm:"type:uuid;uniqueIndex:uq_employee_payroll_config_period"`
	StructureID        uuid.UUID       `gorm:"type:uuid;index"`
	GrossSalary        decimal.Decimal `gorm:"type:numeric(14,2)"`
	PFApplicable       *bool           `gorm:"column:pf_applicable"`
	ESIApplicable      *bool           `gorm:"column:esi_applicable"`
	PTApplicable       *bool           `gorm:"column:pt_applicable"`
	GratuityApplicable *bool
	EffectiveMonth     int `gorm:"uniqueIndex:uq_employee_payroll_config_period"`
	EffectiveYear      int `gorm:"uniqueIndex:uq_employee_payroll_config_period"`
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (EmployeePayrollConfig) TableName() string {
	return "employee_payroll_configs"
}

func (c EmployeePayrollConfig) Overrides() breakdown.Overrides {
	return breakdown.Overrides{
		PF:       c.PFApplicable,
		ESI:      c.ESIApplicable,
		PT:       c.PTApplicable,
		Gratuity: c.GratuityApplicable,
	}
}

// Period orders configs chronologically.
func Period(month, year int) int {
	return year*12 + month - 1
}

func (c EmployeePayrollConfig) Period() int {
	return Period(c.EffectiveMonth, c.EffectiveYear)
}

// LatestPerEmployee keeps, for each employee, the active config with the
// most recent effective period at or before month/year.
func LatestPerEmployee(configs []EmployeePayrollConfig, month, year int) map[uuid.UUID]EmployeePayrollConfig {
	target := Period(month, year)
	latest := make(map[uuid.UUID]EmployeePayrollConfig, len(configs))
	for _, cfg := range configs {
		if !cfg.IsActive || cfg.Period() > target {
			continue
		}
		if cur, ok := latest[cfg.EmployeeID]; ok && cur.Period() >= cfg.Period() {
			continue
		}
		latest[cfg.EmployeeID] = cfg
	}
	return latest
}
