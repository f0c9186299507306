package statutory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrganizationPayrollSettings struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrganizationID        uuid.UUID       `gorm:"type:uuid;uniqueIndex:uq_org_payroll_settings"`
	PFEnabled             bool            `gorm:"column:pf_enabled"`
	PFEmployeePercentage  decimal.Decimal `gorm:"column:pf_employee_percentage;type:numeric(5,2)"`
	PFEmployerPercentage  decimal.Decimal `gorm:"column:pf_employer_percentage;type:numeric(5,2)"`
	PFWageLimit           decimal.Decimal `gorm:"column:pf_wage_limit;type:numeric(14,2)"`
	ESIEnabled            bool            `gorm:"column:esi_enabled"`
	ESIEmployeePercentage decimal.Decimal `gorm:"column:esi_employee_percentage;type:numeric(5,2)"`
	ESIEmployerPercentage decimal.Decimal `gorm:"column:esi_employer_percentage;type:numeric(5,2)"`
	ESIWageLimit          decimal.Decimal `gorm:"column:esi_wage_limit;type:numeric(14,2)"`
	PTEnabled             bool            `gorm:"column:pt_enabled"`
	GratuityEnabled       bool
	GratuityPercentage    decimal.Decimal `gorm:"type:numeric(5,2)"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (OrganizationPayrollSettings) TableName() string {
	return "organization_payroll_settings"
}

// ProfessionalTaxRule is a state-level band shared by every organization.
type ProfessionalTaxRule struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey"`
	State           string           `gorm:"index"`
	SalaryFrom      decimal.Decimal  `gorm:"type:numeric(14,2)"`
	SalaryTo        *decimal.Decimal `gorm:"type:numeric(14,2)"`
	TaxAmount       decimal.Decimal  `gorm:"type:numeric(14,2)"`
	ApplicableMonth *int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (ProfessionalTaxRule) TableName() string {
	return "professional_tax_rules"
}

// DefaultSettings are the statutory parameters a new organization starts
// with. Every scheme is off until the organization enables it.
func DefaultSettings(organizationID uuid.UUID) OrganizationPayrollSettings {
	return OrganizationPayrollSettings{
		OrganizationID:        organizationID,
		PFEmployeePercentage:  decimal.NewFromInt(12),
		PFEmployerPercentage:  decimal.NewFromInt(12),
		PFWageLimit:           decimal.NewFromInt(15000),
		ESIEmployeePercentage: decimal.RequireFromString("0.75"),
		ESIEmployerPercentage: decimal.RequireFromString("3.25"),
		ESIWageLimit:          decimal.NewFromInt(21000),
		GratuityPercentage:    decimal.RequireFromString("4.81"),
	}
}
