package payrollconfig

import (
	"github.com/shopspring/decimal"
)

// OverridesRequest carries the statutory applicability flags. A nil flag
// defers to the organization setting.
type OverridesRequest struct {
	PFApplicable       *bool `json:"pf_applicable"`
	ESIApplicable      *bool `json:"esi_applicable"`
	PTApplicable       *bool `json:"pt_applicable"`
	GratuityApplicable *bool `json:"gratuity_applicable"`
}

type CreatePayrollConfigRequest struct {
	EmployeeID     string          `json:"employee_id" binding:"required,uuid"`
	StructureID    string          `json:"structure_id" binding:"required,uuid"`
	GrossSalary    decimal.Decimal `json:"gross_salary"`
	EffectiveMonth int             `json:"effective_month" binding:"required,min=1,max=12"`
	EffectiveYear  int             `json:"effective_year" binding:"required,min=2000,max=2100"`
	OverridesRequest
}

// UpdatePayrollConfigRequest leaves nil fields unchanged. A non-nil
// Overrides replaces all four flags.
type UpdatePayrollConfigRequest struct {
	StructureID *string           `json:"structure_id" binding:"omitempty,uuid"`
	GrossSalary *decimal.Decimal  `json:"gross_salary"`
	Overrides   *OverridesRequest `json:"overrides"`
}

type ListFilter struct {
	AdminID    string `form:"admin_id" binding:"omitempty,uuid"`
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
}

type PayrollConfigResponse struct {
	ID                 string          `json:"id"`
	AdminID            string          `json:"admin_id"`
	EmployeeID         string          `json:"employee_id"`
	StructureID        string          `json:"structure_id"`
	GrossSalary        decimal.Decimal `json:"gross_salary"`
	GrossMonthly       decimal.Decimal `json:"gross_monthly"`
	PFApplicable       *bool           `json:"pf_applicable"`
	ESIApplicable      *bool           `json:"esi_applicable"`
	PTApplicable       *bool           `json:"pt_applicable"`
	GratuityApplicable *bool           `json:"gratuity_applicable"`
	EffectiveMonth     int             `json:"effective_month"`
	EffectiveYear      int             `json:"effective_year"`
	IsActive           bool            `json:"is_active"`
}
