package statutory

import "github.com/shopspring/decimal"

// PF percentages are accepted for compatibility but always stored as 12/12.
type UpsertSettingsRequest struct {
	PFEnabled             bool             `json:"pf_enabled"`
	PFEmployeePercentage  *decimal.Decimal `json:"pf_employee_percentage"`
	PFEmployerPercentage  *decimal.Decimal `json:"pf_employer_percentage"`
	PFWageLimit           *decimal.Decimal `json:"pf_wage_limit"`
	ESIEnabled            bool             `json:"esi_enabled"`
	ESIEmployeePercentage *decimal.Decimal `json:"esi_employee_percentage"`
	ESIEmployerPercentage *decimal.Decimal `json:"esi_employer_percentage"`
	ESIWageLimit          *decimal.Decimal `json:"esi_wage_limit"`
	PTEnabled             bool             `json:"pt_enabled"`
	GratuityEnabled       bool             `json:"gratuity_enabled"`
	GratuityPercentage    *decimal.Decimal `json:"gratuity_percentage"`
}

type SettingsResponse struct {
	Configured            bool            `json:"configured"`
	PFEnabled             bool            `json:"pf_enabled"`
	PFEmployeePercentage  decimal.Decimal `json:"pf_employee_percentage"`
	PFEmployerPercentage  decimal.Decimal `json:"pf_employer_percentage"`
	PFWageLimit           decimal.Decimal `json:"pf_wage_limit"`
	ESIEnabled            bool            `json:"esi_enabled"`
	ESIEmployeePercentage decimal.Decimal `json:"esi_employee_percentage"`
	ESIEmployerPercentage decimal.Decimal `json:"esi_employer_percentage"`
	ESIWageLimit          decimal.Decimal `json:"esi_wage_limit"`
	PTEnabled             bool            `json:"pt_enabled"`
	GratuityEnabled       bool            `json:"gratuity_enabled"`
	GratuityPercentage    decimal.Decimal `json:"gratuity_percentage"`
}

type CreateRuleRequest struct {
	State           string           `json:"state" binding:"required,max=100"`
	SalaryFrom      decimal.Decimal  `json:"salary_from"`
	SalaryTo        *decimal.Decimal `json:"salary_to"`
	TaxAmount       decimal.Decimal  `json:"tax_amount"`
	ApplicableMonth *int             `json:"applicable_month"`
}

type RuleResponse struct {
	ID              string           `json:"id"`
	State           string           `json:"state"`
	SalaryFrom      decimal.Decimal  `json:"salary_from"`
	SalaryTo        *decimal.Decimal `json:"salary_to"`
	TaxAmount       decimal.Decimal  `json:"tax_amount"`
	ApplicableMonth *int             `json:"applicable_month"`
	IsActive        bool             `json:"is_active"`
}
