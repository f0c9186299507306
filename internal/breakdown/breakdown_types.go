// Package breakdown turns a salary structure and a gross salary into a
// monthly earnings and deductions breakdown.
package breakdown

import (
	"go-hrms/internal/salarystructure"
	"go-hrms/internal/statutory"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Overrides are the per-employee statutory applicability flags. Nil defers
// to the organization setting.
type Overrides struct {
	PF       *bool `json:"pf_applicable,omitempty"`
	ESI      *bool `json:"esi_applicable,omitempty"`
	PT       *bool `json:"pt_applicable,omitempty"`
	Gratuity *bool `json:"gratuity_applicable,omitempty"`
}

type Input struct {
	GrossAnnual decimal.Decimal
	Overrides   Overrides
	Items       []salarystructure.SalaryStructureItem
	// Settings is nil when the organization never configured payroll.
	Settings *statutory.OrganizationPayrollSettings
	State    string
	Month    int
	Rules    statutory.RuleSet
}

// CalcBalancing marks a special allowance line synthesized by balancing.
const CalcBalancing = "balancing"

type Line struct {
	ComponentID     uuid.UUID       `json:"component_id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Type            string          `json:"type"`
	CalculationType string          `json:"calculation_type"`
	StatutoryType   string          `json:"statutory_type,omitempty"`
	Amount          decimal.Decimal `json:"amount"`

	employerSide bool
}

type Result struct {
	GrossMonthly    decimal.Decimal `json:"gross_monthly"`
	ProrataFactor   decimal.Decimal `json:"prorata_factor"`
	Basic           decimal.Decimal `json:"basic"`
	DA              decimal.Decimal `json:"da"`
	Earnings        []Line          `json:"earnings"`
	Deductions      []Line          `json:"deductions"`
	TotalEarnings   decimal.Decimal `json:"total_earnings"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetPay          decimal.Decimal `json:"net_pay"`
}

// Line returns the earning or deduction with the given code.
func (r Result) Line(code string) (Line, bool) {
	for _, list := range [][]Line{r.Earnings, r.Deductions} {
		for _, l := range list {
			if l.Code == code {
				return l, true
			}
		}
	}
	return Line{}, false
}
