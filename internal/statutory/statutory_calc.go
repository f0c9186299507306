package statutory

import (
	"sort"
	"strings"

	"go-hrms/internal/shared/money"

	"github.com/shopspring/decimal"
)

// Policy holds the fallbacks applied when no better data is on file.
type Policy struct {
	DefaultProfessionalTax decimal.Decimal
	DefaultDaysInMonth     int
}

func DefaultPolicy() Policy {
	return Policy{
		DefaultProfessionalTax: decimal.NewFromInt(200),
		DefaultDaysInMonth:     30,
	}
}

// Calculator computes statutory amounts. All methods are pure.
//
// A scheme produces a non-zero amount only when the organization has it
// enabled and the employee override is not explicitly false. An override
// of true never re-enables a scheme the organization has switched off.
type Calculator struct {
	Policy Policy
}

func NewCalculator(policy Policy) Calculator {
	return Calculator{Policy: policy}
}

func applies(enabled bool, override *bool) bool {
	if !enabled {
		return false
	}
	return override == nil || *override
}

func (c Calculator) PFEmployee(base decimal.Decimal, settings *OrganizationPayrollSettings, override *bool) decimal.Decimal {
	if settings == nil || !applies(settings.PFEnabled, override) {
		return decimal.Zero
	}
	return money.Percent(decimal.Min(base, settings.PFWageLimit), settings.PFEmployeePercentage)
}

func (c Calculator) PFEmployer(base decimal.Decimal, settings *OrganizationPayrollSettings, override *bool) decimal.Decimal {
	if settings == nil || !applies(settings.PFEnabled, override) {
		return decimal.Zero
	}
	return money.Percent(decimal.Min(base, settings.PFWageLimit), settings.PFEmployerPercentage)
}

// ESIEmployee voids the contribution above the wage limit instead of clipping it.
func (c Calculator) ESIEmployee(gross decimal.Decimal, settings *OrganizationPayrollSettings, override *bool) decimal.Decimal {
	if settings == nil || !applies(settings.ESIEnabled, override) {
		return decimal.Zero
	}
	if gross.GreaterThan(settings.ESIWageLimit) {
		return decimal.Zero
	}
	return money.Percent(gross, settings.ESIEmployeePercentage)
}

func (c Calculator) ESIEmployer(gross decimal.Decimal, settings *OrganizationPayrollSettings, override *bool) decimal.Decimal {
	if settings == nil || !applies(settings.ESIEnabled, override) {
		return decimal.Zero
	}
	if gross.GreaterThan(settings.ESIWageLimit) {
		return decimal.Zero
	}
	return money.Percent(gross, settings.ESIEmployerPercentage)
}

// ProfessionalTax picks the first band (ascending salary_from) that contains
// gross and applies to month. A blank state or no matching band yields the
// policy default.
func (c Calculator) ProfessionalTax(
	gross decimal.Decimal,
	state string,
	month int,
	settings *OrganizationPayrollSettings,
	override *bool,
	rules []ProfessionalTaxRule,
) decimal.Decimal {
	if settings == nil || !applies(settings.PTEnabled, override) {
		return decimal.Zero
	}
	if strings.TrimSpace(state) == "" {
		return money.Round(c.Policy.DefaultProfessionalTax)
	}

	if !sort.SliceIsSorted(rules, ruleLess(rules)) {
		rules = sortedRules(rules)
	}
	for _, rule := range rules {
		if rule.Matches(gross, month) {
			return money.Round(rule.TaxAmount)
		}
	}
	return money.Round(c.Policy.DefaultProfessionalTax)
}

func (c Calculator) Gratuity(basic decimal.Decimal, settings *OrganizationPayrollSettings, override *bool) decimal.Decimal {
	if settings == nil || !applies(settings.GratuityEnabled, override) {
		return decimal.Zero
	}
	return money.Percent(basic, settings.GratuityPercentage)
}

// Matches reports whether gross falls inside the band and the rule applies
// to month. A nil SalaryTo is an open upper bound.
func (r ProfessionalTaxRule) Matches(gross decimal.Decimal, month int) bool {
	if !r.IsActive {
		return false
	}
	if r.ApplicableMonth != nil && *r.ApplicableMonth != month {
		return false
	}
	if gross.LessThan(r.SalaryFrom) {
		return false
	}
	return r.SalaryTo == nil || gross.LessThanOrEqual(*r.SalaryTo)
}

// RuleSet caches professional tax rules per state for a batch run.
type RuleSet map[string][]ProfessionalTaxRule

func NormalizeState(state string) string {
	return strings.ToUpper(strings.TrimSpace(state))
}

func NewRuleSet(rules []ProfessionalTaxRule) RuleSet {
	grouped := make(map[string][]ProfessionalTaxRule)
	for _, rule := range rules {
		key := NormalizeState(rule.State)
		grouped[key] = append(grouped[key], rule)
	}

	rs := make(RuleSet, len(grouped))
	for state, list := range grouped {
		rs[state] = sortedRules(list)
	}
	return rs
}

func (rs RuleSet) ForState(state string) []ProfessionalTaxRule {
	if rs == nil {
		return nil
	}
	return rs[NormalizeState(state)]
}

func sortedRules(rules []ProfessionalTaxRule) []ProfessionalTaxRule {
	out := make([]ProfessionalTaxRule, len(rules))
	copy(out, rules)
	sort.SliceStable(out, ruleLess(out))
	return out
}

// Month-specific rules sort ahead of year-round rules with the same lower bound.
func ruleLess(rules []ProfessionalTaxRule) func(i, j int) bool {
	return func(i, j int) bool {
		a, b := rules[i], rules[j]
		if cmp := a.SalaryFrom.Cmp(b.SalaryFrom); cmp != 0 {
			return cmp < 0
		}
		return a.ApplicableMonth != nil && b.ApplicableMonth == nil
	}
}
