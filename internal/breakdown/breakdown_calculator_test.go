package breakdown_test

import (
	"testing"

	"go-hrms/internal/breakdown"
	breakdownerrors "go-hrms/internal/breakdown/errors"
	"go-hrms/internal/salarycomponent"
	"go-hrms/internal/salarystructure"
	"go-hrms/internal/statutory"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func dp(v string) *decimal.Decimal {
	x := d(v)
	return &x
}

func boolPtr(v bool) *bool {
	return &v
}

type structureBuilder struct {
	items []salarystructure.SalaryStructureItem
}

func (b *structureBuilder) add(code, componentType, statutoryType, calculationType string, value *decimal.Decimal) uuid.UUID {
	c := salarycomponent.SalaryComponent{
		ID:            uuid.New(),
		Code:          code,
		Name:          code,
		ComponentType: componentType,
		IsActive:      true,
	}
	if statutoryType != "" {
		c.StatutoryType = &statutoryType
	}
	b.items = append(b.items, salarystructure.SalaryStructureItem{
		ID:              uuid.New(),
		ComponentID:     c.ID,
		Component:       c,
		CalculationType: calculationType,
		Value:           value,
		Order:           len(b.items) + 1,
	})
	return c.ID
}

func (b *structureBuilder) earning(code, calculationType, value string) uuid.UUID {
	return b.add(code, salarycomponent.TypeEarning, "", calculationType, dp(value))
}

func (b *structureBuilder) deduction(code, calculationType, value string) uuid.UUID {
	return b.add(code, salarycomponent.TypeDeduction, "", calculationType, dp(value))
}

func (b *structureBuilder) statutory(code, scheme string) uuid.UUID {
	return b.add(code, salarycomponent.TypeDeduction, scheme, salarystructure.CalcAuto, nil)
}

func (b *structureBuilder) basedOn(id uuid.UUID, base uuid.UUID) {
	for i := range b.items {
		if b.items[i].ComponentID == id {
			b.items[i].CalculationBaseID = &base
		}
	}
}

// standardStructure is BASIC 50% + SPECIAL_ALLOWANCE + PF_EMP + ESI_EMP.
func standardStructure() *structureBuilder {
	b := &structureBuilder{}
	b.earning("BASIC", salarystructure.CalcPercentage, "50")
	b.earning("SPECIAL_ALLOWANCE", salarystructure.CalcFixed, "0")
	b.statutory("PF_EMP", salarycomponent.StatutoryPF)
	b.statutory("ESI_EMP", salarycomponent.StatutoryESI)
	return b
}

func pfEsiSettings() *statutory.OrganizationPayrollSettings {
	s := statutory.DefaultSettings(uuid.New())
	s.PFEnabled = true
	s.ESIEnabled = true
	return &s
}

func maharashtraRules() statutory.RuleSet {
	return statutory.NewRuleSet([]statutory.ProfessionalTaxRule{
		{State: "Maharashtra", SalaryFrom: d("0"), SalaryTo: dp("7500"), TaxAmount: d("0"), IsActive: true},
		{State: "Maharashtra", SalaryFrom: d("7501"), SalaryTo: dp("10000"), TaxAmount: d("175"), IsActive: true},
		{State: "Maharashtra", SalaryFrom: d("10001"), TaxAmount: d("200"), IsActive: true},
	})
}

func newCalculator() *breakdown.Calculator {
	return breakdown.NewCalculator(statutory.DefaultPolicy())
}

func assertAmount(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.Equal(t, d(expected).StringFixed(2), actual.StringFixed(2))
}

func assertLine(t *testing.T, res breakdown.Result, code, expected string) {
	t.Helper()
	line, ok := res.Line(code)
	if assert.True(t, ok, "missing line %s", code) {
		assertAmount(t, expected, line.Amount)
	}
}

func TestCalculate_SimpleStructure(t *testing.T) {
	res, err := newCalculator().Calculate(breakdown.Input{
		GrossAnnual: d("240000"),
		Items:       standardStructure().items,
		Settings:    pfEsiSettings(),
	})

	assert.NoError(t, err)
	assertAmount(t, "20000", res.GrossMonthly)
	assertAmount(t, "10000", res.Basic)
	assertLine(t, res, "BASIC", "10000")
	assertLine(t, res, "SPECIAL_ALLOWANCE", "10000")
	assertLine(t, res, "PF_EMP", "1200")
	assertLine(t, res, "ESI_EMP", "150")
	assertAmount(t, "20000", res.TotalEarnings)
	assertAmount(t, "1350", res.TotalDeductions)
	assertAmount(t, "18650", res.NetPay)

	assert.Equal(t, []string{"BASIC", "SPECIAL_ALLOWANCE"}, codes(res.Earnings))
	assert.Equal(t, []string{"PF_EMP", "ESI_EMP"}, codes(res.Deductions))
}

func codes(lines []breakdown.Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Code
	}
	return out
}

func TestCalculate_Ceilings(t *testing.T) {
	calc := newCalculator()

	t.Run("esi at the wage limit", func(t *testing.T) {
		res, err := calc.Calculate(breakdown.Input{GrossAnnual: d("252000"), Items: standardStructure().items, Settings: pfEsiSettings()})
		assert.NoError(t, err)
		assertLine(t, res, "ESI_EMP", "157.50")
	})

	t.Run("esi voids above the wage limit", func(t *testing.T) {
		res, err := calc.Calculate(breakdown.Input{GrossAnnual: d("264000"), Items: standardStructure().items, Settings: pfEsiSettings()})
		assert.NoError(t, err)
		assertAmount(t, "22000", res.GrossMonthly)
		assertLine(t, res, "ESI_EMP", "0")
		assertLine(t, res, "PF_EMP", "1320")
	})

	t.Run("pf clips above the wage limit", func(t *testing.T) {
		res, err := calc.Calculate(breakdown.Input{GrossAnnual: d("480000"), Items: standardStructure().items, Settings: pfEsiSettings()})
		assert.NoError(t, err)
		assertAmount(t, "20000", res.Basic)
		assertLine(t, res, "PF_EMP", "1800")
	})
}

func TestCalculate_ProfessionalTax(t *testing.T) {
	calc := newCalculator()
	settings := pfEsiSettings()
	settings.PTEnabled = true

	structure := standardStructure()
	structure.statutory("PT", salarycomponent.StatutoryPT)

	tests := []struct {
		name     string
		annual   string
		state    string
		expected string
	}{
		{"top band", "240000", "Maharashtra", "200"},
		{"middle band", "120000", "MAHARASHTRA", "175"},
		{"lowest band", "60000", "maharashtra", "0"},
		{"no band for state", "240000", "Goa", "200"},
		{"no state on file", "240000", "", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := calc.Calculate(breakdown.Input{
				GrossAnnual: d(tt.annual),
				Items:       structure.items,
				Settings:    settings,
				State:       tt.state,
				Month:       4,
				Rules:       maharashtraRules(),
			})
			assert.NoError(t, err)
			assertLine(t, res, "PT", tt.expected)
		})
	}
}

func TestCalculate_OverridePrecedence(t *testing.T) {
	calc := newCalculator()

	t.Run("organization disabled wins over override true", func(t *testing.T) {
		settings := pfEsiSettings()
		settings.PFEnabled = false
		res, err := calc.Calculate(breakdown.Input{
			GrossAnnual: d("240000"),
			Items:       standardStructure().items,
			Settings:    settings,
			Overrides:   breakdown.Overrides{PF: boolPtr(true)},
		})
		assert.NoError(t, err)
		assertLine(t, res, "PF_EMP", "0")
	})

	t.Run("override false suppresses an enabled scheme", func(t *testing.T) {
		res, err := calc.Calculate(breakdown.Input{
			GrossAnnual: d("240000"),
			Items:       standardStructure().items,
			Settings:    pfEsiSettings(),
			Overrides:   breakdown.Overrides{ESI: boolPtr(false)},
		})
		assert.NoError(t, err)
		assertLine(t, res, "ESI_EMP", "0")
		assertLine(t, res, "PF_EMP", "1200")
		assertAmount(t, "18800", res.NetPay)
	})
}

func TestCalculate_NoSettingsSkipsStatutoryItems(t *testing.T) {
	res, err := newCalculator().Calculate(breakdown.Input{
		GrossAnnual: d("240000"),
		Items:       standardStructure().items,
	})

	assert.NoError(t, err)
	assert.Empty(t, res.Deductions)
	assertAmount(t, "20000", res.NetPay)
}

func TestCalculate_NoBasicFallsBackToGross(t *testing.T) {
	b := &structureBuilder{}
	b.earning("HRA", salarystructure.CalcPercentage, "40")
	b.earning("SPECIAL_ALLOWANCE", salarystructure.CalcFixed, "0")
	b.statutory("PF_EMP", salarycomponent.StatutoryPF)
	b.deduction("WELFARE", salarystructure.CalcPercentage, "1")

	res, err := newCalculator().Calculate(breakdown.Input{GrossAnnual: d("240000"), Items: b.items, Settings: pfEsiSettings()})

	assert.NoError(t, err)
	assertLine(t, res, "HRA", "8000")
	assertLine(t, res, "SPECIAL_ALLOWANCE", "12000")
	assertLine(t, res, "WELFARE", "200")
	// PF base falls back to gross and is clipped at 15000.
	assertLine(t, res, "PF_EMP", "1800")
	assertAmount(t, "0", res.Basic)
}

func TestCalculate_DearnessAllowanceFeedsPF(t *testing.T) {
	b := &structureBuilder{}
	b.earning("DA", salarystructure.CalcPercentage, "10")
	b.earning("BASIC", salarystructure.CalcPercentage, "50")
	b.earning("SPECIAL_ALLOWANCE", salarystructure.CalcFixed, "0")
	b.statutory("PF_EMP", salarycomponent.StatutoryPF)

	res, err := newCalculator().Calculate(breakdown.Input{GrossAnnual: d("240000"), Items: b.items, Settings: pfEsiSettings()})

	assert.NoError(t, err)
	assertAmount(t, "1000", res.DA)
	assertLine(t, res, "PF_EMP", "1320")
	assertLine(t, res, "SPECIAL_ALLOWANCE", "9000")
}

func TestCalculate_CalculationBaseChain(t *testing.T) {
	b := &structureBuilder{}
	basic := b.earning("BASIC", salarystructure.CalcPercentage, "50")
	b.earning("SPECIAL_ALLOWANCE", salarystructure.CalcFixed, "0")
	lta := b.earning("LTA", salarystructure.CalcPercentage, "10")
	hra := b.earning("HRA", salarystructure.CalcPercentage, "40")
	b.basedOn(lta, hra)
	b.basedOn(hra, basic)

	res, err := newCalculator().Calculate(breakdown.Input{GrossAnnual: d("240000"), Items: b.items})

	assert.NoError(t, err)
	assertLine(t, res, "HRA", "4000")
	assertLine(t, res, "LTA", "400")
	assertLine(t, res, "SPECIAL_ALLOWANCE", "5600")
	assert.Equal(t, []string{"BASIC", "SPECIAL_ALLOWANCE", "LTA", "HRA"}, codes(res.Earnings))
}

func TestCalculate_ReorderingIndependentItems(t *testing.T) {
	build := func(first, second string) []salarystructure.SalaryStructureItem {
		b := &structureBuilder{}
		b.earning("BASIC", salarystructure.CalcPercentage, "50")
		b.earning("SPECIAL_ALLOWANCE", salarystructure.CalcFixed, "0")
		values := map[string]string{"HRA": "40", "CONVEYANCE": "1600"}
		types := map[string]string{"HRA": salarystructure.CalcPercentage, "CONVEYANCE": salarystructure.CalcFixed}
		b.earning(first, types[first], values[first])
		b.earning(second, types[second], values[second])
		b.statutory("PF_EMP", salarycomponent.StatutoryPF)
		return b.items
	}

	calc := newCalculator()
	a, err := calc.Calculate(breakdown.Input{GrossAnnual: d("300000"), Items: build("HRA", "CONVEYANCE"), Settings: pfEsiSettings()})
	assert.NoError(t, err)
	b, err := calc.Calculate(breakdown.Input{GrossAnnual: d("300000"), Items: build("CONVEYANCE", "HRA"), Settings: pfEsiSettings()})
	assert.NoError(t, err)

	assert.True(t, a.TotalEarnings.Equal(b.TotalEarnings))
	assert.True(t, a.TotalDeductions.Equal(b.TotalDeductions))
	assert.True(t, a.NetPay.Equal(b.NetPay))
}

func TestCalculate_GrossInvariant(t *testing.T) {
	calc := newCalculator()
	for _, annual := range []string{"0", "100000", "200000", "240000", "1000000", "123456.78"} {
		for _, hra := range []string{"0", "30", "50"} {
			b := standardStructure()
			b.earning("HRA", salarystructure.CalcPercentage, hra)
			b.earning("CONVEYANCE", salarystructure.CalcFixed, "1600")

			res, err := calc.Calculate(breakdown.Input{GrossAnnual: d(annual), Items: b.items, Settings: pfEsiSettings()})
			if err != nil {
				assert.ErrorIs(t, err, breakdownerrors.ErrEarningsExceedGross)
				continue
			}
			assert.True(t, res.TotalEarnings.Equal(res.GrossMonthly), "annual %s hra %s", annual, hra)
			assert.True(t, res.NetPay.Equal(res.TotalEarnings.Sub(res.TotalDeductions)))
		}
	}
}

func TestCalculate_EarningsExceedGross(t *testing.T) {
	b := &structureBuilder{}
	b.earning("BASIC", salarystructure.CalcFixed, "15000")
	b.earning("SPECIAL_ALLOWANCE", salarystructure.CalcFixed, "0")
	b.earning("HRA", salarystructure.CalcFixed, "8000")

	_, err := newCalculator().Calculate(breakdown.Input{GrossAnnual: d("240000"), Items: b.items})

	assert.ErrorIs(t, err, breakdownerrors.ErrEarningsExceedGross)
}

func TestCalculate_SynthesizesSpecialAllowance(t *testing.T) {
	b := &structureBuilder{}
	b.earning("BASIC", salarystructure.CalcPercentage, "50")

	res, err := newCalculator().Calculate(breakdown.Input{GrossAnnual: d("240000"), Items: b.items})

	assert.NoError(t, err)
	line, ok := res.Line("SPECIAL_ALLOWANCE")
	assert.True(t, ok)
	assert.Equal(t, breakdown.CalcBalancing, line.CalculationType)
	assertAmount(t, "10000", line.Amount)
	assertAmount(t, "20000", res.TotalEarnings)
}

func TestCalculate_Gratuity(t *testing.T) {
	settings := pfEsiSettings()
	settings.GratuityEnabled = true

	b := standardStructure()
	b.statutory("GRATUITY_EMP", salarycomponent.StatutoryGratuity)

	calc := newCalculator()

	res, err := calc.Calculate(breakdown.Input{GrossAnnual: d("240000"), Items: b.items, Settings: settings})
	assert.NoError(t, err)
	assertLine(t, res, "GRATUITY_EMP", "481")
	assertAmount(t, "1831", res.TotalDeductions)

	res, err = calc.Calculate(breakdown.Input{
		GrossAnnual: d("240000"),
		Items:       b.items,
		Settings:    settings,
		Overrides:   breakdown.Overrides{Gratuity: boolPtr(false)},
	})
	assert.NoError(t, err)
	_, ok := res.Line("GRATUITY_EMP")
	assert.False(t, ok)
}

func TestCalculate_EmployerSideIsFiltered(t *testing.T) {
	b := standardStructure()
	b.statutory("PF_EMPR", salarycomponent.StatutoryPF)

	res, err := newCalculator().Calculate(breakdown.Input{GrossAnnual: d("240000"), Items: b.items, Settings: pfEsiSettings()})

	assert.NoError(t, err)
	_, ok := res.Line("PF_EMPR")
	assert.False(t, ok)
	assertAmount(t, "1350", res.TotalDeductions)
}

func TestCalculate_Errors(t *testing.T) {
	calc := newCalculator()

	_, err := calc.Calculate(breakdown.Input{GrossAnnual: d("240000")})
	assert.ErrorIs(t, err, breakdownerrors.ErrNoStructureItems)

	_, err = calc.Calculate(breakdown.Input{GrossAnnual: d("-1"), Items: standardStructure().items})
	assert.ErrorIs(t, err, breakdownerrors.ErrInvalidGrossSalary)
}

func TestProrate_HalfMonth(t *testing.T) {
	settings := pfEsiSettings()
	settings.PTEnabled = true

	b := standardStructure()
	b.statutory("PT", salarycomponent.StatutoryPT)
	b.earning("CONVEYANCE", salarystructure.CalcFixed, "1600")

	in := breakdown.Input{
		GrossAnnual: d("240000"),
		Items:       b.items,
		Settings:    settings,
		State:       "Maharashtra",
		Month:       6,
		Rules:       maharashtraRules(),
	}

	calc := newCalculator()
	full, err := calc.Calculate(in)
	assert.NoError(t, err)
	half, err := calc.Prorate(in, d("15"), 30)
	assert.NoError(t, err)

	assertAmount(t, "0.5", half.ProrataFactor)
	assertAmount(t, "10000", half.GrossMonthly)
	assertLine(t, half, "BASIC", "5000")
	assertLine(t, half, "CONVEYANCE", "800")
	assertLine(t, half, "SPECIAL_ALLOWANCE", "4200")
	assertLine(t, half, "PF_EMP", "600")
	assertLine(t, half, "ESI_EMP", "75")

	fullPT, _ := full.Line("PT")
	halfPT, _ := half.Line("PT")
	assertAmount(t, "200", fullPT.Amount)
	assertAmount(t, "175", halfPT.Amount)
	assert.False(t, halfPT.Amount.Equal(fullPT.Amount.Div(decimal.NewFromInt(2))))

	assertAmount(t, "10000", half.TotalEarnings)
	assertAmount(t, "850", half.TotalDeductions)
	assertAmount(t, "9150", half.NetPay)
}

func TestProrate_CrossesESICeiling(t *testing.T) {
	in := breakdown.Input{GrossAnnual: d("264000"), Items: standardStructure().items, Settings: pfEsiSettings()}
	calc := newCalculator()

	full, err := calc.Calculate(in)
	assert.NoError(t, err)
	half, err := calc.Prorate(in, d("15"), 30)
	assert.NoError(t, err)

	assertLine(t, full, "ESI_EMP", "0")
	assertLine(t, half, "ESI_EMP", "82.50")
}

func TestProrate_Days(t *testing.T) {
	calc := newCalculator()
	in := breakdown.Input{GrossAnnual: d("240000"), Items: standardStructure().items, Settings: pfEsiSettings()}

	_, err := calc.Prorate(in, d("31"), 30)
	assert.ErrorIs(t, err, breakdownerrors.ErrInvalidPayableDays)

	_, err = calc.Prorate(in, d("-1"), 30)
	assert.ErrorIs(t, err, breakdownerrors.ErrInvalidPayableDays)

	res, err := calc.Prorate(in, d("30"), 0)
	assert.NoError(t, err)
	assertAmount(t, "20000", res.GrossMonthly)

	res, err = calc.Prorate(in, d("0"), 31)
	assert.NoError(t, err)
	assertAmount(t, "0", res.NetPay)
	assert.Len(t, res.Earnings, 2)
}
