package breakdown

import (
	"sort"
	"strings"

	breakdownerrors "go-hrms/internal/breakdown/errors"
	"go-hrms/internal/salarycomponent"
	"go-hrms/internal/salarystructure"
	"go-hrms/internal/shared/money"
	"go-hrms/internal/statutory"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	one    = decimal.NewFromInt(1)
	twelve = decimal.NewFromInt(12)
)

// Calculator evaluates structure items in a fixed plan:
//
//	BASIC, DA, remaining fixed/percentage items (a calculation base before
//	its dependants), statutory items, gratuity, special allowance balancing,
//	employer-side filtering, totals.
//
// It holds no state between calls and is safe for concurrent use.
type Calculator struct {
	statutory statutory.Calculator
}

func NewCalculator(policy statutory.Policy) *Calculator {
	return &Calculator{statutory: statutory.NewCalculator(policy)}
}

// Calculate returns the full-month breakdown.
func (c *Calculator) Calculate(in Input) (Result, error) {
	return c.evaluate(in, one)
}

// Prorate returns the breakdown for payableDays out of totalDays. Fixed and
// percentage items scale with the attendance factor while statutory items
// are recomputed against the pro-rated salary, so they keep their own
// ceilings and bands.
func (c *Calculator) Prorate(in Input, payableDays decimal.Decimal, totalDays int) (Result, error) {
	if totalDays <= 0 {
		totalDays = c.statutory.Policy.DefaultDaysInMonth
	}
	total := decimal.NewFromInt(int64(totalDays))
	if payableDays.IsNegative() || payableDays.GreaterThan(total) {
		return Result{}, breakdownerrors.ErrInvalidPayableDays
	}
	return c.evaluate(in, payableDays.Div(total))
}

func (c *Calculator) evaluate(in Input, factor decimal.Decimal) (Result, error) {
	if in.GrossAnnual.IsNegative() {
		return Result{}, breakdownerrors.ErrInvalidGrossSalary
	}
	if len(in.Items) == 0 {
		return Result{}, breakdownerrors.ErrNoStructureItems
	}

	gross := money.Round(in.GrossAnnual.Div(twelve))
	if !factor.Equal(one) {
		gross = money.Round(gross.Mul(factor))
	}

	e := newEvaluation(c.statutory, in, factor, gross)
	e.resolveBasic()
	e.resolveDA()
	e.resolveGeneral()
	e.resolveStatutory()
	e.resolveGratuity()
	if err := e.balance(); err != nil {
		return Result{}, err
	}
	return e.result(), nil
}

type evaluation struct {
	calc   statutory.Calculator
	in     Input
	factor decimal.Decimal
	gross  decimal.Decimal

	items    []salarystructure.SalaryStructureItem
	lines    []*Line
	done     []bool
	amounts  map[uuid.UUID]decimal.Decimal
	extra    []Line
	basicIdx int
	daIdx    int
	gratuity []int
}

func newEvaluation(calc statutory.Calculator, in Input, factor, gross decimal.Decimal) *evaluation {
	items := append([]salarystructure.SalaryStructureItem(nil), in.Items...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Order < items[j].Order })

	return &evaluation{
		calc:     calc,
		in:       in,
		factor:   factor,
		gross:    gross,
		items:    items,
		lines:    make([]*Line, len(items)),
		done:     make([]bool, len(items)),
		amounts:  make(map[uuid.UUID]decimal.Decimal, len(items)),
		basicIdx: -1,
		daIdx:    -1,
	}
}

func isRule(item salarystructure.SalaryStructureItem) bool {
	return item.CalculationType == salarystructure.CalcFixed || item.CalculationType == salarystructure.CalcPercentage
}

func (e *evaluation) basic() (decimal.Decimal, bool) {
	if e.basicIdx < 0 || !e.done[e.basicIdx] {
		return decimal.Zero, false
	}
	return e.lines[e.basicIdx].Amount, true
}

func (e *evaluation) da() decimal.Decimal {
	if e.daIdx < 0 || !e.done[e.daIdx] {
		return decimal.Zero
	}
	return e.lines[e.daIdx].Amount
}

func (e *evaluation) set(idx int, amount decimal.Decimal) {
	item := e.items[idx]
	e.lines[idx] = &Line{
		ComponentID:     item.ComponentID,
		Code:            item.Component.Code,
		Name:            item.Component.Name,
		Type:            item.Component.ComponentType,
		CalculationType: item.CalculationType,
		StatutoryType:   item.Component.Statutory(),
		Amount:          amount,
		employerSide:    item.Component.IsStatutory() && item.Component.IsEmployerSide(),
	}
	e.done[idx] = true
	e.amounts[item.ComponentID] = amount
}

func (e *evaluation) ruleAmount(item salarystructure.SalaryStructureItem, base decimal.Decimal) decimal.Decimal {
	if item.CalculationType == salarystructure.CalcFixed {
		return money.Round(item.ValueOrZero().Mul(e.factor))
	}
	return money.Percent(base, item.ValueOrZero())
}

// BASIC is always computed on gross.
func (e *evaluation) resolveBasic() {
	for i, item := range e.items {
		if !item.IsEarning() || !item.Component.IsBasic() {
			continue
		}
		e.basicIdx = i
		if isRule(item) {
			e.set(i, e.ruleAmount(item, e.gross))
		}
		return
	}
}

// DA is computed on BASIC unless it names a different calculation base, in
// which case it waits for the general pass.
func (e *evaluation) resolveDA() {
	for i, item := range e.items {
		if i == e.basicIdx || !item.IsEarning() || !item.Component.IsDA() {
			continue
		}
		e.daIdx = i
		if !isRule(item) {
			return
		}
		if item.CalculationBaseID != nil && (e.basicIdx < 0 || *item.CalculationBaseID != e.items[e.basicIdx].ComponentID) {
			return
		}
		base, ok := e.basic()
		if !ok {
			base = e.gross
		}
		e.set(i, e.ruleAmount(item, base))
		return
	}
}

// resolveGeneral evaluates the remaining fixed and percentage items in
// declared order, holding back an item until its calculation base is done.
func (e *evaluation) resolveGeneral() {
	var pending []int
	waiting := make(map[uuid.UUID]bool)
	for i, item := range e.items {
		if e.done[i] || !isRule(item) {
			continue
		}
		pending = append(pending, i)
		waiting[item.ComponentID] = true
	}

	for len(pending) > 0 {
		next := 0
		for k, idx := range pending {
			base := e.items[idx].CalculationBaseID
			if base == nil || !waiting[*base] || *base == e.items[idx].ComponentID {
				next = k
				break
			}
		}

		idx := pending[next]
		item := e.items[idx]
		e.set(idx, e.ruleAmount(item, e.percentageBase(item)))
		delete(waiting, item.ComponentID)
		pending = append(pending[:next], pending[next+1:]...)
	}
}

// percentageBase falls back from the explicit base to BASIC and then gross.
func (e *evaluation) percentageBase(item salarystructure.SalaryStructureItem) decimal.Decimal {
	if item.CalculationBaseID != nil && *item.CalculationBaseID != item.ComponentID {
		if amount, ok := e.amounts[*item.CalculationBaseID]; ok {
			return amount
		}
	}
	if basic, ok := e.basic(); ok {
		return basic
	}
	return e.gross
}

func (e *evaluation) resolveStatutory() {
	settings := e.in.Settings
	if settings == nil {
		return
	}
	ov := e.in.Overrides

	for i, item := range e.items {
		if item.CalculationType != salarystructure.CalcAuto || e.done[i] {
			continue
		}
		employer := item.Component.IsEmployerSide()

		switch item.Component.Statutory() {
		case salarycomponent.StatutoryPF:
			if employer {
				e.set(i, decimal.Zero)
				continue
			}
			e.set(i, e.calc.PFEmployee(e.pfBase(), settings, ov.PF))
		case salarycomponent.StatutoryESI:
			if employer {
				e.set(i, decimal.Zero)
				continue
			}
			e.set(i, e.calc.ESIEmployee(e.gross, settings, ov.ESI))
		case salarycomponent.StatutoryPT:
			state := strings.TrimSpace(e.in.State)
			if state == "" {
				e.set(i, decimal.Zero)
				continue
			}
			e.set(i, e.calc.ProfessionalTax(e.gross, state, e.in.Month, settings, ov.PT, e.in.Rules.ForState(state)))
		case salarycomponent.StatutoryGratuity:
			e.gratuity = append(e.gratuity, i)
		}
	}
}

func (e *evaluation) pfBase() decimal.Decimal {
	basic, ok := e.basic()
	if !ok {
		return e.gross
	}
	return basic.Add(e.da())
}

// resolveGratuity runs once BASIC is final. A zero amount leaves no line.
func (e *evaluation) resolveGratuity() {
	basic, _ := e.basic()
	if !basic.IsPositive() {
		return
	}
	for _, i := range e.gratuity {
		if e.items[i].Component.IsEmployerSide() {
			continue
		}
		amount := e.calc.Gratuity(basic, e.in.Settings, e.in.Overrides.Gratuity)
		if amount.IsPositive() {
			e.set(i, amount)
		}
	}
}

// balance moves the gap between gross and the computed earnings into the
// special allowance so total earnings equal gross.
func (e *evaluation) balance() error {
	total := e.totalEarnings()
	remaining := e.gross.Sub(total)
	if remaining.IsZero() {
		return nil
	}

	balancing := -1
	for i, line := range e.lines {
		if line != nil && line.Type == salarycomponent.TypeEarning && e.items[i].Component.IsSpecialAllowance() {
			balancing = i
			break
		}
	}

	switch {
	case balancing >= 0:
		line := e.lines[balancing]
		line.Amount = money.MaxZero(line.Amount.Add(remaining))
	case remaining.IsPositive():
		e.extra = append(e.extra, Line{
			Code:            salarycomponent.CodeSpecialAllowance,
			Name:            salarycomponent.SpecialAllowanceSpec().Name,
			Type:            salarycomponent.TypeEarning,
			CalculationType: CalcBalancing,
			Amount:          remaining,
		})
	}

	if !e.totalEarnings().Equal(e.gross) {
		return breakdownerrors.ErrEarningsExceedGross
	}
	return nil
}

func (e *evaluation) totalEarnings() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.lines {
		if line != nil && line.Type == salarycomponent.TypeEarning {
			total = total.Add(line.Amount)
		}
	}
	for _, line := range e.extra {
		total = total.Add(line.Amount)
	}
	return money.Round(total)
}

func (e *evaluation) result() Result {
	res := Result{
		GrossMonthly:  e.gross,
		ProrataFactor: e.factor,
		DA:            e.da(),
		Earnings:      []Line{},
		Deductions:    []Line{},
	}
	res.Basic, _ = e.basic()

	for _, line := range e.lines {
		if line == nil {
			continue
		}
		switch {
		case line.Type == salarycomponent.TypeEarning:
			res.Earnings = append(res.Earnings, *line)
		case line.employerSide:
		default:
			res.Deductions = append(res.Deductions, *line)
		}
	}
	res.Earnings = append(res.Earnings, e.extra...)

	res.TotalEarnings = sumLines(res.Earnings)
	res.TotalDeductions = sumLines(res.Deductions)
	res.NetPay = money.Round(res.TotalEarnings.Sub(res.TotalDeductions))
	return res
}

func sumLines(lines []Line) decimal.Decimal {
	amounts := make([]decimal.Decimal, len(lines))
	for i, line := range lines {
		amounts[i] = line.Amount
	}
	return money.Sum(amounts...)
}
