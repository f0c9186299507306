package payroll

import (
	"time"

	"go-hrms/internal/attendance"
	"go-hrms/internal/breakdown"
	breakdownerrors "go-hrms/internal/breakdown/errors"
	"go-hrms/internal/employee"
	payrollerrors "go-hrms/internal/payroll/errors"
	"go-hrms/internal/payrollconfig"
	"go-hrms/internal/salarycomponent"
	"go-hrms/internal/salarystructure"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/money"
	"go-hrms/internal/statutory"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Batch is everything one generation run needs, loaded up front so the
// per-employee loop does no I/O.
type Batch struct {
	OrganizationID uuid.UUID
	AdminID        uuid.UUID
	Month          int
	Year           int
	TotalDays      int
	Directory      employee.Directory
	Configs        map[uuid.UUID]payrollconfig.EmployeePayrollConfig
	Items          map[uuid.UUID][]salarystructure.SalaryStructureItem
	Settings       *statutory.OrganizationPayrollSettings
	Rules          statutory.RuleSet
	Adjustments    map[uuid.UUID][]PayrollAdjustment
	GeneratedAt    time.Time
}

// GroupItems indexes structure items by structure.
func GroupItems(items []salarystructure.SalaryStructureItem) map[uuid.UUID][]salarystructure.SalaryStructureItem {
	grouped := make(map[uuid.UUID][]salarystructure.SalaryStructureItem)
	for _, item := range items {
		grouped[item.StructureID] = append(grouped[item.StructureID], item)
	}
	return grouped
}

func GroupAdjustments(adjustments []PayrollAdjustment) map[uuid.UUID][]PayrollAdjustment {
	grouped := make(map[uuid.UUID][]PayrollAdjustment)
	for _, a := range adjustments {
		grouped[a.EmployeeID] = append(grouped[a.EmployeeID], a)
	}
	return grouped
}

// Run computes one record per attendance entry. A failing entry becomes a
// RowError and the rest of the batch carries on.
func (b *Batch) Run(calc *breakdown.Calculator, entries []attendance.EntryInput) ([]GeneratedPayrollRecord, []RowError) {
	records := make([]GeneratedPayrollRecord, 0, len(entries))
	var rowErrors []RowError
	seen := make(map[uuid.UUID]bool, len(entries))

	for _, entry := range entries {
		emp, ok := b.Directory.Resolve(entry.EmployeeKey)
		if !ok {
			rowErrors = append(rowErrors, rowError(entry.EmployeeKey, payrollerrors.ErrEmployeeNotFound))
			continue
		}
		if seen[emp.ID] {
			rowErrors = append(rowErrors, rowError(entry.EmployeeKey, payrollerrors.ErrDuplicateEntry))
			continue
		}
		seen[emp.ID] = true

		record, err := b.compute(calc, emp, entry.PayableDays)
		if err != nil {
			rowErrors = append(rowErrors, rowError(entry.EmployeeKey, err))
			continue
		}
		records = append(records, record)
	}
	return records, rowErrors
}

func rowError(key string, err error) RowError {
	return RowError{Employee: key, Message: apperror.ToHTTP(err).Message}
}

func (b *Batch) compute(calc *breakdown.Calculator, emp employee.Employee, rawDays string) (GeneratedPayrollRecord, error) {
	cfg, ok := b.Configs[emp.ID]
	if !ok {
		return GeneratedPayrollRecord{}, payrollerrors.ErrNoPayrollConfig
	}
	items := b.Items[cfg.StructureID]
	if len(items) == 0 {
		return GeneratedPayrollRecord{}, breakdownerrors.ErrNoStructureItems
	}
	days, err := attendance.ParsePayableDays(rawDays, b.TotalDays)
	if err != nil {
		return GeneratedPayrollRecord{}, err
	}

	in := breakdown.Input{
		GrossAnnual: cfg.GrossSalary,
		Overrides:   cfg.Overrides(),
		Items:       items,
		Settings:    b.Settings,
		State:       emp.State,
		Month:       b.Month,
		Rules:       b.Rules,
	}
	full, err := calc.Calculate(in)
	if err != nil {
		return GeneratedPayrollRecord{}, err
	}
	prorated, err := calc.Prorate(in, days, b.TotalDays)
	if err != nil {
		return GeneratedPayrollRecord{}, err
	}

	earnings := toPayLines(prorated.Earnings)
	deductions := toPayLines(prorated.Deductions)
	var adjustments []PayLine
	for _, a := range b.Adjustments[emp.ID] {
		line := a.Line()
		adjustments = append(adjustments, line)
		if a.ComponentType == salarycomponent.TypeDeduction {
			deductions = append(deductions, line)
		} else {
			earnings = append(earnings, line)
		}
	}

	totalEarnings := sumPayLines(earnings)
	totalDeductions := sumPayLines(deductions)

	return GeneratedPayrollRecord{
		ID:               uuid.New(),
		OrganizationID:   b.OrganizationID,
		AdminID:          b.AdminID,
		EmployeeID:       emp.ID,
		Month:            b.Month,
		Year:             b.Year,
		PayableDays:      days,
		TotalDaysInMonth: b.TotalDays,
		GrossSalary:      prorated.GrossMonthly,
		BasicSalary:      prorated.Basic,
		Earnings:         datatypes.NewJSONSlice(earnings),
		Deductions:       datatypes.NewJSONSlice(deductions),
		TotalEarnings:    totalEarnings,
		TotalDeductions:  totalDeductions,
		NetPay:           totalEarnings.Sub(totalDeductions),
		CalculationBreakdown: datatypes.NewJSONType(CalculationSnapshot{
			ConfigID:      cfg.ID,
			StructureID:   cfg.StructureID,
			EmployeeState: emp.State,
			GrossAnnual:   cfg.GrossSalary,
			PayableDays:   days,
			TotalDays:     b.TotalDays,
			ProrataFactor: prorated.ProrataFactor,
			FullMonth:     full,
			Prorated:      prorated,
			Adjustments:   adjustments,
		}),
		GeneratedAt: b.GeneratedAt,
		CreatedAt:   b.GeneratedAt,
		UpdatedAt:   b.GeneratedAt,
	}, nil
}

func toPayLines(lines []breakdown.Line) []PayLine {
	out := make([]PayLine, len(lines))
	for i, l := range lines {
		out[i] = PayLine{Code: l.Code, Name: l.Name, Amount: l.Amount, Type: l.CalculationType}
	}
	return out
}

func sumPayLines(lines []PayLine) decimal.Decimal {
	amounts := make([]decimal.Decimal, len(lines))
	for i, l := range lines {
		amounts[i] = l.Amount
	}
	return money.Sum(amounts...)
}
