package payroll_test

import (
	"testing"
	"time"

	"go-hrms/internal/attendance"
	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/breakdown"
	breakdownerrors "go-hrms/internal/breakdown/errors"
	"go-hrms/internal/employee"
	"go-hrms/internal/payroll"
	payrollerrors "go-hrms/internal/payroll/errors"
	"go-hrms/internal/payrollconfig"
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

func assertAmount(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.Equal(t, d(expected).StringFixed(2), actual.StringFixed(2))
}

func findLine(lines []payroll.PayLine, name string) (payroll.PayLine, bool) {
	for _, l := range lines {
		if l.Name == name {
			return l, true
		}
	}
	return payroll.PayLine{}, false
}

// standardItems is BASIC 50% + SPECIAL_ALLOWANCE + PF, ESI and PT.
func standardItems(structureID uuid.UUID) []salarystructure.SalaryStructureItem {
	pf, esi, pt := salarycomponent.StatutoryPF, salarycomponent.StatutoryESI, salarycomponent.StatutoryPT
	fifty, zero := d("50"), d("0")
	rows := []struct {
		code, componentType string
		statutoryType       *string
		calculationType     string
		value               *decimal.Decimal
	}{
		{"BASIC", salarycomponent.TypeEarning, nil, salarystructure.CalcPercentage, &fifty},
		{"SPECIAL_ALLOWANCE", salarycomponent.TypeEarning, nil, salarystructure.CalcFixed, &zero},
		{"PF_EMP", salarycomponent.TypeDeduction, &pf, salarystructure.CalcAuto, nil},
		{"ESI_EMP", salarycomponent.TypeDeduction, &esi, salarystructure.CalcAuto, nil},
		{"PT", salarycomponent.TypeDeduction, &pt, salarystructure.CalcAuto, nil},
	}

	items := make([]salarystructure.SalaryStructureItem, 0, len(rows))
	for i, r := range rows {
		componentID := uuid.New()
		items = append(items, salarystructure.SalaryStructureItem{
			ID:          uuid.New(),
			StructureID: structureID,
			ComponentID: componentID,
			Component: salarycomponent.SalaryComponent{
				ID: componentID, Code: r.code, Name: r.code, ComponentType: r.componentType, StatutoryType: r.statutoryType, IsActive: true,
			},
			CalculationType: r.calculationType,
			Value:           r.value,
			Order:           i + 1,
		})
	}
	return items
}

func statutorySettings(organizationID uuid.UUID) *statutory.OrganizationPayrollSettings {
	s := statutory.DefaultSettings(organizationID)
	s.PFEnabled = true
	s.ESIEnabled = true
	s.PTEnabled = true
	return &s
}

func maharashtraRules() []statutory.ProfessionalTaxRule {
	upper := d("10000")
	lower := d("7500")
	return []statutory.ProfessionalTaxRule{
		{State: "Maharashtra", SalaryFrom: d("0"), SalaryTo: &lower, TaxAmount: d("0"), IsActive: true},
		{State: "Maharashtra", SalaryFrom: d("7501"), SalaryTo: &upper, TaxAmount: d("175"), IsActive: true},
		{State: "Maharashtra", SalaryFrom: d("10001"), TaxAmount: d("200"), IsActive: true},
	}
}

type batchFixture struct {
	organizationID uuid.UUID
	adminID        uuid.UUID
	structureID    uuid.UUID
	emptyStructure uuid.UUID
	employees      []employee.Employee
	configs        map[uuid.UUID]payrollconfig.EmployeePayrollConfig
}

// newBatchFixture has four employees: EMP-001 and EMP-004 fully configured,
// EMP-002 without a config and EMP-003 on a structure with no items.
func newBatchFixture() batchFixture {
	f := batchFixture{
		organizationID: uuid.New(),
		adminID:        uuid.New(),
		structureID:    uuid.New(),
		emptyStructure: uuid.New(),
		configs:        map[uuid.UUID]payrollconfig.EmployeePayrollConfig{},
	}
	for i, number := range []string{"EMP-001", "EMP-002", "EMP-003", "EMP-004"} {
		emp := employee.Employee{
			ID:             uuid.New(),
			OrganizationID: f.organizationID,
			AdminID:        f.adminID,
			EmployeeNumber: number,
			FullName:       "Employee " + number,
			State:          "Maharashtra",
			IsActive:       true,
		}
		f.employees = append(f.employees, emp)

		structureID := f.structureID
		switch i {
		case 1:
			continue
		case 2:
			structureID = f.emptyStructure
		}
		f.configs[emp.ID] = payrollconfig.EmployeePayrollConfig{
			ID:             uuid.New(),
			OrganizationID: f.organizationID,
			AdminID:        f.adminID,
			EmployeeID:     emp.ID,
			StructureID:    structureID,
			GrossSalary:    d("240000"),
			EffectiveMonth: 1,
			EffectiveYear:  2026,
			IsActive:       true,
		}
	}
	return f
}

func (f batchFixture) batch(adjustments ...payroll.PayrollAdjustment) *payroll.Batch {
	return &payroll.Batch{
		OrganizationID: f.organizationID,
		AdminID:        f.adminID,
		Month:          6,
		Year:           2026,
		TotalDays:      attendance.DaysInMonth(2026, 6),
		Directory:      employee.NewDirectory(f.employees),
		Configs:        f.configs,
		Items:          payroll.GroupItems(standardItems(f.structureID)),
		Settings:       statutorySettings(f.organizationID),
		Rules:          statutory.NewRuleSet(maharashtraRules()),
		Adjustments:    payroll.GroupAdjustments(adjustments),
		GeneratedAt:    time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (f batchFixture) adjustment(emp employee.Employee, componentType, name, amount string) payroll.PayrollAdjustment {
	return payroll.PayrollAdjustment{
		ID:             uuid.New(),
		OrganizationID: f.organizationID,
		AdminID:        f.adminID,
		EmployeeID:     emp.ID,
		Month:          6,
		Year:           2026,
		ComponentType:  componentType,
		Name:           name,
		Quantity:       d("1"),
		UnitAmount:     d(amount),
		TotalAmount:    d(amount),
	}
}

func newCalculator() *breakdown.Calculator {
	return breakdown.NewCalculator(statutory.DefaultPolicy())
}

func TestBatchRun_HalfMonth(t *testing.T) {
	f := newBatchFixture()
	emp := f.employees[0]

	records, rowErrors := f.batch().Run(newCalculator(), []attendance.EntryInput{
		{EmployeeKey: "emp-001", PayableDays: "15"},
	})

	assert.Empty(t, rowErrors)
	if !assert.Len(t, records, 1) {
		return
	}
	r := records[0]
	assert.Equal(t, emp.ID, r.EmployeeID)
	assert.Equal(t, f.adminID, r.AdminID)
	assert.Equal(t, 30, r.TotalDaysInMonth)
	assertAmount(t, "15", r.PayableDays)
	assertAmount(t, "10000", r.GrossSalary)
	assertAmount(t, "5000", r.BasicSalary)
	assertAmount(t, "10000", r.TotalEarnings)
	assertAmount(t, "850", r.TotalDeductions)
	assertAmount(t, "9150", r.NetPay)

	pt, ok := findLine(r.Deductions, "PT")
	assert.True(t, ok)
	assertAmount(t, "175", pt.Amount)
	assert.Equal(t, salarystructure.CalcAuto, pt.Type)

	snapshot := r.CalculationBreakdown.Data()
	assert.Equal(t, f.configs[emp.ID].ID, snapshot.ConfigID)
	assertAmount(t, "0.5", snapshot.ProrataFactor)
	fullPT, ok := snapshot.FullMonth.Line("PT")
	assert.True(t, ok)
	assertAmount(t, "200", fullPT.Amount)
	assertAmount(t, "18450", snapshot.FullMonth.NetPay)
}

func TestBatchRun_AdjustmentsAtFaceValue(t *testing.T) {
	f := newBatchFixture()
	emp := f.employees[0]
	b := f.batch(
		f.adjustment(emp, salarycomponent.TypeEarning, "Overtime", "500"),
		f.adjustment(emp, salarycomponent.TypeDeduction, "Fine", "100"),
	)

	records, rowErrors := b.Run(newCalculator(), []attendance.EntryInput{
		{EmployeeKey: emp.ID.String(), PayableDays: "15"},
	})

	assert.Empty(t, rowErrors)
	if !assert.Len(t, records, 1) {
		return
	}
	r := records[0]
	overtime, ok := findLine(r.Earnings, "Overtime")
	assert.True(t, ok)
	assertAmount(t, "500", overtime.Amount)
	assert.Equal(t, payroll.LineTypeAdjustment, overtime.Type)
	_, ok = findLine(r.Deductions, "Fine")
	assert.True(t, ok)

	assertAmount(t, "10000", r.GrossSalary)
	assertAmount(t, "10500", r.TotalEarnings)
	assertAmount(t, "950", r.TotalDeductions)
	assertAmount(t, "9550", r.NetPay)
	assert.Len(t, r.CalculationBreakdown.Data().Adjustments, 2)
}

func TestBatchRun_RowErrors(t *testing.T) {
	f := newBatchFixture()

	records, rowErrors := f.batch().Run(newCalculator(), []attendance.EntryInput{
		{EmployeeKey: "EMP-001", PayableDays: "30"},
		{EmployeeKey: f.employees[1].ID.String(), PayableDays: "30"},
		{EmployeeKey: "EMP-404", PayableDays: "10"},
		{EmployeeKey: "emp-001", PayableDays: "20"},
		{EmployeeKey: "EMP-003", PayableDays: "30"},
		{EmployeeKey: "EMP-004", PayableDays: "abc"},
		{EmployeeKey: "EMP-004", PayableDays: "31"},
	})

	assert.Len(t, records, 1)
	assertAmount(t, "20000", records[0].GrossSalary)

	assert.Equal(t, []payroll.RowError{
		{Employee: f.employees[1].ID.String(), Message: payrollerrors.ErrNoPayrollConfig.Message},
		{Employee: "EMP-404", Message: payrollerrors.ErrEmployeeNotFound.Message},
		{Employee: "emp-001", Message: payrollerrors.ErrDuplicateEntry.Message},
		{Employee: "EMP-003", Message: breakdownerrors.ErrNoStructureItems.Message},
		{Employee: "EMP-004", Message: attendanceerrors.ErrInvalidPayableDays.Message},
		{Employee: "EMP-004", Message: payrollerrors.ErrDuplicateEntry.Message},
	}, rowErrors)
}

func TestBatchRun_ZeroDays(t *testing.T) {
	f := newBatchFixture()

	records, rowErrors := f.batch().Run(newCalculator(), []attendance.EntryInput{
		{EmployeeKey: "EMP-001", PayableDays: "0"},
	})

	assert.Empty(t, rowErrors)
	if assert.Len(t, records, 1) {
		assertAmount(t, "0", records[0].GrossSalary)
		assertAmount(t, "0", records[0].NetPay)
	}
}
