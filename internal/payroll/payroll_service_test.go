package payroll_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-hrms/internal/attendance"
	employeeMock "go-hrms/internal/employee/mock"
	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	outboxMock "go-hrms/internal/messaging/kafka/mock"
	"go-hrms/internal/payroll"
	payrollerrors "go-hrms/internal/payroll/errors"
	"go-hrms/internal/payrollconfig"
	"go-hrms/internal/salarycomponent"
	structureMock "go-hrms/internal/salarystructure/mock"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/statutory"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type fakeRepository struct {
	records     []payroll.GeneratedPayrollRecord
	upserted    []payroll.GeneratedPayrollRecord
	upsertErr   error
	adjustments []payroll.PayrollAdjustment
	created     *payroll.PayrollAdjustment
	deleted     []string
}

func (f *fakeRepository) WithTx(tx *sql.Tx) payroll.Repository { return f }

func (f *fakeRepository) UpsertRecords(ctx context.Context, records []payroll.GeneratedPayrollRecord) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = append(f.upserted, records...)
	return nil
}

func (f *fakeRepository) FindRecords(ctx context.Context, organizationID, adminID string, month, year int) ([]payroll.GeneratedPayrollRecord, error) {
	var out []payroll.GeneratedPayrollRecord
	for _, r := range f.records {
		if r.Month == month && r.Year == year && (adminID == "" || r.AdminID.String() == adminID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepository) FindRecordByID(ctx context.Context, organizationID, id string) (*payroll.GeneratedPayrollRecord, error) {
	for _, r := range f.records {
		if r.ID.String() == id {
			cp := r
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) CreateAdjustment(ctx context.Context, adjustment *payroll.PayrollAdjustment) error {
	f.created = adjustment
	return nil
}

func (f *fakeRepository) FindAdjustments(ctx context.Context, organizationID, adminID string, month, year int) ([]payroll.PayrollAdjustment, error) {
	return f.adjustments, nil
}

func (f *fakeRepository) DeleteAdjustment(ctx context.Context, organizationID, id string) error {
	for _, a := range f.adjustments {
		if a.ID.String() == id {
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeConfigs struct {
	payrollconfig.Repository
	configs map[uuid.UUID]payrollconfig.EmployeePayrollConfig
}

func (f fakeConfigs) FindEffective(ctx context.Context, organizationID string, employeeIDs []uuid.UUID, month, year int) (map[uuid.UUID]payrollconfig.EmployeePayrollConfig, error) {
	return f.configs, nil
}

type fakeStatutory struct {
	settings *statutory.OrganizationPayrollSettings
	rules    []statutory.ProfessionalTaxRule
}

func (f fakeStatutory) LoadSettings(ctx context.Context, organizationID string) (*statutory.OrganizationPayrollSettings, error) {
	return f.settings, nil
}

func (f fakeStatutory) RuleSetForStates(ctx context.Context, states []string) (statutory.RuleSet, error) {
	return statutory.NewRuleSet(f.rules), nil
}

type fakeAttendance struct {
	attendance.Repository
	sheet []attendance.AttendanceEntry
}

func (f fakeAttendance) FindSheet(ctx context.Context, organizationID, adminID string, month, year int) ([]attendance.AttendanceEntry, error) {
	return f.sheet, nil
}

type serviceDeps struct {
	fixture    batchFixture
	db         *sql.DB
	sqlMock    sqlmock.Sqlmock
	repo       *fakeRepository
	employees  *employeeMock.MockRepository
	structures *structureMock.MockRepository
	outbox     *outboxMock.MockOutboxRepository
	locker     payroll.Locker
	payslipDir string
	sheet      []attendance.AttendanceEntry
}

func newServiceDeps(t *testing.T) *serviceDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &serviceDeps{
		fixture:    newBatchFixture(),
		db:         db,
		sqlMock:    sqlMock,
		repo:       &fakeRepository{},
		employees:  employeeMock.NewMockRepository(ctrl),
		structures: structureMock.NewMockRepository(ctrl),
		outbox:     outboxMock.NewMockOutboxRepository(ctrl),
		locker:     payroll.NewLocalLocker(),
		payslipDir: t.TempDir(),
	}
}

func (d *serviceDeps) service(withOutbox bool) payroll.Service {
	deps := payroll.Dependencies{
		Employees:  d.employees,
		Configs:    fakeConfigs{configs: d.fixture.configs},
		Structures: d.structures,
		Statutory: fakeStatutory{
			settings: statutorySettings(d.fixture.organizationID),
			rules:    maharashtraRules(),
		},
		Attendance: fakeAttendance{sheet: d.sheet},
		Locker:     d.locker,
		Calculator: newCalculator(),
		PayslipDir: d.payslipDir,
	}
	if withOutbox {
		deps.Outbox = d.outbox
	}
	return payroll.NewService(d.db, d.repo, deps)
}

func (d *serviceDeps) expectPrefetch() {
	f := d.fixture
	d.employees.EXPECT().FindAll(gomock.Any(), f.organizationID.String(), f.adminID.String()).Return(f.employees, nil)
	d.structures.EXPECT().FindItemsByStructureIDs(gomock.Any(), gomock.Any()).Return(standardItems(f.structureID), nil)
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestPayrollService_Generate(t *testing.T) {
	t.Run("success publishes one event in the transaction", func(t *testing.T) {
		deps := newServiceDeps(t)
		f := deps.fixture
		ctx := contextutil.WithRequestID(context.Background(), "req-42")

		deps.expectPrefetch()
		expectTx(t, deps.sqlMock, true)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		var published kafka.OutboxEvent
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, event kafka.OutboxEvent) error {
				published = event
				return nil
			},
		)

		res, err := deps.service(true).Generate(ctx, f.organizationID.String(), f.adminID.String(), payroll.GenerateRequest{
			Month: 6,
			Year:  2026,
			Entries: []attendance.EntryInput{
				{EmployeeKey: "EMP-001", PayableDays: "15"},
				{EmployeeKey: "EMP-002", PayableDays: "30"},
			},
		})

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.Equal(t, 30, res.TotalDays)
		assert.Equal(t, 1, res.SuccessCount)
		assert.Equal(t, 1, res.ErrorCount)
		assert.Equal(t, "EMP-002", res.Errors[0].Employee)
		assert.Len(t, deps.repo.upserted, 1)

		assert.Equal(t, events.PayrollGeneratedTopic, published.Topic)
		assert.Equal(t, "req-42", published.RequestID)
		assert.Equal(t, f.adminID.String(), published.AggregateID)
		var event events.PayrollGeneratedEvent
		assert.NoError(t, json.Unmarshal(published.Payload, &event))
		assert.Equal(t, []string{f.employees[0].ID.String()}, event.EmployeeIDs)
		assert.Equal(t, 6, event.Month)
	})

	t.Run("falls back to the stored sheet", func(t *testing.T) {
		deps := newServiceDeps(t)
		f := deps.fixture
		deps.sheet = []attendance.AttendanceEntry{
			{EmployeeKey: "EMP-001", PayableDays: "30"},
			{EmployeeKey: "EMP-004", PayableDays: "29.5"},
		}

		deps.expectPrefetch()
		expectTx(t, deps.sqlMock, true)

		res, err := deps.service(false).Generate(context.Background(), f.organizationID.String(), f.adminID.String(), payroll.GenerateRequest{Month: 6, Year: 2026})

		assert.NoError(t, err)
		assert.Equal(t, 2, res.SuccessCount)
		assert.Empty(t, res.Errors)
		assert.Len(t, deps.repo.upserted, 2)
	})

	t.Run("no attendance", func(t *testing.T) {
		deps := newServiceDeps(t)
		f := deps.fixture

		_, err := deps.service(false).Generate(context.Background(), f.organizationID.String(), f.adminID.String(), payroll.GenerateRequest{Month: 6, Year: 2026})

		assert.ErrorIs(t, err, payrollerrors.ErrNoAttendance)
		assert.Equal(t, 422, apperror.ToHTTP(err).Status)
	})

	t.Run("concurrent run for the same period is rejected", func(t *testing.T) {
		deps := newServiceDeps(t)
		f := deps.fixture
		release, err := deps.locker.Acquire(context.Background(), payroll.GenerationLockKey(f.organizationID.String(), f.adminID.String(), 6, 2026), time.Minute)
		assert.NoError(t, err)
		defer release()

		_, err = deps.service(false).Generate(context.Background(), f.organizationID.String(), f.adminID.String(), payroll.GenerateRequest{
			Month:   6,
			Year:    2026,
			Entries: []attendance.EntryInput{{EmployeeKey: "EMP-001", PayableDays: "30"}},
		})

		assert.ErrorIs(t, err, payrollerrors.ErrGenerationInProgress)
		assert.Equal(t, 409, apperror.ToHTTP(err).Status)
	})

	t.Run("lock is released after the run", func(t *testing.T) {
		deps := newServiceDeps(t)
		f := deps.fixture
		svc := deps.service(false)
		req := payroll.GenerateRequest{
			Month:   6,
			Year:    2026,
			Entries: []attendance.EntryInput{{EmployeeKey: "EMP-404", PayableDays: "30"}},
		}

		for i := 0; i < 2; i++ {
			deps.expectPrefetch()
			res, err := svc.Generate(context.Background(), f.organizationID.String(), f.adminID.String(), req)
			assert.NoError(t, err)
			assert.Equal(t, 0, res.SuccessCount)
			assert.Equal(t, 1, res.ErrorCount)
		}
		assert.Empty(t, deps.repo.upserted)
	})

	t.Run("upsert failure rolls back", func(t *testing.T) {
		deps := newServiceDeps(t)
		f := deps.fixture
		deps.repo.upsertErr = errors.New("db down")

		deps.expectPrefetch()
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service(true).Generate(context.Background(), f.organizationID.String(), f.adminID.String(), payroll.GenerateRequest{
			Month:   6,
			Year:    2026,
			Entries: []attendance.EntryInput{{EmployeeKey: "EMP-001", PayableDays: "30"}},
		})

		assert.EqualError(t, err, "db down")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid period", func(t *testing.T) {
		deps := newServiceDeps(t)

		_, err := deps.service(false).Generate(context.Background(), uuid.NewString(), uuid.NewString(), payroll.GenerateRequest{Month: 13, Year: 2026})

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriod)
	})
}

func TestPayrollService_AddAdjustment(t *testing.T) {
	ctx := context.Background()

	t.Run("total is quantity times unit amount", func(t *testing.T) {
		deps := newServiceDeps(t)
		f := deps.fixture
		emp := f.employees[0]
		qty := d("3")

		deps.employees.EXPECT().FindByID(ctx, f.organizationID.String(), emp.ID.String()).Return(&emp, nil)

		resp, err := deps.service(false).AddAdjustment(ctx, f.organizationID.String(), f.adminID.String(), payroll.CreateAdjustmentRequest{
			EmployeeID:    emp.ID.String(),
			Month:         6,
			Year:          2026,
			ComponentType: salarycomponent.TypeEarning,
			Name:          "Overtime",
			Quantity:      &qty,
			UnitAmount:    d("1250.50"),
		})

		assert.NoError(t, err)
		assertAmount(t, "3751.50", resp.TotalAmount)
		assert.Equal(t, f.adminID, deps.repo.created.AdminID)
	})

	t.Run("quantity defaults to one", func(t *testing.T) {
		deps := newServiceDeps(t)
		f := deps.fixture
		emp := f.employees[0]

		deps.employees.EXPECT().FindByID(ctx, f.organizationID.String(), emp.ID.String()).Return(&emp, nil)

		resp, err := deps.service(false).AddAdjustment(ctx, f.organizationID.String(), f.adminID.String(), payroll.CreateAdjustmentRequest{
			EmployeeID:    emp.ID.String(),
			Month:         6,
			Year:          2026,
			ComponentType: salarycomponent.TypeDeduction,
			Name:          "Advance recovery",
			UnitAmount:    d("2000"),
		})

		assert.NoError(t, err)
		assertAmount(t, "1", resp.Quantity)
		assertAmount(t, "2000", resp.TotalAmount)
	})

	t.Run("employee of another admin", func(t *testing.T) {
		deps := newServiceDeps(t)
		f := deps.fixture
		emp := f.employees[0]
		emp.AdminID = uuid.New()

		deps.employees.EXPECT().FindByID(ctx, f.organizationID.String(), emp.ID.String()).Return(&emp, nil)

		_, err := deps.service(false).AddAdjustment(ctx, f.organizationID.String(), f.adminID.String(), payroll.CreateAdjustmentRequest{
			EmployeeID:    emp.ID.String(),
			Month:         6,
			Year:          2026,
			ComponentType: salarycomponent.TypeEarning,
			Name:          "Bonus",
			UnitAmount:    d("100"),
		})

		assert.ErrorIs(t, err, payrollerrors.ErrEmployeeNotFound)
		assert.Nil(t, deps.repo.created)
	})

	t.Run("negative amount", func(t *testing.T) {
		deps := newServiceDeps(t)
		f := deps.fixture

		_, err := deps.service(false).AddAdjustment(ctx, f.organizationID.String(), f.adminID.String(), payroll.CreateAdjustmentRequest{
			EmployeeID:    uuid.NewString(),
			Month:         6,
			Year:          2026,
			ComponentType: salarycomponent.TypeEarning,
			Name:          "Bonus",
			UnitAmount:    d("-1"),
		})

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidAdjustmentAmount)
	})

	t.Run("unknown component type", func(t *testing.T) {
		deps := newServiceDeps(t)
		f := deps.fixture

		_, err := deps.service(false).AddAdjustment(ctx, f.organizationID.String(), f.adminID.String(), payroll.CreateAdjustmentRequest{
			EmployeeID:    uuid.NewString(),
			Month:         6,
			Year:          2026,
			ComponentType: "reimbursement",
			Name:          "Fuel",
			UnitAmount:    decimal.NewFromInt(10),
		})

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidAdjustmentType)
	})
}

func TestPayrollService_DeleteAdjustment(t *testing.T) {
	deps := newServiceDeps(t)
	f := deps.fixture
	existing := f.adjustment(f.employees[0], salarycomponent.TypeEarning, "Bonus", "100")
	deps.repo.adjustments = []payroll.PayrollAdjustment{existing}
	svc := deps.service(false)

	assert.NoError(t, svc.DeleteAdjustment(context.Background(), f.organizationID.String(), existing.ID.String()))
	assert.Equal(t, []string{existing.ID.String()}, deps.repo.deleted)

	err := svc.DeleteAdjustment(context.Background(), f.organizationID.String(), uuid.NewString())
	assert.ErrorIs(t, err, payrollerrors.ErrAdjustmentNotFound)

	err = svc.DeleteAdjustment(context.Background(), f.organizationID.String(), "not-a-uuid")
	assert.ErrorIs(t, err, payrollerrors.ErrAdjustmentNotFound)
}

// generatedRecords runs the fixture batch so read paths see realistic rows.
func generatedRecords(t *testing.T, f batchFixture) []payroll.GeneratedPayrollRecord {
	t.Helper()
	records, rowErrors := f.batch().Run(newCalculator(), []attendance.EntryInput{
		{EmployeeKey: "EMP-001", PayableDays: "15"},
		{EmployeeKey: "EMP-004", PayableDays: "30"},
	})
	assert.Empty(t, rowErrors)
	return records
}

func TestPayrollService_Records(t *testing.T) {
	ctx := context.Background()
	deps := newServiceDeps(t)
	f := deps.fixture
	deps.repo.records = generatedRecords(t, f)
	svc := deps.service(false)

	t.Run("list", func(t *testing.T) {
		resp, err := svc.List(ctx, f.organizationID.String(), "", 6, 2026)
		assert.NoError(t, err)
		assert.Len(t, resp, 2)

		resp, err = svc.List(ctx, f.organizationID.String(), "", 5, 2026)
		assert.NoError(t, err)
		assert.Empty(t, resp)
	})

	t.Run("breakdown snapshot", func(t *testing.T) {
		snapshot, err := svc.GetBreakdown(ctx, f.organizationID.String(), deps.repo.records[0].ID.String())
		assert.NoError(t, err)
		assertAmount(t, "0.5", snapshot.ProrataFactor)
		assertAmount(t, "20000", snapshot.FullMonth.GrossMonthly)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetByID(ctx, f.organizationID.String(), uuid.NewString())
		assert.ErrorIs(t, err, payrollerrors.ErrRecordNotFound)
		assert.Equal(t, "Payroll record not found", apperror.ToHTTP(err).Message)
	})

	t.Run("payslip download", func(t *testing.T) {
		record := deps.repo.records[0]
		emp := f.employees[0]
		deps.employees.EXPECT().FindByID(ctx, f.organizationID.String(), emp.ID.String()).Return(&emp, nil)

		pdf, filename, err := svc.DownloadPayslip(ctx, f.organizationID.String(), record.ID.String())

		assert.NoError(t, err)
		assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
		assert.Equal(t, "payslip_EMP-001_2026-06.pdf", filename)
	})

	t.Run("register export", func(t *testing.T) {
		deps.employees.EXPECT().FindByIDs(ctx, f.organizationID.String(), gomock.Any()).Return(f.employees, nil)

		data, err := svc.ExportRegister(ctx, f.organizationID.String(), "", 6, 2026)
		assert.NoError(t, err)

		book, err := excelize.OpenReader(bytes.NewReader(data))
		assert.NoError(t, err)
		defer book.Close()
		rows, err := book.GetRows(book.GetSheetName(0))
		assert.NoError(t, err)
		assert.Len(t, rows, 4)
		assert.Equal(t, "EMP-001", rows[1][0])
		assert.Equal(t, "Total", rows[3][0])
	})
}

func TestPayrollService_StorePayslips(t *testing.T) {
	deps := newServiceDeps(t)
	f := deps.fixture
	deps.repo.records = generatedRecords(t, f)
	ctx := context.Background()

	deps.employees.EXPECT().FindByIDs(ctx, f.organizationID.String(), gomock.Any()).Return(f.employees, nil)

	stored, err := deps.service(false).StorePayslips(ctx, events.PayrollGeneratedEvent{
		OrganizationID: f.organizationID.String(),
		AdminID:        f.adminID.String(),
		Month:          6,
		Year:           2026,
		EmployeeIDs:    []string{f.employees[3].ID.String()},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, stored)

	dir := filepath.Join(deps.payslipDir, f.organizationID.String(), "2026-06")
	files, err := os.ReadDir(dir)
	assert.NoError(t, err)
	if assert.Len(t, files, 1) {
		assert.Equal(t, "payslip_EMP-004_2026-06.pdf", files[0].Name())
	}
}
