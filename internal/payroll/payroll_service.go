package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go-hrms/internal/attendance"
	"go-hrms/internal/breakdown"
	"go-hrms/internal/employee"
	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	payrollerrors "go-hrms/internal/payroll/errors"
	"go-hrms/internal/payrollconfig"
	"go-hrms/internal/salarycomponent"
	"go-hrms/internal/salarystructure"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/money"
	"go-hrms/internal/statutory"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultLockTTL = 5 * time.Minute

// StatutorySource supplies the organization settings and the professional
// tax rules a batch needs.
type StatutorySource interface {
	LoadSettings(ctx context.Context, organizationID string) (*statutory.OrganizationPayrollSettings, error)
	RuleSetForStates(ctx context.Context, states []string) (statutory.RuleSet, error)
}

// Dependencies are the collaborators a generation run reads from. Outbox
// may be nil, in which case no event is published.
type Dependencies struct {
	Employees  employee.Repository
	Configs    payrollconfig.Repository
	Structures salarystructure.Repository
	Statutory  StatutorySource
	Attendance attendance.Repository
	Outbox     kafka.OutboxRepository
	Locker     Locker
	Calculator *breakdown.Calculator
	LockTTL    time.Duration
	PayslipDir string
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Generate(ctx context.Context, organizationID, adminID string, req GenerateRequest) (GenerateResult, error)
	List(ctx context.Context, organizationID, adminID string, month, year int) ([]RecordResponse, error)
	GetByID(ctx context.Context, organizationID, id string) (RecordResponse, error)
	GetBreakdown(ctx context.Context, organizationID, id string) (CalculationSnapshot, error)
	AddAdjustment(ctx context.Context, organizationID, adminID string, req CreateAdjustmentRequest) (AdjustmentResponse, error)
	ListAdjustments(ctx context.Context, organizationID, adminID string, month, year int) ([]AdjustmentResponse, error)
	DeleteAdjustment(ctx context.Context, organizationID, id string) error
	ExportRegister(ctx context.Context, organizationID, adminID string, month, year int) ([]byte, error)
	DownloadPayslip(ctx context.Context, organizationID, id string) ([]byte, string, error)
	StorePayslips(ctx context.Context, event events.PayrollGeneratedEvent) (int, error)
}

type service struct {
	db   *sql.DB
	repo Repository
	deps Dependencies
	now  func() time.Time

	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, deps Dependencies, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	if deps.Locker == nil {
		deps.Locker = NewLocalLocker()
	}
	if deps.LockTTL <= 0 {
		deps.LockTTL = defaultLockTTL
	}
	if deps.Calculator == nil {
		deps.Calculator = breakdown.NewCalculator(statutory.DefaultPolicy())
	}
	return &service{
		db:     db,
		repo:   repo,
		deps:   deps,
		now:    time.Now,
		logger: l,
	}
}

// Generate computes and stores one record per attendance entry for the
// admin and period. Only one run per admin and period may be in flight.
func (s *service) Generate(
	ctx context.Context,
	organizationID, adminID string,
	req GenerateRequest,
) (GenerateResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if !attendance.ValidPeriod(req.Month, req.Year) {
		return GenerateResult{}, payrollerrors.ErrInvalidPeriod
	}
	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return GenerateResult{}, apperror.InvalidField("organization_id")
	}
	adminUUID, err := uuid.Parse(adminID)
	if err != nil {
		return GenerateResult{}, apperror.InvalidField("admin_id")
	}

	release, err := s.deps.Locker.Acquire(ctx, GenerationLockKey(organizationID, adminID, req.Month, req.Year), s.deps.LockTTL)
	if err != nil {
		if !errors.Is(err, payrollerrors.ErrGenerationInProgress) {
			log.Error("acquire payroll generation lock failed", zap.Error(err))
		}
		return GenerateResult{}, err
	}
	defer release()

	entries := req.Entries
	if len(entries) == 0 {
		sheet, err := s.deps.Attendance.FindSheet(ctx, organizationID, adminID, req.Month, req.Year)
		if err != nil {
			return GenerateResult{}, err
		}
		if len(sheet) == 0 {
			return GenerateResult{}, payrollerrors.ErrNoAttendance
		}
		entries = attendance.ToInputs(sheet)
	}

	batch, err := s.prefetch(ctx, orgUUID, adminUUID, req.Month, req.Year)
	if err != nil {
		log.Error("prefetch payroll batch failed", zap.String("admin_id", adminID), zap.Error(err))
		return GenerateResult{}, err
	}

	records, rowErrors := batch.Run(s.deps.Calculator, entries)
	if len(records) > 0 {
		if err := s.persist(ctx, batch, records); err != nil {
			log.Error("persist payroll records failed", zap.String("admin_id", adminID), zap.Error(err))
			return GenerateResult{}, err
		}
	}

	log.Info("payroll generated",
		zap.String("organization_id", organizationID),
		zap.String("admin_id", adminID),
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
		zap.Int("success_count", len(records)),
		zap.Int("error_count", len(rowErrors)),
	)

	if rowErrors == nil {
		rowErrors = []RowError{}
	}
	return GenerateResult{
		Month:        req.Month,
		Year:         req.Year,
		TotalDays:    batch.TotalDays,
		SuccessCount: len(records),
		ErrorCount:   len(rowErrors),
		Errors:       rowErrors,
	}, nil
}

// prefetch loads everything the run reads with one query per source.
func (s *service) prefetch(ctx context.Context, orgID, adminID uuid.UUID, month, year int) (*Batch, error) {
	organizationID := orgID.String()

	employees, err := s.deps.Employees.FindAll(ctx, organizationID, adminID.String())
	if err != nil {
		return nil, err
	}
	employeeIDs := make([]uuid.UUID, 0, len(employees))
	states := make([]string, 0, len(employees))
	for _, emp := range employees {
		employeeIDs = append(employeeIDs, emp.ID)
		states = append(states, emp.State)
	}

	configs, err := s.deps.Configs.FindEffective(ctx, organizationID, employeeIDs, month, year)
	if err != nil {
		return nil, err
	}
	seen := make(map[uuid.UUID]bool, len(configs))
	structureIDs := make([]uuid.UUID, 0, len(configs))
	for _, cfg := range configs {
		if !seen[cfg.StructureID] {
			seen[cfg.StructureID] = true
			structureIDs = append(structureIDs, cfg.StructureID)
		}
	}

	var items []salarystructure.SalaryStructureItem
	if len(structureIDs) > 0 {
		items, err = s.deps.Structures.FindItemsByStructureIDs(ctx, structureIDs)
		if err != nil {
			return nil, err
		}
	}

	settings, err := s.deps.Statutory.LoadSettings(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	rules, err := s.deps.Statutory.RuleSetForStates(ctx, states)
	if err != nil {
		return nil, err
	}

	adjustments, err := s.repo.FindAdjustments(ctx, organizationID, adminID.String(), month, year)
	if err != nil {
		return nil, err
	}

	return &Batch{
		OrganizationID: orgID,
		AdminID:        adminID,
		Month:          month,
		Year:           year,
		TotalDays:      attendance.DaysInMonth(year, month),
		Directory:      employee.NewDirectory(employees),
		Configs:        configs,
		Items:          GroupItems(items),
		Settings:       settings,
		Rules:          rules,
		Adjustments:    GroupAdjustments(adjustments),
		GeneratedAt:    s.now().UTC(),
	}, nil
}

// persist upserts the batch and enqueues the generated event in the same
// transaction.
func (s *service) persist(ctx context.Context, batch *Batch, records []GeneratedPayrollRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).UpsertRecords(ctx, records); err != nil {
		return mapRepositoryError(err)
	}

	if s.deps.Outbox != nil {
		if err := s.enqueueGenerated(ctx, tx, batch, records); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *service) enqueueGenerated(ctx context.Context, tx *sql.Tx, batch *Batch, records []GeneratedPayrollRecord) error {
	rid := contextutil.GetRequestID(ctx)
	employeeIDs := make([]string, len(records))
	for i, r := range records {
		employeeIDs[i] = r.EmployeeID.String()
	}

	payload, err := json.Marshal(events.PayrollGeneratedEvent{
		EventType:      events.PayrollGeneratedEventType,
		RequestID:      rid,
		OrganizationID: batch.OrganizationID.String(),
		AdminID:        batch.AdminID.String(),
		Month:          batch.Month,
		Year:           batch.Year,
		EmployeeIDs:    employeeIDs,
		OccurredAt:     batch.GeneratedAt,
	})
	if err != nil {
		return err
	}

	return s.deps.Outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "payroll_period",
		AggregateID:   batch.AdminID.String(),
		EventType:     events.PayrollGeneratedEventType,
		Topic:         events.PayrollGeneratedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) List(ctx context.Context, organizationID, adminID string, month, year int) ([]RecordResponse, error) {
	if !attendance.ValidPeriod(month, year) {
		return nil, payrollerrors.ErrInvalidPeriod
	}
	records, err := s.repo.FindRecords(ctx, organizationID, adminID, month, year)
	if err != nil {
		return nil, err
	}

	resp := make([]RecordResponse, len(records))
	for i, r := range records {
		resp[i] = mapRecordToResponse(r)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, organizationID, id string) (RecordResponse, error) {
	record, err := s.findRecord(ctx, organizationID, id)
	if err != nil {
		return RecordResponse{}, err
	}
	return mapRecordToResponse(*record), nil
}

func (s *service) GetBreakdown(ctx context.Context, organizationID, id string) (CalculationSnapshot, error) {
	record, err := s.findRecord(ctx, organizationID, id)
	if err != nil {
		return CalculationSnapshot{}, err
	}
	return record.CalculationBreakdown.Data(), nil
}

func (s *service) findRecord(ctx context.Context, organizationID, id string) (*GeneratedPayrollRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, payrollerrors.ErrRecordNotFound
	}
	record, err := s.repo.FindRecordByID(ctx, organizationID, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return record, nil
}

// AddAdjustment records an ad-hoc line picked up by the next generation run
// for that period. Total is quantity times unit amount, quantity defaulting
// to one.
func (s *service) AddAdjustment(
	ctx context.Context,
	organizationID, adminID string,
	req CreateAdjustmentRequest,
) (AdjustmentResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if !attendance.ValidPeriod(req.Month, req.Year) {
		return AdjustmentResponse{}, payrollerrors.ErrInvalidPeriod
	}
	if req.ComponentType != salarycomponent.TypeEarning && req.ComponentType != salarycomponent.TypeDeduction {
		return AdjustmentResponse{}, payrollerrors.ErrInvalidAdjustmentType
	}
	quantity := decimal.NewFromInt(1)
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity.IsNegative() || req.UnitAmount.IsNegative() {
		return AdjustmentResponse{}, payrollerrors.ErrInvalidAdjustmentAmount
	}

	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return AdjustmentResponse{}, apperror.InvalidField("organization_id")
	}
	adminUUID, err := uuid.Parse(adminID)
	if err != nil {
		return AdjustmentResponse{}, apperror.InvalidField("admin_id")
	}

	emp, err := s.deps.Employees.FindByID(ctx, organizationID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AdjustmentResponse{}, payrollerrors.ErrEmployeeNotFound
		}
		return AdjustmentResponse{}, err
	}
	if emp.AdminID != adminUUID {
		return AdjustmentResponse{}, payrollerrors.ErrEmployeeNotFound
	}

	now := s.now()
	adjustment := &PayrollAdjustment{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		AdminID:        adminUUID,
		EmployeeID:     emp.ID,
		Month:          req.Month,
		Year:           req.Year,
		ComponentType:  req.ComponentType,
		Name:           req.Name,
		Quantity:       quantity,
		UnitAmount:     money.Round(req.UnitAmount),
		TotalAmount:    money.Round(quantity.Mul(req.UnitAmount)),
		Notes:          req.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.CreateAdjustment(ctx, adjustment); err != nil {
		log.Error("create payroll adjustment failed", zap.String("employee_id", req.EmployeeID), zap.Error(err))
		return AdjustmentResponse{}, err
	}

	return mapAdjustmentToResponse(*adjustment), nil
}

func (s *service) ListAdjustments(ctx context.Context, organizationID, adminID string, month, year int) ([]AdjustmentResponse, error) {
	if !attendance.ValidPeriod(month, year) {
		return nil, payrollerrors.ErrInvalidPeriod
	}
	adjustments, err := s.repo.FindAdjustments(ctx, organizationID, adminID, month, year)
	if err != nil {
		return nil, err
	}

	resp := make([]AdjustmentResponse, len(adjustments))
	for i, a := range adjustments {
		resp[i] = mapAdjustmentToResponse(a)
	}
	return resp, nil
}

func (s *service) DeleteAdjustment(ctx context.Context, organizationID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return payrollerrors.ErrAdjustmentNotFound
	}
	if err := s.repo.DeleteAdjustment(ctx, organizationID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return payrollerrors.ErrAdjustmentNotFound
		}
		return err
	}
	return nil
}

// ExportRegister renders the period's records as an xlsx workbook.
func (s *service) ExportRegister(ctx context.Context, organizationID, adminID string, month, year int) ([]byte, error) {
	if !attendance.ValidPeriod(month, year) {
		return nil, payrollerrors.ErrInvalidPeriod
	}
	records, err := s.repo.FindRecords(ctx, organizationID, adminID, month, year)
	if err != nil {
		return nil, err
	}
	directory, err := s.directoryFor(ctx, organizationID, records)
	if err != nil {
		return nil, err
	}

	f, err := BuildRegister(month, year, records, directory)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *service) DownloadPayslip(ctx context.Context, organizationID, id string) ([]byte, string, error) {
	record, err := s.findRecord(ctx, organizationID, id)
	if err != nil {
		return nil, "", err
	}

	emp := employee.Employee{ID: record.EmployeeID}
	found, err := s.deps.Employees.FindByID(ctx, organizationID, record.EmployeeID.String())
	switch {
	case err == nil:
		emp = *found
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, "", err
	}

	pdf, err := RenderPayslip(*record, emp)
	if err != nil {
		return nil, "", err
	}
	return pdf, PayslipFileName(*record, emp), nil
}

// StorePayslips writes a PDF per record of a committed run under
// <payslip dir>/<organization>/<yyyy-mm>/. Existing files are replaced.
func (s *service) StorePayslips(ctx context.Context, event events.PayrollGeneratedEvent) (int, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	records, err := s.repo.FindRecords(ctx, event.OrganizationID, event.AdminID, event.Month, event.Year)
	if err != nil {
		return 0, err
	}
	if len(event.EmployeeIDs) > 0 {
		wanted := make(map[string]bool, len(event.EmployeeIDs))
		for _, id := range event.EmployeeIDs {
			wanted[id] = true
		}
		filtered := records[:0]
		for _, r := range records {
			if wanted[r.EmployeeID.String()] {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}
	if len(records) == 0 {
		return 0, nil
	}

	directory, err := s.directoryFor(ctx, event.OrganizationID, records)
	if err != nil {
		return 0, err
	}

	dir := filepath.Join(s.deps.PayslipDir, event.OrganizationID, fmt.Sprintf("%04d-%02d", event.Year, event.Month))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, storageError(err)
	}

	stored := 0
	for _, record := range records {
		emp, ok := directory.Resolve(record.EmployeeID.String())
		if !ok {
			emp = employee.Employee{ID: record.EmployeeID}
		}
		pdf, err := RenderPayslip(record, emp)
		if err != nil {
			return stored, err
		}
		path := filepath.Join(dir, PayslipFileName(record, emp))
		if err := os.WriteFile(path, pdf, 0o644); err != nil {
			return stored, storageError(err)
		}
		stored++
	}

	log.Info("payslips written", zap.String("dir", dir), zap.Int("count", stored))
	return stored, nil
}

func (s *service) directoryFor(ctx context.Context, organizationID string, records []GeneratedPayrollRecord) (employee.Directory, error) {
	ids := make([]uuid.UUID, len(records))
	for i, r := range records {
		ids[i] = r.EmployeeID
	}
	employees, err := s.deps.Employees.FindByIDs(ctx, organizationID, ids)
	if err != nil {
		return employee.Directory{}, err
	}
	return employee.NewDirectory(employees), nil
}

// PayslipFileName prefers the employee number and falls back to the id.
func PayslipFileName(record GeneratedPayrollRecord, emp employee.Employee) string {
	key := emp.EmployeeNumber
	if key == "" {
		key = record.EmployeeID.String()
	}
	return fmt.Sprintf("payslip_%s_%04d-%02d.pdf", key, record.Year, record.Month)
}

func mapRecordToResponse(r GeneratedPayrollRecord) RecordResponse {
	return RecordResponse{
		ID:               r.ID.String(),
		AdminID:          r.AdminID.String(),
		EmployeeID:       r.EmployeeID.String(),
		Month:            r.Month,
		Year:             r.Year,
		PayableDays:      r.PayableDays,
		TotalDaysInMonth: r.TotalDaysInMonth,
		GrossSalary:      r.GrossSalary,
		BasicSalary:      r.BasicSalary,
		Earnings:         []PayLine(r.Earnings),
		Deductions:       []PayLine(r.Deductions),
		TotalEarnings:    r.TotalEarnings,
		TotalDeductions:  r.TotalDeductions,
		NetPay:           r.NetPay,
		GeneratedAt:      r.GeneratedAt.Format(time.RFC3339),
	}
}

func mapAdjustmentToResponse(a PayrollAdjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:            a.ID.String(),
		EmployeeID:    a.EmployeeID.String(),
		Month:         a.Month,
		Year:          a.Year,
		ComponentType: a.ComponentType,
		Name:          a.Name,
		Quantity:      a.Quantity,
		UnitAmount:    a.UnitAmount,
		TotalAmount:   a.TotalAmount,
		Notes:         a.Notes,
	}
}
