package payrollconfig

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-hrms/internal/breakdown"
	"go-hrms/internal/employee"
	employeeerrors "go-hrms/internal/employee/errors"
	payrollconfigerrors "go-hrms/internal/payrollconfig/errors"
	"go-hrms/internal/salarystructure"
	salarystructureerrors "go-hrms/internal/salarystructure/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/money"
	"go-hrms/internal/statutory"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StatutorySource supplies organization settings and professional tax rules.
type StatutorySource interface {
	LoadSettings(ctx context.Context, organizationID string) (*statutory.OrganizationPayrollSettings, error)
	RulesForState(ctx context.Context, state string) ([]statutory.ProfessionalTaxRule, error)
}

//go:generate mockgen -source=payroll_config_service.go -destination=mock/payroll_config_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, organizationID, adminID string, req CreatePayrollConfigRequest) (PayrollConfigResponse, error)
	GetByID(ctx context.Context, organizationID, id string) (PayrollConfigResponse, error)
	List(ctx context.Context, organizationID string, filter ListFilter) ([]PayrollConfigResponse, error)
	Update(ctx context.Context, organizationID, id string, req UpdatePayrollConfigRequest) (PayrollConfigResponse, error)
	Deactivate(ctx context.Context, organizationID, id string) error
	PreviewBreakdown(ctx context.Context, organizationID, id string) (breakdown.Result, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	employees  employee.Repository
	structures salarystructure.Repository
	statutory  StatutorySource
	calculator *breakdown.Calculator
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	structures salarystructure.Repository,
	statutorySource StatutorySource,
	calculator *breakdown.Calculator,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payrollconfig.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payrollconfig.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		employees:  employees,
		structures: structures,
		statutory:  statutorySource,
		calculator: calculator,
		logger:     l,
	}
}

// Create never overwrites: a second config for the same employee and
// period is a conflict.
func (s *service) Create(
	ctx context.Context,
	organizationID, adminID string,
	req CreatePayrollConfigRequest,
) (PayrollConfigResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return PayrollConfigResponse{}, apperror.InvalidField("organization_id")
	}
	adminUUID, err := uuid.Parse(adminID)
	if err != nil {
		return PayrollConfigResponse{}, apperror.InvalidField("admin_id")
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return PayrollConfigResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	structureID, err := uuid.Parse(req.StructureID)
	if err != nil {
		return PayrollConfigResponse{}, apperror.InvalidField("structure_id")
	}
	if req.GrossSalary.IsNegative() {
		return PayrollConfigResponse{}, payrollconfigerrors.ErrInvalidGrossSalary
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollConfigResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	member, err := s.employees.WithTx(tx).ExistsInOrganization(ctx, organizationID, employeeID)
	if err != nil {
		return PayrollConfigResponse{}, err
	}
	if !member {
		return PayrollConfigResponse{}, payrollconfigerrors.ErrEmployeeNotInOrganization
	}

	if _, err := s.structures.WithTx(tx).FindByID(ctx, organizationID, structureID.String()); err != nil {
		return PayrollConfigResponse{}, mapStructureError(err)
	}

	exists, err := qtx.ExistsForPeriod(ctx, employeeID, req.EffectiveMonth, req.EffectiveYear)
	if err != nil {
		return PayrollConfigResponse{}, err
	}
	if exists {
		return PayrollConfigResponse{}, payrollconfigerrors.ErrConfigExists
	}

	cfg := &EmployeePayrollConfig{
		ID:                 uuid.New(),
		OrganizationID:     orgUUID,
		AdminID:            adminUUID,
		EmployeeID:         employeeID,
		StructureID:        structureID,
		GrossSalary:        money.Round(req.GrossSalary),
		PFApplicable:       req.PFApplicable,
		ESIApplicable:      req.ESIApplicable,
		PTApplicable:       req.PTApplicable,
		GratuityApplicable: req.GratuityApplicable,
		EffectiveMonth:     req.EffectiveMonth,
		EffectiveYear:      req.EffectiveYear,
		IsActive:           true,
	}
	if err := qtx.Create(ctx, cfg); err != nil {
		return PayrollConfigResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return PayrollConfigResponse{}, err
	}

	log.Info("payroll config created",
		zap.String("organization_id", organizationID),
		zap.String("employee_id", employeeID.String()),
		zap.Int("effective_month", cfg.EffectiveMonth),
		zap.Int("effective_year", cfg.EffectiveYear),
	)

	return mapToResponse(*cfg), nil
}

func (s *service) GetByID(ctx context.Context, organizationID, id string) (PayrollConfigResponse, error) {
	cfg, err := s.repo.FindByID(ctx, organizationID, id)
	if err != nil {
		return PayrollConfigResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*cfg), nil
}

func (s *service) List(ctx context.Context, organizationID string, filter ListFilter) ([]PayrollConfigResponse, error) {
	configs, err := s.repo.FindAll(ctx, organizationID, filter)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]PayrollConfigResponse, len(configs))
	for i, cfg := range configs {
		res[i] = mapToResponse(cfg)
	}
	return res, nil
}

func (s *service) Update(
	ctx context.Context,
	organizationID, id string,
	req UpdatePayrollConfigRequest,
) (PayrollConfigResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollConfigResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	cfg, err := qtx.FindByID(ctx, organizationID, id)
	if err != nil {
		return PayrollConfigResponse{}, mapRepositoryError(err)
	}
	if !cfg.IsActive {
		return PayrollConfigResponse{}, payrollconfigerrors.ErrConfigInactive
	}

	if req.StructureID != nil {
		structureID, err := uuid.Parse(*req.StructureID)
		if err != nil {
			return PayrollConfigResponse{}, apperror.InvalidField("structure_id")
		}
		if _, err := s.structures.WithTx(tx).FindByID(ctx, organizationID, structureID.String()); err != nil {
			return PayrollConfigResponse{}, mapStructureError(err)
		}
		cfg.StructureID = structureID
	}
	if req.GrossSalary != nil {
		if req.GrossSalary.IsNegative() {
			return PayrollConfigResponse{}, payrollconfigerrors.ErrInvalidGrossSalary
		}
		cfg.GrossSalary = money.Round(*req.GrossSalary)
	}
	if req.Overrides != nil {
		cfg.PFApplicable = req.Overrides.PFApplicable
		cfg.ESIApplicable = req.Overrides.ESIApplicable
		cfg.PTApplicable = req.Overrides.PTApplicable
		cfg.GratuityApplicable = req.Overrides.GratuityApplicable
	}
	cfg.UpdatedAt = time.Now()

	if err := qtx.Update(ctx, cfg); err != nil {
		return PayrollConfigResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return PayrollConfigResponse{}, err
	}

	return mapToResponse(*cfg), nil
}

func (s *service) Deactivate(ctx context.Context, organizationID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	cfg, err := qtx.FindByID(ctx, organizationID, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	cfg.IsActive = false
	cfg.UpdatedAt = time.Now()
	if err := qtx.Update(ctx, cfg); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit()
}

// PreviewBreakdown runs the full-month calculation for the config's
// effective month.
func (s *service) PreviewBreakdown(ctx context.Context, organizationID, id string) (breakdown.Result, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	cfg, err := s.repo.FindByID(ctx, organizationID, id)
	if err != nil {
		return breakdown.Result{}, mapRepositoryError(err)
	}

	emp, err := s.employees.FindByID(ctx, organizationID, cfg.EmployeeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return breakdown.Result{}, employeeerrors.ErrEmployeeNotFound
		}
		return breakdown.Result{}, err
	}

	structure, err := s.structures.FindByID(ctx, organizationID, cfg.StructureID.String())
	if err != nil {
		return breakdown.Result{}, mapStructureError(err)
	}

	settings, err := s.statutory.LoadSettings(ctx, organizationID)
	if err != nil {
		return breakdown.Result{}, err
	}

	var rules statutory.RuleSet
	if emp.State != "" {
		stateRules, err := s.statutory.RulesForState(ctx, emp.State)
		if err != nil {
			return breakdown.Result{}, err
		}
		rules = statutory.NewRuleSet(stateRules)
	}

	res, err := s.calculator.Calculate(breakdown.Input{
		GrossAnnual: cfg.GrossSalary,
		Overrides:   cfg.Overrides(),
		Items:       structure.Items,
		Settings:    settings,
		State:       emp.State,
		Month:       cfg.EffectiveMonth,
		Rules:       rules,
	})
	if err != nil {
		log.Warn("payroll preview failed",
			zap.String("organization_id", organizationID),
			zap.String("config_id", id),
			zap.Error(err),
		)
		return breakdown.Result{}, err
	}

	return res, nil
}

func mapStructureError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salarystructureerrors.ErrStructureNotFound
	}
	return err
}

var twelve = decimal.NewFromInt(12)

func mapToResponse(cfg EmployeePayrollConfig) PayrollConfigResponse {
	return PayrollConfigResponse{
		ID:                 cfg.ID.String(),
		AdminID:            cfg.AdminID.String(),
		EmployeeID:         cfg.EmployeeID.String(),
		StructureID:        cfg.StructureID.String(),
		GrossSalary:        cfg.GrossSalary,
		GrossMonthly:       money.Round(cfg.GrossSalary.Div(twelve)),
		PFApplicable:       cfg.PFApplicable,
		ESIApplicable:      cfg.ESIApplicable,
		PTApplicable:       cfg.PTApplicable,
		GratuityApplicable: cfg.GratuityApplicable,
		EffectiveMonth:     cfg.EffectiveMonth,
		EffectiveYear:      cfg.EffectiveYear,
		IsActive:           cfg.IsActive,
	}
}
