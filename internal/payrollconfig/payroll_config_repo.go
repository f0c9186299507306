package payrollconfig

import (
	"context"
	"database/sql"

	"go-hrms/internal/shared/connection"
	"go-hrms/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_config_repo.go -destination=mock/payroll_config_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, cfg *EmployeePayrollConfig) error
	Update(ctx context.Context, cfg *EmployeePayrollConfig) error
	FindByID(ctx context.Context, organizationID, id string) (*EmployeePayrollConfig, error)
	FindAll(ctx context.Context, organizationID string, filter ListFilter) ([]EmployeePayrollConfig, error)
	ExistsForPeriod(ctx context.Context, employeeID uuid.UUID, month, year int) (bool, error)
	FindEffective(ctx context.Context, organizationID string, employeeIDs []uuid.UUID, month, year int) (map[uuid.UUID]EmployeePayrollConfig, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return connection.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, cfg *EmployeePayrollConfig) error {
	return r.conn(ctx).Create(cfg).Error
}

func (r *repository) Update(ctx context.Context, cfg *EmployeePayrollConfig) error {
	return r.conn(ctx).
		Model(&EmployeePayrollConfig{}).
		Where("id = ? AND organization_id = ?", cfg.ID, cfg.OrganizationID).
		Updates(map[string]any{
			"structure_id":        cfg.StructureID,
			"gross_salary":        cfg.GrossSalary,
			"pf_applicable":       cfg.PFApplicable,
			"esi_applicable":      cfg.ESIApplicable,
			"pt_applicable":       cfg.PTApplicable,
			"gratuity_applicable": cfg.GratuityApplicable,
			"is_active":           cfg.IsActive,
			"updated_at":          cfg.UpdatedAt,
		}).Error
}

func (r *repository) FindByID(ctx context.Context, organizationID, id string) (*EmployeePayrollConfig, error) {
	var cfg EmployeePayrollConfig
	err := r.conn(ctx).
		Scopes(tenant.Scope(organizationID)).
		First(&cfg, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *repository) FindAll(ctx context.Context, organizationID string, filter ListFilter) ([]EmployeePayrollConfig, error) {
	query := r.conn(ctx).Scopes(tenant.Scope(organizationID))
	if filter.AdminID != "" {
		query = query.Where("admin_id = ?", filter.AdminID)
	}
	if filter.EmployeeID != "" {
		query = query.Where("employee_id = ?", filter.EmployeeID)
	}

	var configs []EmployeePayrollConfig
	err := query.
		Order("employee_id ASC").
		Order("effective_year DESC").
		Order("effective_month DESC").
		Find(&configs).Error
	return configs, err
}

func (r *repository) ExistsForPeriod(ctx context.Context, employeeID uuid.UUID, month, year int) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&EmployeePayrollConfig{}).
		Where("employee_id = ? AND effective_month = ? AND effective_year = ?", employeeID, month, year).
		Count(&count).Error
	return count > 0, err
}

// FindEffective loads, in one query, every active config at or before the
// period for the given employees and keeps the latest per employee.
func (r *repository) FindEffective(
	ctx context.Context,
	organizationID string,
	employeeIDs []uuid.UUID,
	month, year int,
) (map[uuid.UUID]EmployeePayrollConfig, error) {
	if len(employeeIDs) == 0 {
		return map[uuid.UUID]EmployeePayrollConfig{}, nil
	}

	var configs []EmployeePayrollConfig
	err := r.conn(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("employee_id IN ?", employeeIDs).
		Where("is_active = ?", true).
		Where("(effective_year < ? OR (effective_year = ? AND effective_month <= ?))", year, year, month).
		Find(&configs).Error
	if err != nil {
		return nil, err
	}
	return LatestPerEmployee(configs, month, year), nil
}
