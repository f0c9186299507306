package salarycomponent

import (
	"context"
	"database/sql"

	"go-hrms/internal/shared/connection"
	"go-hrms/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_component_repo.go -destination=mock/salary_component_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, component *SalaryComponent) error
	FirstOrCreate(ctx context.Context, component *SalaryComponent) error
	Update(ctx context.Context, component *SalaryComponent) error
	FindAll(ctx context.Context, organizationID string) ([]SalaryComponent, error)
	FindByID(ctx context.Context, organizationID, id string) (*SalaryComponent, error)
	FindByCode(ctx context.Context, organizationID, code string) (*SalaryComponent, error)
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

func (r *repository) Create(ctx context.Context, component *SalaryComponent) error {
	return r.conn(ctx).Create(component).Error
}

// FirstOrCreate loads the component with the same organization and code,
// inserting component when none exists. component is overwritten with the
// stored row either way.
func (r *repository) FirstOrCreate(ctx context.Context, component *SalaryComponent) error {
	return r.conn(ctx).
		Where(SalaryComponent{OrganizationID: component.OrganizationID, Code: component.Code}).
		Attrs(*component).
		FirstOrCreate(component).Error
}

func (r *repository) Update(ctx context.Context, component *SalaryComponent) error {
	return r.conn(ctx).
		Model(&SalaryComponent{}).
		Where("id = ? AND organization_id = ?", component.ID, component.OrganizationID).
		Updates(map[string]any{
			"name":       component.Name,
			"is_active":  component.IsActive,
			"updated_at": component.UpdatedAt,
		}).Error
}

func (r *repository) FindAll(ctx context.Context, organizationID string) ([]SalaryComponent, error) {
	var components []SalaryComponent
	err := r.conn(ctx).
		Scopes(tenant.Scope(organizationID)).
		Order("component_type ASC, code ASC").
		Find(&components).Error
	return components, err
}

func (r *repository) FindByID(ctx context.Context, organizationID, id string) (*SalaryComponent, error) {
	var component SalaryComponent
	err := r.conn(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("id = ?", id).
		First(&component).Error
	if err != nil {
		return nil, err
	}
	return &component, nil
}

func (r *repository) FindByCode(ctx context.Context, organizationID, code string) (*SalaryComponent, error) {
	var component SalaryComponent
	err := r.conn(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("code = ?", NormalizeCode(code)).
		First(&component).Error
	if err != nil {
		return nil, err
	}
	return &component, nil
}
