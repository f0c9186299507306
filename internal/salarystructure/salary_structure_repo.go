package salarystructure

import (
	"context"
	"database/sql"

	"go-hrms/internal/shared/connection"
	"go-hrms/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=salary_structure_repo.go -destination=mock/salary_structure_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, structure *SalaryStructure) error
	Update(ctx context.Context, structure *SalaryStructure) error
	CreateItems(ctx context.Context, items []SalaryStructureItem) error
	UpdateItem(ctx context.Context, item *SalaryStructureItem) error
	DeleteItems(ctx context.Context, structureID uuid.UUID, itemIDs []uuid.UUID) error
	FindAll(ctx context.Context, organizationID string) ([]SalaryStructure, error)
	FindByID(ctx context.Context, organizationID, id string) (*SalaryStructure, error)
	FindItemsByStructureIDs(ctx context.Context, structureIDs []uuid.UUID) ([]SalaryStructureItem, error)
	ExistsByName(ctx context.Context, organizationID, name string, excludeID *uuid.UUID) (bool, error)
	ClearDefault(ctx context.Context, organizationID string, exceptID uuid.UUID) error
	CountActiveConfigs(ctx context.Context, structureID uuid.UUID) (int64, error)
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

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC")
}

func (r *repository) Create(ctx context.Context, structure *SalaryStructure) error {
	return r.conn(ctx).Omit(clause.Associations).Create(structure).Error
}

func (r *repository) Update(ctx context.Context, structure *SalaryStructure) error {
	return r.conn(ctx).
		Model(&SalaryStructure{}).
		Where("id = ? AND organization_id = ?", structure.ID, structure.OrganizationID).
		Updates(map[string]any{
			"name":        structure.Name,
			"description": structure.Description,
			"is_default":  structure.IsDefault,
			"is_active":   structure.IsActive,
			"updated_at":  structure.UpdatedAt,
		}).Error
}

func (r *repository) CreateItems(ctx context.Context, items []SalaryStructureItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.conn(ctx).Omit(clause.Associations).Create(&items).Error
}

func (r *repository) UpdateItem(ctx context.Context, item *SalaryStructureItem) error {
	return r.conn(ctx).
		Model(&SalaryStructureItem{}).
		Where("id = ? AND structure_id = ?", item.ID, item.StructureID).
		Updates(map[string]any{
			"calculation_type":    item.CalculationType,
			"value":               item.Value,
			"calculation_base_id": item.CalculationBaseID,
			"sort_order":          item.Order,
			"updated_at":          item.UpdatedAt,
		}).Error
}

func (r *repository) DeleteItems(ctx context.Context, structureID uuid.UUID, itemIDs []uuid.UUID) error {
	if len(itemIDs) == 0 {
		return nil
	}
	return r.conn(ctx).
		Where("structure_id = ? AND id IN ?", structureID, itemIDs).
		Delete(&SalaryStructureItem{}).Error
}

func (r *repository) FindAll(ctx context.Context, organizationID string) ([]SalaryStructure, error) {
	var structures []SalaryStructure
	err := r.conn(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("is_active = ?", true).
		Preload("Items", orderedItems).
		Preload("Items.Component").
		Order("is_default DESC, name ASC").
		Find(&structures).Error
	return structures, err
}

func (r *repository) FindByID(ctx context.Context, organizationID, id string) (*SalaryStructure, error) {
	var structure SalaryStructure
	err := r.conn(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("id = ? AND is_active = ?", id, true).
		Preload("Items", orderedItems).
		Preload("Items.Component").
		First(&structure).Error
	if err != nil {
		return nil, err
	}
	return &structure, nil
}

// FindItemsByStructureIDs loads the items of many structures at once for
// batch payroll runs.
func (r *repository) FindItemsByStructureIDs(ctx context.Context, structureIDs []uuid.UUID) ([]SalaryStructureItem, error) {
	var items []SalaryStructureItem
	if len(structureIDs) == 0 {
		return items, nil
	}
	err := r.conn(ctx).
		Where("structure_id IN ?", structureIDs).
		Preload("Component").
		Order("structure_id ASC, sort_order ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) ExistsByName(ctx context.Context, organizationID, name string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	q := r.conn(ctx).
		Model(&SalaryStructure{}).
		Scopes(tenant.Scope(organizationID)).
		Where("LOWER(name) = LOWER(?) AND is_active = ?", name, true)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *repository) ClearDefault(ctx context.Context, organizationID string, exceptID uuid.UUID) error {
	return r.conn(ctx).
		Model(&SalaryStructure{}).
		Scopes(tenant.Scope(organizationID)).
		Where("id <> ? AND is_default = ?", exceptID, true).
		Update("is_default", false).Error
}

func (r *repository) CountActiveConfigs(ctx context.Context, structureID uuid.UUID) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Table("employee_payroll_configs").
		Where("structure_id = ? AND is_active = ?", structureID, true).
		Count(&count).Error
	return count, err
}
