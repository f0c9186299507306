package employee

import (
	"context"
	"database/sql"

	"go-hrms/internal/shared/connection"
	"go-hrms/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindAll(ctx context.Context, organizationID, adminID string) ([]Employee, error)
	FindByID(ctx context.Context, organizationID, id string) (*Employee, error)
	FindByIDs(ctx context.Context, organizationID string, ids []uuid.UUID) ([]Employee, error)
	ExistsInOrganization(ctx context.Context, organizationID string, id uuid.UUID) (bool, error)
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

// FindAll lists active employees. An empty adminID lists the whole organization.
func (r *repository) FindAll(ctx context.Context, organizationID, adminID string) ([]Employee, error) {
	query := r.conn(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("is_active = ?", true)
	if adminID != "" {
		query = query.Where("admin_id = ?", adminID)
	}

	var employees []Employee
	err := query.Order("employee_number ASC").Find(&employees).Error
	return employees, err
}

func (r *repository) FindByID(ctx context.Context, organizationID, id string) (*Employee, error) {
	var emp Employee
	err := r.conn(ctx).
		Scopes(tenant.Scope(organizationID)).
		First(&emp, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *repository) FindByIDs(ctx context.Context, organizationID string, ids []uuid.UUID) ([]Employee, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var employees []Employee
	err := r.conn(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("id IN ?", ids).
		Find(&employees).Error
	return employees, err
}

func (r *repository) ExistsInOrganization(ctx context.Context, organizationID string, id uuid.UUID) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Employee{}).
		Scopes(tenant.Scope(organizationID)).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
