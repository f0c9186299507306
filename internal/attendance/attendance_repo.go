package attendance

import (
	"context"
	"database/sql"

	"go-hrms/internal/shared/connection"
	"go-hrms/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	DeleteSheet(ctx context.Context, organizationID, adminID string, month, year int) error
	CreateEntries(ctx context.Context, entries []AttendanceEntry) error
	FindSheet(ctx context.Context, organizationID, adminID string, month, year int) ([]AttendanceEntry, error)
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

func (r *repository) DeleteSheet(ctx context.Context, organizationID, adminID string, month, year int) error {
	return r.conn(ctx).
		Scopes(tenant.AdminScope(organizationID, adminID)).
		Where("month = ? AND year = ?", month, year).
		Delete(&AttendanceEntry{}).Error
}

func (r *repository) CreateEntries(ctx context.Context, entries []AttendanceEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.conn(ctx).CreateInBatches(entries, 500).Error
}

func (r *repository) FindSheet(ctx context.Context, organizationID, adminID string, month, year int) ([]AttendanceEntry, error) {
	var entries []AttendanceEntry
	err := r.conn(ctx).
		Scopes(tenant.AdminScope(organizationID, adminID)).
		Where("month = ? AND year = ?", month, year).
		Order("employee_key ASC").
		Find(&entries).Error
	return entries, err
}
