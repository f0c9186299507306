package payroll

import (
	"context"
	"database/sql"

	"go-hrms/internal/shared/connection"
	"go-hrms/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	UpsertRecords(ctx context.Context, records []GeneratedPayrollRecord) error
	FindRecords(ctx context.Context, organizationID, adminID string, month, year int) ([]GeneratedPayrollRecord, error)
	FindRecordByID(ctx context.Context, organizationID, id string) (*GeneratedPayrollRecord, error)
	CreateAdjustment(ctx context.Context, adjustment *PayrollAdjustment) error
	FindAdjustments(ctx context.Context, organizationID, adminID string, month, year int) ([]PayrollAdjustment, error)
	DeleteAdjustment(ctx context.Context, organizationID, id string) error
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

var recordUpsertColumns = []string{
	"payable_days",
	"total_days_in_month",
	"gross_salary",
	"basic_salary",
	"earnings",
	"deductions",
	"total_earnings",
	"total_deductions",
	"net_pay",
	"calculation_breakdown",
	"generated_at",
	"updated_at",
}

// UpsertRecords writes the whole batch in one statement. An existing row
// for the same employee, admin and period keeps its id and is overwritten.
func (r *repository) UpsertRecords(ctx context.Context, records []GeneratedPayrollRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "employee_id"},
				{Name: "month"},
				{Name: "year"},
				{Name: "admin_id"},
			},
			DoUpdates: clause.AssignmentColumns(recordUpsertColumns),
		}).
		Create(&records).Error
}

func (r *repository) FindRecords(ctx context.Context, organizationID, adminID string, month, year int) ([]GeneratedPayrollRecord, error) {
	q := r.conn(ctx).Scopes(tenant.Scope(organizationID))
	if adminID != "" {
		q = q.Where("admin_id = ?", adminID)
	}

	var records []GeneratedPayrollRecord
	err := q.
		Where("month = ? AND year = ?", month, year).
		Order("employee_id ASC").
		Find(&records).Error
	return records, err
}

func (r *repository) FindRecordByID(ctx context.Context, organizationID, id string) (*GeneratedPayrollRecord, error) {
	var record GeneratedPayrollRecord
	err := r.conn(ctx).
		Scopes(tenant.Scope(organizationID)).
		First(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) CreateAdjustment(ctx context.Context, adjustment *PayrollAdjustment) error {
	return r.conn(ctx).Create(adjustment).Error
}

func (r *repository) FindAdjustments(ctx context.Context, organizationID, adminID string, month, year int) ([]PayrollAdjustment, error) {
	var adjustments []PayrollAdjustment
	err := r.conn(ctx).
		Scopes(tenant.AdminScope(organizationID, adminID)).
		Where("month = ? AND year = ?", month, year).
		Order("created_at ASC").
		Find(&adjustments).Error
	return adjustments, err
}

func (r *repository) DeleteAdjustment(ctx context.Context, organizationID, id string) error {
	res := r.conn(ctx).
		Scopes(tenant.Scope(organizationID)).
		Delete(&PayrollAdjustment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
