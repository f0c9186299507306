package statutory

import (
	"context"
	"database/sql"

	"go-hrms/internal/shared/connection"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=statutory_repo.go -destination=mock/statutory_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindSettings(ctx context.Context, organizationID string) (*OrganizationPayrollSettings, error)
	UpsertSettings(ctx context.Context, settings *OrganizationPayrollSettings) error
	FindRules(ctx context.Context, states []string) ([]ProfessionalTaxRule, error)
	CreateRule(ctx context.Context, rule *ProfessionalTaxRule) error
	FindRuleByID(ctx context.Context, id string) (*ProfessionalTaxRule, error)
	DeleteRule(ctx context.Context, id string) error
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

func (r *repository) FindSettings(ctx context.Context, organizationID string) (*OrganizationPayrollSettings, error) {
	var settings OrganizationPayrollSettings
	err := r.conn(ctx).
		Where("organization_id = ?", organizationID).
		First(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *repository) UpsertSettings(ctx context.Context, settings *OrganizationPayrollSettings) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "organization_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"pf_enabled", "pf_employee_percentage", "pf_employer_percentage", "pf_wage_limit",
				"esi_enabled", "esi_employee_percentage", "esi_employer_percentage", "esi_wage_limit",
				"pt_enabled", "gratuity_enabled", "gratuity_percentage", "updated_at",
			}),
		}).
		Create(settings).Error
}

// FindRules returns active rules for the given normalized states, or for
// every state when states is empty.
func (r *repository) FindRules(ctx context.Context, states []string) ([]ProfessionalTaxRule, error) {
	var rules []ProfessionalTaxRule
	q := r.conn(ctx).Where("is_active = ?", true)
	if len(states) > 0 {
		q = q.Where("UPPER(state) IN ?", states)
	}
	err := q.Order("state ASC, salary_from ASC").Find(&rules).Error
	return rules, err
}

func (r *repository) CreateRule(ctx context.Context, rule *ProfessionalTaxRule) error {
	return r.conn(ctx).Create(rule).Error
}

func (r *repository) FindRuleByID(ctx context.Context, id string) (*ProfessionalTaxRule, error) {
	var rule ProfessionalTaxRule
	if err := r.conn(ctx).Where("id = ?", id).First(&rule).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *repository) DeleteRule(ctx context.Context, id string) error {
	return r.conn(ctx).Where("id = ?", id).Delete(&ProfessionalTaxRule{}).Error
}
