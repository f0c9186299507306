package statutory

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-hrms/internal/salarycomponent"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	statutoryerrors "go-hrms/internal/statutory/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	ProfessionalTaxRulesKeyPrefix = "pt_rules:"
	professionalTaxRulesTTL       = 1 * time.Hour
)

func GetProfessionalTaxRulesKey(state string) string {
	return ProfessionalTaxRulesKeyPrefix + NormalizeState(state)
}

//go:generate mockgen -source=statutory_service.go -destination=mock/statutory_service_mock.go -package=mock
type Service interface {
	GetSettings(ctx context.Context, organizationID string) (SettingsResponse, error)
	LoadSettings(ctx context.Context, organizationID string) (*OrganizationPayrollSettings, error)
	UpsertSettings(ctx context.Context, organizationID string, req UpsertSettingsRequest) (SettingsResponse, error)
	ListRules(ctx context.Context, state string) ([]RuleResponse, error)
	CreateRule(ctx context.Context, req CreateRuleRequest) (RuleResponse, error)
	DeleteRule(ctx context.Context, id string) error
	RulesForState(ctx context.Context, state string) ([]ProfessionalTaxRule, error)
	RuleSetForStates(ctx context.Context, states []string) (RuleSet, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	components salarycomponent.Repository
	rdb        *redis.Client
	sf         *singleflight.Group
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	components salarycomponent.Repository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("statutory.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("statutory.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		components: components,
		rdb:        rdb,
		sf:         &singleflight.Group{},
		logger:     l,
	}
}

// LoadSettings returns nil when the organization has never saved settings.
func (s *service) LoadSettings(ctx context.Context, organizationID string) (*OrganizationPayrollSettings, error) {
	settings, err := s.repo.FindSettings(ctx, organizationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *service) GetSettings(ctx context.Context, organizationID string) (SettingsResponse, error) {
	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return SettingsResponse{}, apperror.InvalidField("organization_id")
	}

	settings, err := s.LoadSettings(ctx, organizationID)
	if err != nil {
		return SettingsResponse{}, err
	}
	if settings == nil {
		defaults := DefaultSettings(orgUUID)
		return mapSettingsToResponse(defaults, false), nil
	}

	return mapSettingsToResponse(*settings, true), nil
}

func (s *service) UpsertSettings(
	ctx context.Context,
	organizationID string,
	req UpsertSettingsRequest,
) (SettingsResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return SettingsResponse{}, apperror.InvalidField("organization_id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SettingsResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	settings, err := qtx.FindSettings(ctx, organizationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		defaults := DefaultSettings(orgUUID)
		defaults.ID = uuid.New()
		settings = &defaults
	} else if err != nil {
		return SettingsResponse{}, err
	}

	applySettingsRequest(settings, req)
	if !settingsValid(settings) {
		return SettingsResponse{}, statutoryerrors.ErrInvalidSettings
	}
	settings.UpdatedAt = time.Now()

	if err := qtx.UpsertSettings(ctx, settings); err != nil {
		log.Error("upsert payroll settings failed", zap.String("organization_id", organizationID), zap.Error(err))
		return SettingsResponse{}, err
	}

	componentRepo := s.components.WithTx(tx)
	for _, scheme := range enabledSchemes(settings) {
		if _, err := salarycomponent.GetOrCreate(ctx, componentRepo, orgUUID, salarycomponent.StatutorySpec(scheme)); err != nil {
			log.Error("provision statutory component failed",
				zap.String("organization_id", organizationID),
				zap.String("scheme", scheme),
				zap.Error(err),
			)
			return SettingsResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return SettingsResponse{}, err
	}

	log.Info("payroll settings saved",
		zap.String("organization_id", organizationID),
		zap.Strings("enabled_schemes", enabledSchemes(settings)),
	)

	return mapSettingsToResponse(*settings, true), nil
}

func (s *service) ListRules(ctx context.Context, state string) ([]RuleResponse, error) {
	var states []string
	if strings.TrimSpace(state) != "" {
		states = []string{NormalizeState(state)}
	}

	rules, err := s.repo.FindRules(ctx, states)
	if err != nil {
		return nil, err
	}

	res := make([]RuleResponse, len(rules))
	for i, rule := range rules {
		res[i] = mapRuleToResponse(rule)
	}
	return res, nil
}

func (s *service) CreateRule(ctx context.Context, req CreateRuleRequest) (RuleResponse, error) {
	if req.SalaryFrom.IsNegative() || req.TaxAmount.IsNegative() {
		return RuleResponse{}, statutoryerrors.ErrInvalidRuleBand
	}
	if req.SalaryTo != nil && req.SalaryTo.LessThan(req.SalaryFrom) {
		return RuleResponse{}, statutoryerrors.ErrInvalidRuleBand
	}
	if req.ApplicableMonth != nil && (*req.ApplicableMonth < 1 || *req.ApplicableMonth > 12) {
		return RuleResponse{}, statutoryerrors.ErrInvalidApplicableMonth
	}

	rule := &ProfessionalTaxRule{
		ID:              uuid.New(),
		State:           strings.TrimSpace(req.State),
		SalaryFrom:      req.SalaryFrom,
		SalaryTo:        req.SalaryTo,
		TaxAmount:       req.TaxAmount,
		ApplicableMonth: req.ApplicableMonth,
		IsActive:        true,
	}

	if err := s.repo.CreateRule(ctx, rule); err != nil {
		return RuleResponse{}, err
	}
	s.invalidateRules(ctx, rule.State)

	return mapRuleToResponse(*rule), nil
}

func (s *service) DeleteRule(ctx context.Context, id string) error {
	rule, err := s.repo.FindRuleByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return statutoryerrors.ErrRuleNotFound
	}
	if err != nil {
		return err
	}

	if err := s.repo.DeleteRule(ctx, id); err != nil {
		return err
	}
	s.invalidateRules(ctx, rule.State)
	return nil
}

// RulesForState serves a single state's rules from Redis, collapsing
// concurrent misses into one database read.
func (s *service) RulesForState(ctx context.Context, state string) ([]ProfessionalTaxRule, error) {
	cacheKey := GetProfessionalTaxRulesKey(state)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var rules []ProfessionalTaxRule
			if json.Unmarshal([]byte(cached), &rules) == nil {
				return rules, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		rules, err := s.repo.FindRules(ctx, []string{NormalizeState(state)})
		if err != nil {
			return nil, err
		}
		rules = sortedRules(rules)

		if s.rdb != nil {
			if payload, err := json.Marshal(rules); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, payload, professionalTaxRulesTTL).Err(); err != nil {
					s.logger.Warn("cache pt rules failed", zap.String("state", state), zap.Error(err))
				}
			}
		}
		return rules, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]ProfessionalTaxRule), nil
}

// RuleSetForStates loads every needed state in one query for a batch run.
func (s *service) RuleSetForStates(ctx context.Context, states []string) (RuleSet, error) {
	seen := make(map[string]bool, len(states))
	normalized := make([]string, 0, len(states))
	for _, state := range states {
		key := NormalizeState(state)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		normalized = append(normalized, key)
	}
	if len(normalized) == 0 {
		return RuleSet{}, nil
	}

	rules, err := s.repo.FindRules(ctx, normalized)
	if err != nil {
		return nil, err
	}
	return NewRuleSet(rules), nil
}

func (s *service) invalidateRules(ctx context.Context, state string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, GetProfessionalTaxRulesKey(state)).Err(); err != nil {
		s.logger.Warn("invalidate pt rules cache failed", zap.String("state", state), zap.Error(err))
	}
}

func applySettingsRequest(settings *OrganizationPayrollSettings, req UpsertSettingsRequest) {
	settings.PFEnabled = req.PFEnabled
	settings.PFEmployeePercentage = decimal.NewFromInt(12)
	settings.PFEmployerPercentage = decimal.NewFromInt(12)
	if req.PFWageLimit != nil {
		settings.PFWageLimit = *req.PFWageLimit
	}

	settings.ESIEnabled = req.ESIEnabled
	if req.ESIEmployeePercentage != nil {
		settings.ESIEmployeePercentage = *req.ESIEmployeePercentage
	}
	if req.ESIEmployerPercentage != nil {
		settings.ESIEmployerPercentage = *req.ESIEmployerPercentage
	}
	if req.ESIWageLimit != nil {
		settings.ESIWageLimit = *req.ESIWageLimit
	}

	settings.PTEnabled = req.PTEnabled

	settings.GratuityEnabled = req.GratuityEnabled
	if req.GratuityPercentage != nil {
		settings.GratuityPercentage = *req.GratuityPercentage
	}
}

var hundred = decimal.NewFromInt(100)

func settingsValid(s *OrganizationPayrollSettings) bool {
	for _, pct := range []decimal.Decimal{
		s.PFEmployeePercentage, s.PFEmployerPercentage,
		s.ESIEmployeePercentage, s.ESIEmployerPercentage,
		s.GratuityPercentage,
	} {
		if pct.IsNegative() || pct.GreaterThan(hundred) {
			return false
		}
	}
	return !s.PFWageLimit.IsNegative() && !s.ESIWageLimit.IsNegative()
}

// EnabledSchemes lists the schemes switched on, in provisioning order.
func EnabledSchemes(settings *OrganizationPayrollSettings) []string {
	return enabledSchemes(settings)
}

func enabledSchemes(settings *OrganizationPayrollSettings) []string {
	if settings == nil {
		return nil
	}
	enabled := map[string]bool{
		salarycomponent.StatutoryPF:       settings.PFEnabled,
		salarycomponent.StatutoryESI:      settings.ESIEnabled,
		salarycomponent.StatutoryPT:       settings.PTEnabled,
		salarycomponent.StatutoryGratuity: settings.GratuityEnabled,
	}
	var out []string
	for _, scheme := range salarycomponent.StatutorySchemes {
		if enabled[scheme] {
			out = append(out, scheme)
		}
	}
	return out
}

func mapSettingsToResponse(s OrganizationPayrollSettings, configured bool) SettingsResponse {
	return SettingsResponse{
		Configured:            configured,
		PFEnabled:             s.PFEnabled,
		PFEmployeePercentage:  s.PFEmployeePercentage,
		PFEmployerPercentage:  s.PFEmployerPercentage,
		PFWageLimit:           s.PFWageLimit,
		ESIEnabled:            s.ESIEnabled,
		ESIEmployeePercentage: s.ESIEmployeePercentage,
		ESIEmployerPercentage: s.ESIEmployerPercentage,
		ESIWageLimit:          s.ESIWageLimit,
		PTEnabled:             s.PTEnabled,
		GratuityEnabled:       s.GratuityEnabled,
		GratuityPercentage:    s.GratuityPercentage,
	}
}

func mapRuleToResponse(rule ProfessionalTaxRule) RuleResponse {
	return RuleResponse{
		ID:              rule.ID.String(),
		State:           rule.State,
		SalaryFrom:      rule.SalaryFrom,
		SalaryTo:        rule.SalaryTo,
		TaxAmount:       rule.TaxAmount,
		ApplicableMonth: rule.ApplicableMonth,
		IsActive:        rule.IsActive,
	}
}
