package salarystructure

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"go-hrms/internal/salarycomponent"
	salarystructureerrors "go-hrms/internal/salarystructure/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/statutory"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultBasicPercentage applies when a structure is created without a BASIC rule.
var DefaultBasicPercentage = decimal.NewFromInt(50)

var hundred = decimal.NewFromInt(100)

type SettingsProvider interface {
	LoadSettings(ctx context.Context, organizationID string) (*statutory.OrganizationPayrollSettings, error)
}

//go:generate mockgen -source=salary_structure_service.go -destination=mock/salary_structure_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, organizationID string, req CreateSalaryStructureRequest) (SalaryStructureResponse, error)
	GetAll(ctx context.Context, organizationID string) ([]SalaryStructureResponse, error)
	GetByID(ctx context.Context, organizationID, id string) (SalaryStructureResponse, error)
	Update(ctx context.Context, organizationID, id string, req UpdateSalaryStructureRequest) (SalaryStructureResponse, error)
	Delete(ctx context.Context, organizationID, id string) error
}

type service struct {
	db         *sql.DB
	repo       Repository
	components salarycomponent.Repository
	settings   SettingsProvider
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	components salarycomponent.Repository,
	settings SettingsProvider,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("salarystructure.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salarystructure.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		components: components,
		settings:   settings,
		logger:     l,
	}
}

func (s *service) Create(
	ctx context.Context,
	organizationID string,
	req CreateSalaryStructureRequest,
) (SalaryStructureResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return SalaryStructureResponse{}, apperror.InvalidField("organization_id")
	}
	if err := validateItemRequests(req.Earnings, req.Deductions); err != nil {
		return SalaryStructureResponse{}, err
	}

	basic := BasicRequest{CalculationType: CalcPercentage, Value: DefaultBasicPercentage}
	if req.Basic != nil {
		basic = *req.Basic
	}
	if err := validateRule(basic.CalculationType, basic.Value); err != nil {
		return SalaryStructureResponse{}, err
	}

	settings, err := s.settings.LoadSettings(ctx, organizationID)
	if err != nil {
		return SalaryStructureResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryStructureResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	componentRepo := s.components.WithTx(tx)

	name := strings.TrimSpace(req.Name)
	exists, err := qtx.ExistsByName(ctx, organizationID, name, nil)
	if err != nil {
		return SalaryStructureResponse{}, err
	}
	if exists {
		return SalaryStructureResponse{}, salarystructureerrors.ErrStructureNameExists
	}

	structure := &SalaryStructure{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		Name:           name,
		Description:    strings.TrimSpace(req.Description),
		IsDefault:      req.IsDefault,
		IsActive:       true,
	}
	if err := qtx.Create(ctx, structure); err != nil {
		return SalaryStructureResponse{}, mapRepositoryError(err)
	}
	if structure.IsDefault {
		if err := qtx.ClearDefault(ctx, organizationID, structure.ID); err != nil {
			return SalaryStructureResponse{}, err
		}
	}

	draft := newDraft(structure.ID, nil)

	basicComponent, err := salarycomponent.GetOrCreate(ctx, componentRepo, orgUUID, salarycomponent.BasicSpec())
	if err != nil {
		return SalaryStructureResponse{}, err
	}
	draft.add(*basicComponent, basic.CalculationType, decimalPtr(basic.Value), "")

	balancing, err := salarycomponent.GetOrCreate(ctx, componentRepo, orgUUID, salarycomponent.SpecialAllowanceSpec())
	if err != nil {
		return SalaryStructureResponse{}, err
	}
	draft.add(*balancing, CalcFixed, decimalPtr(decimal.Zero), "")

	for _, scheme := range statutory.EnabledSchemes(settings) {
		component, err := salarycomponent.GetOrCreate(ctx, componentRepo, orgUUID, salarycomponent.StatutorySpec(scheme))
		if err != nil {
			return SalaryStructureResponse{}, err
		}
		draft.add(*component, CalcAuto, nil, "")
	}

	for _, item := range req.Earnings {
		component, err := resolveCustomComponent(ctx, componentRepo, orgUUID, item, salarycomponent.TypeEarning)
		if err != nil {
			return SalaryStructureResponse{}, err
		}
		draft.add(*component, item.CalculationType, decimalPtr(item.Value), item.CalculationBase)
	}
	for _, item := range req.Deductions {
		component, err := resolveCustomComponent(ctx, componentRepo, orgUUID, item, salarycomponent.TypeDeduction)
		if err != nil {
			return SalaryStructureResponse{}, err
		}
		draft.add(*component, item.CalculationType, decimalPtr(item.Value), item.CalculationBase)
	}

	if err := draft.resolveBases(); err != nil {
		return SalaryStructureResponse{}, err
	}

	if err := qtx.CreateItems(ctx, draft.items); err != nil {
		return SalaryStructureResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return SalaryStructureResponse{}, err
	}

	log.Info("salary structure created",
		zap.String("organization_id", organizationID),
		zap.String("structure_id", structure.ID.String()),
		zap.Int("items", len(draft.items)),
	)

	structure.Items = draft.items
	return mapToResponse(*structure), nil
}

func (s *service) GetAll(ctx context.Context, organizationID string) ([]SalaryStructureResponse, error) {
	structures, err := s.repo.FindAll(ctx, organizationID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]SalaryStructureResponse, len(structures))
	for i, structure := range structures {
		res[i] = mapToResponse(structure)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, organizationID, id string) (SalaryStructureResponse, error) {
	structure, err := s.repo.FindByID(ctx, organizationID, id)
	if err != nil {
		return SalaryStructureResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*structure), nil
}

func (s *service) Update(
	ctx context.Context,
	organizationID, id string,
	req UpdateSalaryStructureRequest,
) (SalaryStructureResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return SalaryStructureResponse{}, apperror.InvalidField("organization_id")
	}
	if err := validateItemRequests(req.Earnings, req.Deductions); err != nil {
		return SalaryStructureResponse{}, err
	}
	if req.Basic != nil {
		if err := validateRule(req.Basic.CalculationType, req.Basic.Value); err != nil {
			return SalaryStructureResponse{}, err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryStructureResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	componentRepo := s.components.WithTx(tx)

	structure, err := qtx.FindByID(ctx, organizationID, id)
	if err != nil {
		return SalaryStructureResponse{}, mapRepositoryError(err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if !strings.EqualFold(name, structure.Name) {
			exists, err := qtx.ExistsByName(ctx, organizationID, name, &structure.ID)
			if err != nil {
				return SalaryStructureResponse{}, err
			}
			if exists {
				return SalaryStructureResponse{}, salarystructureerrors.ErrStructureNameExists
			}
		}
		structure.Name = name
	}
	if req.Description != nil {
		structure.Description = strings.TrimSpace(*req.Description)
	}
	if req.IsDefault != nil {
		structure.IsDefault = *req.IsDefault
	}
	structure.UpdatedAt = time.Now()

	if err := qtx.Update(ctx, structure); err != nil {
		return SalaryStructureResponse{}, mapRepositoryError(err)
	}
	if structure.IsDefault {
		if err := qtx.ClearDefault(ctx, organizationID, structure.ID); err != nil {
			return SalaryStructureResponse{}, err
		}
	}

	draft := newDraft(structure.ID, structure.Items)

	if req.Basic != nil {
		if idx, ok := draft.indexOf(salarycomponent.CodeBasic); ok {
			draft.edit(idx, req.Basic.CalculationType, decimalPtr(req.Basic.Value), "")
		} else {
			basicComponent, err := salarycomponent.GetOrCreate(ctx, componentRepo, orgUUID, salarycomponent.BasicSpec())
			if err != nil {
				return SalaryStructureResponse{}, err
			}
			draft.add(*basicComponent, req.Basic.CalculationType, decimalPtr(req.Basic.Value), "")
		}
	}

	apply := func(item ItemRequest, componentType string) error {
		if idx, ok := draft.indexOf(item.Code); ok {
			existing := draft.items[idx]
			switch existing.EditClass() {
			case Locked:
				return salarystructureerrors.ErrStatutoryItemLocked
			case SystemManaged:
				return salarystructureerrors.ErrSystemManagedItem
			}
			if existing.Component.ComponentType != componentType {
				return salarystructureerrors.ErrComponentTypeMismatch
			}
			draft.edit(idx, item.CalculationType, decimalPtr(item.Value), item.CalculationBase)
			return nil
		}

		component, err := resolveCustomComponent(ctx, componentRepo, orgUUID, item, componentType)
		if err != nil {
			return err
		}
		draft.add(*component, item.CalculationType, decimalPtr(item.Value), item.CalculationBase)
		return nil
	}

	if req.Earnings != nil {
		keep := make(map[string]bool, len(req.Earnings))
		for _, item := range req.Earnings {
			keep[salarycomponent.NormalizeCode(item.Code)] = true
			if err := apply(item, salarycomponent.TypeEarning); err != nil {
				return SalaryStructureResponse{}, err
			}
		}
		draft.removeWhere(func(item SalaryStructureItem) bool {
			return item.IsEarning() &&
				item.EditClass() == Editable &&
				item.Component.Code != salarycomponent.CodeBasic &&
				!keep[item.Component.Code]
		})
	}

	for _, item := range req.Deductions {
		if err := apply(item, salarycomponent.TypeDeduction); err != nil {
			return SalaryStructureResponse{}, err
		}
	}

	if err := draft.resolveBases(); err != nil {
		return SalaryStructureResponse{}, err
	}

	if err := qtx.DeleteItems(ctx, structure.ID, draft.removed); err != nil {
		return SalaryStructureResponse{}, mapRepositoryError(err)
	}
	now := time.Now()
	var created []SalaryStructureItem
	for i := range draft.items {
		item := &draft.items[i]
		switch {
		case draft.created[item.ID]:
			created = append(created, *item)
		case draft.changed[item.ID]:
			item.UpdatedAt = now
			if err := qtx.UpdateItem(ctx, item); err != nil {
				return SalaryStructureResponse{}, mapRepositoryError(err)
			}
		}
	}
	if err := qtx.CreateItems(ctx, created); err != nil {
		return SalaryStructureResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return SalaryStructureResponse{}, err
	}

	log.Info("salary structure updated",
		zap.String("organization_id", organizationID),
		zap.String("structure_id", structure.ID.String()),
		zap.Int("created_items", len(created)),
		zap.Int("removed_items", len(draft.removed)),
	)

	structure.Items = draft.items
	return mapToResponse(*structure), nil
}

// Delete deactivates the structure. Structures still referenced by an
// active payroll configuration are kept.
func (s *service) Delete(ctx context.Context, organizationID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	structure, err := qtx.FindByID(ctx, organizationID, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	inUse, err := qtx.CountActiveConfigs(ctx, structure.ID)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return salarystructureerrors.ErrStructureInUse
	}

	structure.IsActive = false
	structure.IsDefault = false
	structure.UpdatedAt = time.Now()
	if err := qtx.Update(ctx, structure); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit()
}

func resolveCustomComponent(
	ctx context.Context,
	repo salarycomponent.Repository,
	organizationID uuid.UUID,
	item ItemRequest,
	componentType string,
) (*salarycomponent.SalaryComponent, error) {
	if salarycomponent.IsReservedCode(item.Code) {
		return nil, salarystructureerrors.ErrReservedItemCode
	}

	component, err := salarycomponent.GetOrCreate(ctx, repo, organizationID, salarycomponent.Spec{
		Code:          item.Code,
		Name:          strings.TrimSpace(item.Name),
		ComponentType: componentType,
	})
	if err != nil {
		return nil, err
	}
	if component.IsStatutory() {
		return nil, salarystructureerrors.ErrStatutoryComponentNotAllowed
	}
	if component.ComponentType != componentType {
		return nil, salarystructureerrors.ErrComponentTypeMismatch
	}
	return component, nil
}

func validateRule(calculationType string, value decimal.Decimal) error {
	if value.IsNegative() {
		return salarystructureerrors.ErrInvalidItemValue
	}
	switch calculationType {
	case CalcFixed:
		return nil
	case CalcPercentage:
		if value.GreaterThan(hundred) {
			return salarystructureerrors.ErrInvalidItemValue
		}
		return nil
	default:
		return apperror.InvalidField("Calculation Type")
	}
}

func validateItemRequests(earnings, deductions []ItemRequest) error {
	seen := make(map[string]bool, len(earnings)+len(deductions))
	for _, list := range [][]ItemRequest{earnings, deductions} {
		for _, item := range list {
			code := salarycomponent.NormalizeCode(item.Code)
			if code == "" {
				return apperror.RequiredField("Code")
			}
			if seen[code] {
				return salarystructureerrors.ErrDuplicateItem
			}
			seen[code] = true
			if err := validateRule(item.CalculationType, item.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

func decimalPtr(v decimal.Decimal) *decimal.Decimal {
	return &v
}

// itemDraft accumulates item changes inside one transaction.
type itemDraft struct {
	structureID uuid.UUID
	items       []SalaryStructureItem
	baseCodes   map[uuid.UUID]string
	created     map[uuid.UUID]bool
	changed     map[uuid.UUID]bool
	removed     []uuid.UUID
	nextOrder   int
}

func newDraft(structureID uuid.UUID, existing []SalaryStructureItem) *itemDraft {
	d := &itemDraft{
		structureID: structureID,
		items:       append([]SalaryStructureItem(nil), existing...),
		baseCodes:   make(map[uuid.UUID]string),
		created:     make(map[uuid.UUID]bool),
		changed:     make(map[uuid.UUID]bool),
		nextOrder:   1,
	}
	for _, item := range existing {
		if item.Order >= d.nextOrder {
			d.nextOrder = item.Order + 1
		}
	}
	return d
}

func (d *itemDraft) indexOf(code string) (int, bool) {
	code = salarycomponent.NormalizeCode(code)
	for i, item := range d.items {
		if item.Component.Code == code {
			return i, true
		}
	}
	return 0, false
}

func (d *itemDraft) add(component salarycomponent.SalaryComponent, calculationType string, value *decimal.Decimal, baseCode string) {
	item := SalaryStructureItem{
		ID:              uuid.New(),
		StructureID:     d.structureID,
		ComponentID:     component.ID,
		Component:       component,
		CalculationType: calculationType,
		Value:           value,
		Order:           d.nextOrder,
	}
	d.nextOrder++
	d.items = append(d.items, item)
	d.created[item.ID] = true
	d.baseCodes[item.ID] = baseCode
}

func (d *itemDraft) edit(idx int, calculationType string, value *decimal.Decimal, baseCode string) {
	item := &d.items[idx]
	item.CalculationType = calculationType
	item.Value = value
	d.changed[item.ID] = true
	d.baseCodes[item.ID] = baseCode
}

func (d *itemDraft) removeWhere(match func(SalaryStructureItem) bool) {
	kept := d.items[:0]
	for _, item := range d.items {
		if match(item) {
			if !d.created[item.ID] {
				d.removed = append(d.removed, item.ID)
			}
			continue
		}
		kept = append(kept, item)
	}
	d.items = kept
}

// resolveBases turns calculation_base codes into component ids and checks
// that every base points inside the structure without forming a cycle.
func (d *itemDraft) resolveBases() error {
	byCode := make(map[string]uuid.UUID, len(d.items))
	present := make(map[uuid.UUID]bool, len(d.items))
	for _, item := range d.items {
		byCode[item.Component.Code] = item.ComponentID
		present[item.ComponentID] = true
	}

	for i := range d.items {
		item := &d.items[i]
		code, touched := d.baseCodes[item.ID]
		if !touched {
			continue
		}
		code = salarycomponent.NormalizeCode(code)
		if code == "" || item.CalculationType != CalcPercentage {
			item.CalculationBaseID = nil
			continue
		}
		baseID, ok := byCode[code]
		if !ok || baseID == item.ComponentID {
			return salarystructureerrors.ErrInvalidCalculationBase
		}
		item.CalculationBaseID = &baseID
	}

	for _, item := range d.items {
		if item.CalculationBaseID != nil && !present[*item.CalculationBaseID] {
			return salarystructureerrors.ErrInvalidCalculationBase
		}
	}

	if hasBaseCycle(d.items) {
		return salarystructureerrors.ErrCircularCalculationBase
	}
	return nil
}

func hasBaseCycle(items []SalaryStructureItem) bool {
	next := make(map[uuid.UUID]uuid.UUID, len(items))
	for _, item := range items {
		if item.CalculationBaseID != nil {
			next[item.ComponentID] = *item.CalculationBaseID
		}
	}

	for start := range next {
		seen := map[uuid.UUID]bool{start: true}
		cur := start
		for {
			n, ok := next[cur]
			if !ok {
				break
			}
			if seen[n] {
				return true
			}
			seen[n] = true
			cur = n
		}
	}
	return false
}

func mapToResponse(structure SalaryStructure) SalaryStructureResponse {
	items := append([]SalaryStructureItem(nil), structure.Items...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Order < items[j].Order })

	codes := make(map[uuid.UUID]string, len(items))
	for _, item := range items {
		codes[item.ComponentID] = item.Component.Code
	}

	res := SalaryStructureResponse{
		ID:          structure.ID.String(),
		Name:        structure.Name,
		Description: structure.Description,
		IsDefault:   structure.IsDefault,
		IsActive:    structure.IsActive,
		Items:       make([]ItemResponse, len(items)),
	}
	for i, item := range items {
		var base *string
		if item.CalculationBaseID != nil {
			code := codes[*item.CalculationBaseID]
			base = &code
		}
		res.Items[i] = ItemResponse{
			ID:              item.ID.String(),
			ComponentID:     item.ComponentID.String(),
			Code:            item.Component.Code,
			Name:            item.Component.Name,
			ComponentType:   item.Component.ComponentType,
			StatutoryType:   item.Component.StatutoryType,
			CalculationType: item.CalculationType,
			Value:           item.Value,
			CalculationBase: base,
			Order:           item.Order,
			EditClass:       item.EditClass().String(),
		}
	}
	return res
}
