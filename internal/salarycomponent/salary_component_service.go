package salarycomponent

import (
	"context"
	"database/sql"
	"strings"
	"time"

	salarycomponenterrors "go-hrms/internal/salarycomponent/errors"
	"go-hrms/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=salary_component_service.go -destination=mock/salary_component_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, organizationID string, req CreateSalaryComponentRequest) (SalaryComponentResponse, error)
	GetAll(ctx context.Context, organizationID string) ([]SalaryComponentResponse, error)
	GetByID(ctx context.Context, organizationID, id string) (SalaryComponentResponse, error)
	Update(ctx context.Context, organizationID, id string, req UpdateSalaryComponentRequest) (SalaryComponentResponse, error)
	Deactivate(ctx context.Context, organizationID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("salarycomponent.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salarycomponent.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// GetOrCreate resolves a component by code inside the caller's repository
// scope, creating it on first use. Re-provisioning an inactive component
// reactivates it.
func GetOrCreate(ctx context.Context, repo Repository, organizationID uuid.UUID, spec Spec) (*SalaryComponent, error) {
	component := &SalaryComponent{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		Code:           NormalizeCode(spec.Code),
		Name:           spec.Name,
		ComponentType:  spec.ComponentType,
		StatutoryType:  spec.StatutoryType,
		IsActive:       true,
	}
	if component.Name == "" {
		component.Name = component.Code
	}

	if err := repo.FirstOrCreate(ctx, component); err != nil {
		return nil, mapRepositoryError(err)
	}

	if !component.IsActive {
		component.IsActive = true
		component.UpdatedAt = time.Now()
		if err := repo.Update(ctx, component); err != nil {
			return nil, mapRepositoryError(err)
		}
	}

	return component, nil
}

func (s *service) Create(
	ctx context.Context,
	organizationID string,
	req CreateSalaryComponentRequest,
) (SalaryComponentResponse, error) {
	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return SalaryComponentResponse{}, apperror.InvalidField("organization_id")
	}
	if req.ComponentType != TypeEarning && req.ComponentType != TypeDeduction {
		return SalaryComponentResponse{}, salarycomponenterrors.ErrInvalidComponentType
	}
	if IsReservedCode(req.Code) {
		return SalaryComponentResponse{}, salarycomponenterrors.ErrReservedComponentCode
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryComponentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	component := &SalaryComponent{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		Code:           NormalizeCode(req.Code),
		Name:           strings.TrimSpace(req.Name),
		ComponentType:  req.ComponentType,
		IsActive:       true,
	}

	if err := qtx.Create(ctx, component); err != nil {
		s.logger.Warn("create salary component failed",
			zap.String("organization_id", organizationID),
			zap.String("code", component.Code),
			zap.Error(err),
		)
		return SalaryComponentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return SalaryComponentResponse{}, err
	}

	return mapToResponse(*component), nil
}

func (s *service) GetAll(
	ctx context.Context,
	organizationID string,
) ([]SalaryComponentResponse, error) {
	components, err := s.repo.FindAll(ctx, organizationID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(components), nil
}

func (s *service) GetByID(
	ctx context.Context,
	organizationID, id string,
) (SalaryComponentResponse, error) {
	component, err := s.repo.FindByID(ctx, organizationID, id)
	if err != nil {
		return SalaryComponentResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*component), nil
}

func (s *service) Update(
	ctx context.Context,
	organizationID, id string,
	req UpdateSalaryComponentRequest,
) (SalaryComponentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryComponentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	component, err := qtx.FindByID(ctx, organizationID, id)
	if err != nil {
		return SalaryComponentResponse{}, mapRepositoryError(err)
	}
	if component.IsStatutory() {
		return SalaryComponentResponse{}, salarycomponenterrors.ErrStatutoryComponentReadOnly
	}

	component.Name = strings.TrimSpace(req.Name)
	if req.IsActive != nil {
		component.IsActive = *req.IsActive
	}
	component.UpdatedAt = time.Now()

	if err := qtx.Update(ctx, component); err != nil {
		return SalaryComponentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return SalaryComponentResponse{}, err
	}

	return mapToResponse(*component), nil
}

// Deactivate soft-deletes a component. Structure items keep referencing it,
// so rows are never removed.
func (s *service) Deactivate(
	ctx context.Context,
	organizationID, id string,
) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	component, err := qtx.FindByID(ctx, organizationID, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if component.IsStatutory() {
		return salarycomponenterrors.ErrStatutoryComponentReadOnly
	}

	component.IsActive = false
	component.UpdatedAt = time.Now()
	if err := qtx.Update(ctx, component); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit()
}

func mapToResponse(component SalaryComponent) SalaryComponentResponse {
	return SalaryComponentResponse{
		ID:            component.ID.String(),
		Code:          component.Code,
		Name:          component.Name,
		ComponentType: component.ComponentType,
		StatutoryType: component.StatutoryType,
		IsActive:      component.IsActive,
	}
}

func mapToListResponse(components []SalaryComponent) []SalaryComponentResponse {
	res := make([]SalaryComponentResponse, len(components))
	for i, component := range components {
		res[i] = mapToResponse(component)
	}
	return res
}
