package employee

import (
	"context"
	"strings"

	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service exposes the directory lookups payroll screens need.
//
//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, organizationID, adminID string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, organizationID, id string) (EmployeeResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetAll(ctx context.Context, organizationID, adminID string) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx, organizationID, adminID)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list employees failed",
			zap.String("organization_id", organizationID),
			zap.Error(err),
		)
		return nil, mapRepositoryError(err)
	}

	res := make([]EmployeeResponse, len(employees))
	for i, emp := range employees {
		res[i] = mapToResponse(emp)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, organizationID, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	emp, err := s.repo.FindByID(ctx, organizationID, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*emp), nil
}

// Directory is an in-memory index over one batch of employees, keyed by
// id and by employee number.
type Directory struct {
	byID     map[uuid.UUID]Employee
	byNumber map[string]Employee
}

func NewDirectory(employees []Employee) Directory {
	d := Directory{
		byID:     make(map[uuid.UUID]Employee, len(employees)),
		byNumber: make(map[string]Employee, len(employees)),
	}
	for _, emp := range employees {
		d.byID[emp.ID] = emp
		if emp.EmployeeNumber != "" {
			d.byNumber[strings.ToUpper(strings.TrimSpace(emp.EmployeeNumber))] = emp
		}
	}
	return d
}

// Resolve accepts either an employee id or an employee number.
func (d Directory) Resolve(key string) (Employee, bool) {
	key = strings.TrimSpace(key)
	if id, err := uuid.Parse(key); err == nil {
		emp, ok := d.byID[id]
		return emp, ok
	}
	emp, ok := d.byNumber[strings.ToUpper(key)]
	return emp, ok
}

func (d Directory) Len() int {
	return len(d.byID)
}

func mapToResponse(emp Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             emp.ID.String(),
		OrganizationID: emp.OrganizationID.String(),
		AdminID:        emp.AdminID.String(),
		EmployeeNumber: emp.EmployeeNumber,
		FullName:       emp.FullName,
		State:          emp.State,
		IsActive:       emp.IsActive,
	}
}
