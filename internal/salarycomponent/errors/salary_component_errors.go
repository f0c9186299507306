package salarycomponenterrors

import (
	"go-hrms/internal/shared/apperror"
	"net/http"
)

var (
	ErrComponentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary component not found",
		http.StatusNotFound,
	)
	ErrComponentCodeExists = apperror.New(
		apperror.CodeConflict,
		"Salary component code already exists in this organization",
		http.StatusConflict,
	)
	ErrReservedComponentCode = apperror.New(
		apperror.CodeInvalidInput,
		"Component code is reserved for system-managed components",
		http.StatusBadRequest,
	)
	ErrStatutoryComponentReadOnly = apperror.New(
		apperror.CodeInvalidState,
		"Statutory components are managed by payroll settings and cannot be edited",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidComponentType = apperror.New(
		apperror.CodeInvalidInput,
		"Component type must be earning or deduction",
		http.StatusBadRequest,
	)
)
