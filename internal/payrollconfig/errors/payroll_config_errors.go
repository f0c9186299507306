package payrollconfigerrors

import (
	"go-hrms/internal/shared/apperror"
	"net/http"
)

var (
	ErrConfigNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payroll configuration not found",
		http.StatusNotFound,
	)
	ErrConfigExists = apperror.New(
		apperror.CodeConflict,
		"A payroll configuration already exists for this employee and period",
		http.StatusConflict,
	)
	ErrConfigInactive = apperror.New(
		apperror.CodeInvalidState,
		"Payroll configuration is inactive",
		http.StatusConflict,
	)
	ErrInvalidGrossSalary = apperror.New(
		apperror.CodeValidationFailed,
		"Gross salary must not be negative",
		http.StatusBadRequest,
	)
	ErrEmployeeNotInOrganization = apperror.New(
		apperror.CodeValidationFailed,
		"Employee does not belong to this organization",
		http.StatusBadRequest,
	)
)
