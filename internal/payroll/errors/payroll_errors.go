package payrollerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payroll record not found",
		http.StatusNotFound,
	)
	ErrAdjustmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payroll adjustment not found",
		http.StatusNotFound,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeValidationFailed,
		"month must be 1-12 and year must be 2000-2100",
		http.StatusBadRequest,
	)
	ErrNoAttendance = apperror.New(
		apperror.CodeInvalidState,
		"No attendance entries for this period",
		http.StatusUnprocessableEntity,
	)
	ErrGenerationInProgress = apperror.New(
		apperror.CodeLocked,
		"Payroll generation for this period is already running",
		http.StatusConflict,
	)
	ErrInvalidAdjustmentType = apperror.New(
		apperror.CodeValidationFailed,
		"component_type must be earning or deduction",
		http.StatusBadRequest,
	)
	ErrInvalidAdjustmentAmount = apperror.New(
		apperror.CodeValidationFailed,
		"quantity and unit_amount cannot be negative",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeValidationFailed,
		"Employee is not managed by this admin",
		http.StatusBadRequest,
	)
	ErrNoPayrollConfig = apperror.New(
		apperror.CodeInvalidState,
		"No active payroll configuration effective for this period",
		http.StatusUnprocessableEntity,
	)
	ErrDuplicateEntry = apperror.New(
		apperror.CodeValidationFailed,
		"Employee appears more than once in the attendance sheet",
		http.StatusBadRequest,
	)
	ErrPayslipStorage = apperror.New(
		apperror.CodeInternalError,
		"Payslip could not be stored",
		http.StatusInternalServerError,
	)
)
