package attendanceerrors

import (
	"go-hrms/internal/shared/apperror"
	"net/http"
)

var (
	ErrSheetNotFound = apperror.New(
		apperror.CodeNotFound,
		"No attendance sheet for this period",
		http.StatusNotFound,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeValidationFailed,
		"month must be 1-12 and year must be 2000-2100",
		http.StatusBadRequest,
	)
	ErrInvalidPayableDays = apperror.New(
		apperror.CodeValidationFailed,
		"payable_days must be a number between 0 and the days in the month",
		http.StatusBadRequest,
	)
	ErrInvalidWorkbook = apperror.New(
		apperror.CodeInvalidInput,
		"Attendance workbook could not be read",
		http.StatusBadRequest,
	)
	ErrMissingColumns = apperror.New(
		apperror.CodeValidationFailed,
		"Attendance workbook needs an employee column and a payable_days column",
		http.StatusBadRequest,
	)
	ErrDuplicateEmployee = apperror.New(
		apperror.CodeValidationFailed,
		"An employee appears more than once in the attendance sheet",
		http.StatusBadRequest,
	)
	ErrEmptySheet = apperror.New(
		apperror.CodeValidationFailed,
		"Attendance sheet has no entries",
		http.StatusBadRequest,
	)
)
