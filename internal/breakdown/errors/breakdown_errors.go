package breakdownerrors

import (
	"go-hrms/internal/shared/apperror"
	"net/http"
)

var (
	ErrEarningsExceedGross = apperror.New(
		apperror.CodeInvalidState,
		"Fixed and percentage earnings exceed the monthly gross salary",
		http.StatusUnprocessableEntity,
	)
	ErrNoStructureItems = apperror.New(
		apperror.CodeInvalidState,
		"Salary structure has no items",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidGrossSalary = apperror.New(
		apperror.CodeValidationFailed,
		"Gross salary must not be negative",
		http.StatusBadRequest,
	)
	ErrInvalidPayableDays = apperror.New(
		apperror.CodeValidationFailed,
		"Payable days must be between 0 and the days in the month",
		http.StatusBadRequest,
	)
)
