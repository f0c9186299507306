package statutoryerrors

import (
	"go-hrms/internal/shared/apperror"
	"net/http"
)

var (
	ErrInvalidSettings = apperror.New(
		apperror.CodeInvalidInput,
		"Percentages must be between 0 and 100 and wage limits must not be negative",
		http.StatusBadRequest,
	)
	ErrRuleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Professional tax rule not found",
		http.StatusNotFound,
	)
	ErrInvalidRuleBand = apperror.New(
		apperror.CodeInvalidInput,
		"Tax band amounts must not be negative and salary_to must not be below salary_from",
		http.StatusBadRequest,
	)
	ErrInvalidApplicableMonth = apperror.New(
		apperror.CodeInvalidInput,
		"applicable_month must be between 1 and 12",
		http.StatusBadRequest,
	)
)
