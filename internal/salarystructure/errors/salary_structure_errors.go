package salarystructureerrors

import (
	"go-hrms/internal/shared/apperror"
	"net/http"
)

var (
	ErrStructureNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary structure not found",
		http.StatusNotFound,
	)
	ErrStructureNameExists = apperror.New(
		apperror.CodeConflict,
		"An active salary structure with this name already exists",
		http.StatusConflict,
	)
	ErrStructureInUse = apperror.New(
		apperror.CodeInvalidState,
		"Salary structure is referenced by an active payroll configuration",
		http.StatusConflict,
	)
	ErrStatutoryComponentNotAllowed = apperror.New(
		apperror.CodeValidationFailed,
		"Statutory components are provisioned from payroll settings and cannot be added manually",
		http.StatusBadRequest,
	)
	ErrReservedItemCode = apperror.New(
		apperror.CodeValidationFailed,
		"Component code is reserved for system-managed items",
		http.StatusBadRequest,
	)
	ErrStatutoryItemLocked = apperror.New(
		apperror.CodeInvalidState,
		"Statutory deduction items cannot be edited",
		http.StatusUnprocessableEntity,
	)
	ErrSystemManagedItem = apperror.New(
		apperror.CodeInvalidState,
		"Special allowance is the balancing component and cannot be edited",
		http.StatusUnprocessableEntity,
	)
	ErrComponentTypeMismatch = apperror.New(
		apperror.CodeValidationFailed,
		"Component type does not match the list it was submitted in",
		http.StatusBadRequest,
	)
	ErrDuplicateItem = apperror.New(
		apperror.CodeValidationFailed,
		"A component may appear only once in a salary structure",
		http.StatusBadRequest,
	)
	ErrInvalidItemValue = apperror.New(
		apperror.CodeValidationFailed,
		"Item values must not be negative and percentages must not exceed 100",
		http.StatusBadRequest,
	)
	ErrInvalidCalculationBase = apperror.New(
		apperror.CodeValidationFailed,
		"calculation_base must reference another component of the same structure",
		http.StatusBadRequest,
	)
	ErrCircularCalculationBase = apperror.New(
		apperror.CodeValidationFailed,
		"calculation_base references form a cycle",
		http.StatusBadRequest,
	)
)
