package payroll

import (
	"errors"
	"strings"

	payrollerrors "go-hrms/internal/payroll/errors"
	"go-hrms/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrRecordNotFound
	}

	// a concurrent run slipped past the lock and inserted the same period
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_generated_payroll_period" {
		return payrollerrors.ErrGenerationInProgress
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_generated_payroll_period") {
		return payrollerrors.ErrGenerationInProgress
	}

	return err
}

func storageError(err error) error {
	return apperror.Wrap(
		err,
		payrollerrors.ErrPayslipStorage.Code,
		payrollerrors.ErrPayslipStorage.Message,
		payrollerrors.ErrPayslipStorage.HTTPStatus,
	)
}
