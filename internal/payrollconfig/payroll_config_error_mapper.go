package payrollconfig

import (
	"errors"
	"strings"

	payrollconfigerrors "go-hrms/internal/payrollconfig/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollconfigerrors.ErrConfigNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_employee_payroll_config_period" {
		return payrollconfigerrors.ErrConfigExists
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_employee_payroll_config_period") {
		return payrollconfigerrors.ErrConfigExists
	}

	return err
}
