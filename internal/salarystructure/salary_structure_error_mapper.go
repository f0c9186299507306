package salarystructure

import (
	"errors"
	"strings"

	salarystructureerrors "go-hrms/internal/salarystructure/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salarystructureerrors.ErrStructureNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_salary_structure_name":
			return salarystructureerrors.ErrStructureNameExists
		case "uq_structure_component":
			return salarystructureerrors.ErrDuplicateItem
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_salary_structure_name") {
		return salarystructureerrors.ErrStructureNameExists
	}

	return err
}
