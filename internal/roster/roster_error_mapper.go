package roster

import (
	"errors"
	"strings"

	rostererrors "github.com/RonikAgarwal/Swasthi/internal/roster/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rostererrors.ErrEntryNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_roster_company_employee" {
			return rostererrors.ErrEntryAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_roster_company_employee") {
		return rostererrors.ErrEntryAlreadyExists
	}

	return err
}
