package healthcard

import (
	"errors"
	"strings"

	healthcarderrors "github.com/RonikAgarwal/Swasthi/internal/healthcard/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return healthcarderrors.ErrRecordNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_health_record_employee":
				return healthcarderrors.ErrAlreadyRegistered
			case "uq_health_card_id":
				return healthcarderrors.ErrCardIDGeneration
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_health_record_employee") {
		return healthcarderrors.ErrAlreadyRegistered
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_health_card_id") {
		return healthcarderrors.ErrCardIDGeneration
	}

	return err
}
