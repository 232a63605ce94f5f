package attendance

import (
	"errors"
	"net/http"

	"github.com/RonikAgarwal/Swasthi/internal/shared/apperror"

	"gorm.io/gorm"
)

var errAttendanceNotFound = apperror.New(
	apperror.CodeNotFound,
	"Attendance record not found",
	http.StatusNotFound,
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errAttendanceNotFound
	}
	return err
}
