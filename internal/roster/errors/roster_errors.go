package rostererrors

import (
	"net/http"

	"github.com/RonikAgarwal/Swasthi/internal/shared/apperror"
)

var (
	ErrEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Roster entry not found",
		http.StatusNotFound,
	)
	ErrEntryAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee is already on this company's roster",
		http.StatusConflict,
	)
	ErrMissingCompany = apperror.New(
		apperror.CodeValidationError,
		"Company id is required",
		http.StatusBadRequest,
	)
)
