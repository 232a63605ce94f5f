package healthcarderrors

import (
	"net/http"

	"github.com/RonikAgarwal/Swasthi/internal/shared/apperror"
)

var (
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"Health record not found",
		http.StatusNotFound,
	)
	ErrBiometricsRequired = apperror.New(
		apperror.CodePreconditionFailed,
		"Biometrics must be captured before registration can be submitted",
		http.StatusPreconditionFailed,
	)
	ErrAlreadyRegistered = apperror.New(
		apperror.CodeConflict,
		"Employee already holds a health card",
		http.StatusConflict,
	)
	ErrCaptureInProgress = apperror.New(
		apperror.CodeConflict,
		"A biometric capture is already in progress for this employee",
		http.StatusConflict,
	)
	ErrNoCapturePending = apperror.New(
		apperror.CodeConflict,
		"No biometric capture is in progress for this employee",
		http.StatusConflict,
	)
	ErrCardIDGeneration = apperror.New(
		apperror.CodeIDGeneration,
		"Could not generate a unique health card id",
		http.StatusInternalServerError,
	)
	ErrMissingRequiredFields = apperror.New(
		apperror.CodeValidationError,
		"Missing required fields",
		http.StatusBadRequest,
	)
	ErrInvalidCheckupDate = apperror.New(
		apperror.CodeValidationError,
		"Invalid checkup_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
