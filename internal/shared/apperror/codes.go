package apperror

const (
	// Client errors (4xx)
	CodeValidationError    = "VALIDATION_ERROR"
	CodePreconditionFailed = "PRECONDITION_FAILED"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeInvalidInput       = "INVALID_INPUT"

	// Server errors (5xx)
	CodeInternalError  = "INTERNAL_ERROR"
	CodeNotifierFailed = "NOTIFIER_FAILED"
	CodeIDGeneration   = "ID_GENERATION_FAILED"
)
