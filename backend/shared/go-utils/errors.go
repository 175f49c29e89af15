// backend/shared/go-utils/errors.go
package utils

import (
	"errors"
	"net/http"
)

// Domain-level error kinds. Services wrap these with %w so controllers can
// map them to HTTP statuses with errors.Is.
var (
	ErrNotFound            = errors.New("not_found")
	ErrValidationFailed    = errors.New("validation_failed")
	ErrUpstreamUnavailable = errors.New("upstream_unavailable")
	ErrConflict            = errors.New("conflict")
	ErrRateLimitExceeded   = errors.New("rate_limit_exceeded")

	// For concurrency conflicts
	ErrRowVersionConflict = errors.New("row_version_conflict")
)

// AppError for structured error handling from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError classifies err by its wrapped kind. publicMessage is what the
// client sees; it never carries field-level detail.
func NewAppError(err error, publicMessage string) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return &AppError{StatusCode: http.StatusNotFound, Code: ErrCodeNotFound, Message: publicMessage, Err: err}
	case errors.Is(err, ErrValidationFailed):
		return &AppError{StatusCode: http.StatusBadRequest, Code: ErrCodeValidation, Message: publicMessage, Err: err}
	case errors.Is(err, ErrConflict), errors.Is(err, ErrRowVersionConflict):
		return &AppError{StatusCode: http.StatusConflict, Code: ErrCodeConflict, Message: publicMessage, Err: err}
	case errors.Is(err, ErrRateLimitExceeded):
		return &AppError{StatusCode: http.StatusTooManyRequests, Code: ErrCodeRateLimitExceeded, Message: publicMessage, Err: err}
	case errors.Is(err, ErrUpstreamUnavailable):
		return &AppError{StatusCode: http.StatusServiceUnavailable, Code: ErrCodeUpstreamUnavailable, Message: publicMessage, Err: err}
	default:
		return &AppError{StatusCode: http.StatusInternalServerError, Code: ErrCodeInternal, Message: publicMessage, Err: err}
	}
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		// Fallback for unexpected error types
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
