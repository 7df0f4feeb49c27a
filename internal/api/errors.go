package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/taskr-api/internal/api/shared"
	"github.com/phrazzld/taskr-api/internal/domain"
	"github.com/phrazzld/taskr-api/internal/service/auth"
	"github.com/phrazzld/taskr-api/internal/store"
)

// Client-facing messages.
const (
	msgValidationFailed   = "Validation failed"
	msgInvalidCredentials = "Invalid credentials"
	msgTaskNotFound       = "Task not found"
	msgInvalidToken       = "Invalid token"
	msgInvalidRequest     = "Invalid request format"
	msgServerError        = "Server error"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var verrs validator.ValidationErrors
	switch {
	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.As(err, &verrs),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, auth.ErrDuplicateUser),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusBadRequest

	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgServerError
	}

	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.As(err, &verrs),
		errors.Is(err, store.ErrInvalidEntity):
		return msgValidationFailed

	// Duplicate registration and failed login share one message
	case errors.Is(err, auth.ErrDuplicateUser),
		errors.Is(err, auth.ErrInvalidCredentials):
		return msgInvalidCredentials

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return msgInvalidToken

	case errors.Is(err, store.ErrTaskNotFound):
		return msgTaskNotFound

	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	default:
		return msgServerError
	}
}

// HandleAPIError writes the error response for err: status and message come
// from the mappings above, validation failures carry field details, and
// server errors are logged with the redacted cause.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)

	var opts []shared.ResponseOption
	if status == http.StatusBadRequest {
		if details := shared.ValidationDetails(err); len(details) > 0 {
			opts = append(opts, shared.WithDetails(details))
		}
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
