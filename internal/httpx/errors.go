package httpx

import (
	"errors"
	"net/http"

	"bookcatalog/internal/apperr"
)

const (
	CodeBadRequest      = "BAD_REQUEST"
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeTooLarge        = "PAYLOAD_TOO_LARGE"
	CodeRateLimited     = "RATE_LIMIT_EXCEEDED"
	CodeInternal        = "INTERNAL_ERROR"
	CodeNotReady        = "NOT_READY"
	msgInternalFallback = "An internal error occurred"
)

// StatusFor maps an apperr kind to its HTTP status and error code.
// Anything without a kind is an internal error.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrBadRequest):
		return http.StatusBadRequest, CodeBadRequest
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized, CodeUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden, CodeForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// WriteError renders err in the error envelope. The message reads
// "<status text>: <detail>", e.g. "Forbidden: You are not owner of book".
// Errors without an apperr kind never expose their text.
func WriteError(r *http.Request, w http.ResponseWriter, err error) {
	status, code := StatusFor(err)
	detail := msgInternalFallback
	if code != CodeInternal || errors.Is(err, apperr.ErrInternal) {
		detail = apperr.Message(err)
	}
	JSONError(r, w, status, code, http.StatusText(status)+": "+detail, nil)
}
