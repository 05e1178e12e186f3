// Package apperr defines the error kinds every use case resolves to.
// Callers wrap one of the sentinels with context and match with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrBadRequest marks malformed or semantically invalid input.
	ErrBadRequest = errors.New("bad request")
	// ErrUnauthorized marks a missing or invalid bearer credential.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden marks an authenticated caller that does not own the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound marks a lookup with no matching record.
	ErrNotFound = errors.New("not found")
	// ErrInternal marks a collaborator failure not attributable to the caller.
	ErrInternal = errors.New("internal error")
)

// BadRequest wraps ErrBadRequest with a caller-facing message.
func BadRequest(msg string) error { return fmt.Errorf("%w: %s", ErrBadRequest, msg) }

// Unauthorized wraps ErrUnauthorized with a caller-facing message.
func Unauthorized(msg string) error { return fmt.Errorf("%w: %s", ErrUnauthorized, msg) }

// Forbidden wraps ErrForbidden with a caller-facing message.
func Forbidden(msg string) error { return fmt.Errorf("%w: %s", ErrForbidden, msg) }

// NotFound wraps ErrNotFound with a caller-facing message.
func NotFound(msg string) error { return fmt.Errorf("%w: %s", ErrNotFound, msg) }

// Internal wraps ErrInternal with a caller-facing message. The underlying
// cause is deliberately not attached so it cannot leak to clients.
func Internal(msg string) error { return fmt.Errorf("%w: %s", ErrInternal, msg) }

// Message returns the detail part of an error built by this package,
// or the full error text for anything else.
func Message(err error) string {
	if err == nil {
		return ""
	}
	for _, kind := range []error{ErrBadRequest, ErrUnauthorized, ErrForbidden, ErrNotFound, ErrInternal} {
		if errors.Is(err, kind) {
			prefix := kind.Error() + ": "
			s := err.Error()
			if len(s) > len(prefix) && s[:len(prefix)] == prefix {
				return s[len(prefix):]
			}
			return s
		}
	}
	return err.Error()
}
