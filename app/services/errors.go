// Package services holds the business logic between controllers and
// repositories. Services accept small store interfaces so tests can swap in
// in-memory fakes, and return errors from the taxonomy below.
package services

import (
	"errors"
	"fmt"
)

// Sentinel errors every service speaks. Controllers translate them to HTTP
// statuses; nothing below the controller layer knows about status codes.
var (
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrValidation          = errors.New("validation failed")
	ErrPaymentVerification = errors.New("payment verification failed")
)

// E wraps a sentinel with a user-facing message:
//
//	return services.E(services.ErrConflict, "insufficient stock for %q", name)
//
// errors.Is(err, services.ErrConflict) still holds on the result.
func E(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{kind}, args...)...)
}

// Message extracts the user-facing part of a taxonomy error: the text after
// the sentinel prefix, or the whole error text when no sentinel matches.
func Message(err error) string {
	if err == nil {
		return ""
	}
	for _, kind := range []error{
		ErrUnauthenticated, ErrForbidden, ErrNotFound,
		ErrConflict, ErrValidation, ErrPaymentVerification,
	} {
		if errors.Is(err, kind) {
			prefix := kind.Error() + ": "
			if s := err.Error(); len(s) > len(prefix) && s[:len(prefix)] == prefix {
				return s[len(prefix):]
			}
			return kind.Error()
		}
	}
	return err.Error()
}
