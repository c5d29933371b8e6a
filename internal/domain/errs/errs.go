// Package errs defines the error kinds shared by every domain package.
// Domain errors wrap one of these sentinels so callers can branch on the kind
// with errors.Is while still matching the specific domain error.
package errs

import (
	"errors"
	"fmt"
)

// Error kinds.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
)

// NotFound returns an error of kind ErrNotFound describing the missing entity.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// Invalid returns an error of kind ErrInvalidArgument.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// Conflict returns an error of kind ErrConflict.
func Conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// Kind reports which kind err belongs to, or nil if it is none of them.
func Kind(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return ErrNotFound
	case errors.Is(err, ErrInvalidArgument):
		return ErrInvalidArgument
	case errors.Is(err, ErrConflict):
		return ErrConflict
	}
	return nil
}
