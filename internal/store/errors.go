package store

import (
	"errors"
	"fmt"
)

// Error taxonomy surfaced to the API layer. Handlers translate these into
// 404 / 403 / 400 responses; anything else is a 500.
var (
	// ErrNotFound: the referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrPermission: the entity exists but belongs to someone else. Reported
	// distinctly from ErrNotFound, never collapsed into it.
	ErrPermission = errors.New("permission denied")
	// ErrValidation: malformed input or wrong current state for the
	// requested transition.
	ErrValidation = errors.New("validation failed")
)

func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func permissionf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPermission, fmt.Sprintf(format, args...))
}

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
