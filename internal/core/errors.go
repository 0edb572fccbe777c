package core

import (
	"errors"
	"fmt"
)

// Sentinel errors forming the engine's error taxonomy. Services wrap them with
// fmt.Errorf("%w: ...") so callers can branch with errors.Is while the message
// still names the offending entity, quantity, or unit.
var (
	// ErrNotFound: a referenced customer, warehouse, product, invoice,
	// invoice item, or stock entry does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation: a business-rule violation: empty item list, unit
	// mismatch, insufficient quantity, amount mismatch, mutating a paid
	// invoice. Never retryable.
	ErrValidation = errors.New("validation failed")

	// ErrConflict: a uniqueness violation at the directory layer
	// (duplicate customer/warehouse/product name).
	ErrConflict = errors.New("conflict")
)

func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}
