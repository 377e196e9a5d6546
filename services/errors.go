// services/errors.go - Error kinds shared across services
package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrForbidden is returned whenever an action is denied. Read paths
	// return it for missing entities too, so a caller cannot distinguish
	// "does not exist" from "not permitted".
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is surfaced only where existence is not sensitive
	// (admin and coach-owned contexts).
	ErrNotFound = errors.New("not found")

	// ErrConflict covers uniqueness violations and deletes blocked by
	// dependent records.
	ErrConflict = errors.New("conflict")

	// ErrSchemaMismatch means the clips table has neither the current nor
	// the legacy column for a field; writing would silently drop data.
	ErrSchemaMismatch = errors.New("schema mismatch")
)

// ValidationError carries field-level detail so the caller can correct
// input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// PartialError reports a batch where some, but not all, items failed.
// Items maps the failed item's id to its error message.
type PartialError struct {
	Items map[uint]string
}

func (e *PartialError) Error() string {
	parts := make([]string, 0, len(e.Items))
	for id, msg := range e.Items {
		parts = append(parts, fmt.Sprintf("#%d: %s", id, msg))
	}
	return "some items failed: " + strings.Join(parts, "; ")
}
