// Package validation implements the field-level validation and sanitization
// pipeline for incoming task and user payloads. Each field runs an ordered
// list of independent checks; a failing check short-circuits the rest of that
// field's checks, but all fields are always evaluated so the caller receives
// every field error at once.
package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// FieldErrors maps a field name to the list of validation messages collected
// for it. It satisfies the error interface so it can travel through ordinary
// error returns; the API layer renders it as a 400 response body.
type FieldErrors map[string][]string

// Add appends a message to the given field.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Merge folds another set of field errors into this one.
func (fe FieldErrors) Merge(other FieldErrors) {
	for field, messages := range other {
		fe[field] = append(fe[field], messages...)
	}
}

// HasErrors reports whether any field collected at least one message.
func (fe FieldErrors) HasErrors() bool {
	return len(fe) > 0
}

// Error implements the error interface with a deterministic rendering.
func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for field := range fe {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(fe[field], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// AsFieldErrors unwraps err into FieldErrors if one is in its chain.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
