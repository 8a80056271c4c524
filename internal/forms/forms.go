// Package forms declares the form contracts of the application: which fields
// an operation accepts from the outside and which constraints apply. Handlers
// parse a request into a form, call Validate, and re-render the originating
// page with the form's field errors when validation fails.
package forms

import (
	"context"

	"chirp/internal/models"
)

// Errors collects field-level validation messages keyed by field name.
type Errors map[string][]string

// Add appends a message for the given field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Any reports whether any field has errors.
func (e Errors) Any() bool {
	return len(e) > 0
}

// Field returns the messages recorded for a field.
func (e Errors) Field(name string) []string {
	return e[name]
}

// UserFinder is the subset of the user repository the form layer needs for
// uniqueness checks.
type UserFinder interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
