package account

import (
	"errors"
	"strings"
)

var (
	ErrNotFound     = errors.New("account: not found")
	ErrConflict     = errors.New("account: already exists")
	ErrInvalidInput = errors.New("account: invalid input")
	ErrUnauthorized = errors.New("account: unauthorized")
	ErrForbidden    = errors.New("account: forbidden")
)

// FieldError describes a single invalid or missing request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates per-field problems so the HTTP layer can return
// them as one 422 response.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func newValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}
