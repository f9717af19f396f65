package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrConflict      = errors.New("conflict")

	// ErrUnknownCategory is returned when a note type has no registered processor.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrMissingField is returned when a configured field is absent from a note.
	ErrMissingField = errors.New("missing field")
	// ErrMalformedAnnotation is returned when the primary and annotation
	// fields do not line up word by word.
	ErrMalformedAnnotation = errors.New("malformed annotation")
	ErrInvalidCase         = errors.New("invalid case")
	ErrInvalidGender       = errors.New("invalid gender")
	// ErrUnsupportedNesting is returned for a future form opened inside another one.
	ErrUnsupportedNesting = errors.New("nested future form is not supported")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// InvalidValueError reports an annotation value that is neither a known
// code nor a known name. It matches both ErrValidation and its Kind
// (ErrInvalidCase or ErrInvalidGender) with errors.Is.
type InvalidValueError struct {
	Kind  error
	Field string
	Value string
}

// NewInvalidValueError creates an InvalidValueError.
func NewInvalidValueError(kind error, field, value string) *InvalidValueError {
	return &InvalidValueError{Kind: kind, Field: field, Value: value}
}

func (e *InvalidValueError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %q", e.Kind, e.Value)
	}
	return fmt.Sprintf("field %s: %v: %q", e.Field, e.Kind, e.Value)
}

func (e *InvalidValueError) Unwrap() []error {
	return []error{e.Kind, ErrValidation}
}

// WithField returns a copy of e bound to the given field name.
func (e *InvalidValueError) WithField(field string) *InvalidValueError {
	cp := *e
	cp.Field = field
	return &cp
}
