package validators

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every error this package returns for bad
// input, so callers can map the whole family to one response.
var ErrValidation = errors.New("validation failed")

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEmail       = errors.New("a valid email is required")
	ErrEmptyName          = errors.New("name is required")
	ErrNameTooLong        = errors.New("name is too long")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrPasswordTooLong    = errors.New("password is too long")
	ErrNoMeasurement      = errors.New("at least one measurement is required")
	ErrOutOfRange         = errors.New("value is out of range")
	ErrNotesTooLong       = errors.New("notes are too long")
	ErrEmptyTitle         = errors.New("title is required")
	ErrTitleTooLong       = errors.New("title is too long")
	ErrEmptyMessage       = errors.New("message is required")
	ErrMessageTooLong     = errors.New("message is too long")
	ErrInvalidID          = errors.New("invalid identifier")
	ErrEmptyFile          = errors.New("file is required")
	ErrEmptyFileName      = errors.New("file name is required")
	ErrUnsupportedContent = errors.New("only PDF and image files are accepted")
)

// FieldError pins a validation failure to one input field.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Err)
}

// Unwrap exposes both [ErrValidation] and the concrete cause.
func (e *FieldError) Unwrap() []error {
	return []error{ErrValidation, e.Err}
}

func fieldError(field string, err error) error {
	return &FieldError{Field: field, Err: err}
}
