package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the catalog's failure kinds. The typed errors below wrap
// one of these so callers can test with errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrPriceOutOfRange = errors.New("price out of range")
	ErrInvalidArgument = errors.New("invalid argument")

	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports a single field that broke a rule.
type ValidationError struct {
	Field      string
	Rule       string
	Message    string
	Violations []ValidationError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError.
func NewValidationError(field, rule, message string) *ValidationError {
	return &ValidationError{Field: field, Rule: rule, Message: message}
}

// NotFoundError is an id lookup miss.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// PriceOutOfRangeError is raised when a concrete gift's price falls outside
// the band of the suggestion it belongs to. Bound is "minimum" or "maximum".
type PriceOutOfRangeError struct {
	Price float64
	Bound string
	Limit float64
}

func (e *PriceOutOfRangeError) Error() string {
	direction := "below"
	if e.Bound == "maximum" {
		direction = "above"
	}
	return fmt.Sprintf("concrete gift price (%.2f) is %s %s price (%.2f) for gift suggestion",
		e.Price, direction, e.Bound, e.Limit)
}

func (e *PriceOutOfRangeError) Unwrap() error { return ErrPriceOutOfRange }

// InvalidArgument wraps ErrInvalidArgument with a message.
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// RangeAsValidation turns a PriceRangeError into a ValidationError on the same field.
func RangeAsValidation(err error) error {
	var rangeErr *PriceRangeError
	if errors.As(err, &rangeErr) {
		return NewValidationError(rangeErr.Field, string(rangeErr.Reason), rangeErr.Error())
	}
	return err
}

// RangeAsArgument turns a PriceRangeError on a search bound into an InvalidArgument.
func RangeAsArgument(err error) error {
	var rangeErr *PriceRangeError
	if errors.As(err, &rangeErr) {
		return InvalidArgument("%s: %s", rangeErr.Field, rangeErr.Error())
	}
	return err
}
