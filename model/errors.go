package model

import (
	"errors"
	"fmt"
)

var (
	// ErrUniqueness is the kind of errors raised when a value is already used in a model
	ErrUniqueness = errors.New("uniqueness violation")
	// ErrInvalidArgument is the kind of errors raised when a constructor gets invalid values
	ErrInvalidArgument = errors.New("invalid argument")
)

// ConstraintError is raised when an entity may not be built.
// Use errors.Is with ErrUniqueness or ErrInvalidArgument to find its kind.
type ConstraintError struct {
	// kind is one of the sentinel errors of the package
	kind error
	// source is the constrained entity or registry
	source string
	// value is the offending value, if any
	value string
	// message details the violated rule
	message string
}

// Error to implement error interface
func (e ConstraintError) Error() string {
	if len(e.value) == 0 {
		return fmt.Sprintf("%s: %s: %s", e.kind.Error(), e.source, e.message)
	}

	return fmt.Sprintf("%s: %s: %s (value %q)", e.kind.Error(), e.source, e.message, e.value)
}

// Unwrap returns the kind of error
func (e ConstraintError) Unwrap() error {
	return e.kind
}

// Source returns the entity or registry name
func (e ConstraintError) Source() string {
	return e.source
}

// Value returns the offending value
func (e ConstraintError) Value() string {
	return e.value
}

// NewUniquenessError returns an error for a value already registered for a constraint
func NewUniquenessError(constraint Constraint, value string) ConstraintError {
	return ConstraintError{
		kind:    ErrUniqueness,
		source:  string(constraint),
		value:   value,
		message: "value already used",
	}
}

// NewArgumentError returns an invalid argument error for an entity
func NewArgumentError(entity string, message string) ConstraintError {
	return ConstraintError{
		kind:    ErrInvalidArgument,
		source:  entity,
		message: message,
	}
}

// NewArgumentValueError returns an invalid argument error with the offending value
func NewArgumentValueError(entity string, message string, value string) ConstraintError {
	return ConstraintError{
		kind:    ErrInvalidArgument,
		source:  entity,
		value:   value,
		message: message,
	}
}

// IsUniquenessError returns true if err comes from a uniqueness violation
func IsUniquenessError(err error) bool {
	return errors.Is(err, ErrUniqueness)
}
