package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification. The typed errors below match them with errors.Is.
var (
	ErrValidation    = errors.New("validation failed")
	ErrPrecondition  = errors.New("precondition failed")
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// ValidationError is returned when a construction or mutation would break an entity invariant.
type ValidationError struct {
	Msg string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// PreconditionError is returned when an operation is attempted in a state that does not allow it.
type PreconditionError struct {
	Msg string
}

func NewPreconditionError(msg string) *PreconditionError {
	return &PreconditionError{Msg: msg}
}

func (e *PreconditionError) Error() string {
	return e.Msg
}

func (e *PreconditionError) Is(target error) bool {
	return target == ErrPrecondition
}

// NotFoundError is returned by repositories when no record matches the requested id.
type NotFoundError struct {
	Entity string
	ID     string
}

func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
