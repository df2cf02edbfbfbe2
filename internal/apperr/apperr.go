// Package apperr defines the error kinds the ledger and catalog report to
// callers. The HTTP layer maps them to transport status codes.
package apperr

import (
	"errors"
	"fmt"
)

// ErrInsufficientBalance is returned when an allocation exceeds the
// sponsor's remaining balance.
var ErrInsufficientBalance = errors.New("insufficient sponsor balance")

// ValidationError reports a recoverable field-level input problem.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func Validation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError reports a missing referenced entity.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func NotFound(entity string) *NotFoundError {
	return &NotFoundError{Entity: entity}
}

// ConflictError reports a unique-constraint violation.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return e.Field + " already taken"
}

func Conflict(field string) *ConflictError {
	return &ConflictError{Field: field}
}

// TransactionFailure wraps a storage-level abort. The operation was rolled
// back completely; callers may retry.
type TransactionFailure struct {
	Err error
}

func (e *TransactionFailure) Error() string {
	return "transaction aborted: " + e.Err.Error()
}

func (e *TransactionFailure) Unwrap() error {
	return e.Err
}
