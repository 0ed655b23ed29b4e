// Package apperrors defines the error taxonomy shared by all three
// services. Handlers return these values unwrapped; the app-level error
// handler maps each type to its HTTP status.
package apperrors

import "fmt"

// FieldError is a single field-level validation violation.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError reports that a request body failed validation. It
// carries every violation found, not just the first.
type ValidationError struct {
	Violations []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d violation(s)", len(e.Violations))
}

// NewValidationError creates a ValidationError from a list of violations.
func NewValidationError(violations []FieldError) *ValidationError {
	return &ValidationError{Violations: violations}
}

// NotFoundError reports that no entity with the given identity exists.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// NewNotFound creates a NotFoundError for the given resource kind and id.
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// StorageError wraps a failure from the backing store. Its detail is
// logged internally and never leaked to clients.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err with the failing operation name.
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
