package core

import "fmt"

// ValidationError represents a malformed request — an out-of-range
// num_simulations, a negative score, a missing required field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError naming the offending field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// ConflictError represents a single-flight violation: a simulation job is
// already active.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NewConflictError creates a new ConflictError.
func NewConflictError(message string) error {
	return &ConflictError{Message: message}
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	_, ok := err.(*ConflictError)
	return ok
}

// NotFoundError represents a resource that could not be found.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*NotFoundError)
	return ok
}

// CancelledError marks a job as having been cooperatively cancelled. It is
// surfaced as a terminal job state, never as an HTTP error.
type CancelledError struct{}

func (e *CancelledError) Error() string { return "cancelled" }

// IsCancelled reports whether err is a CancelledError.
func IsCancelled(err error) bool {
	_, ok := err.(*CancelledError)
	return ok
}

// InternalError wraps an unexpected worker failure. It is recorded on the
// job and never crashes the process.
type InternalError struct {
	Cause error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error: %v", e.Cause)
}

func (e *InternalError) Unwrap() error { return e.Cause }

// NewInternalError wraps cause as an InternalError.
func NewInternalError(cause error) error {
	return &InternalError{Cause: cause}
}
