// Package apperrors defines structured application error types, so that
// configuration mistakes, rejected inputs, failed solves and server faults
// can be told apart and mapped to exit codes or HTTP statuses.
//
// All error types implement Unwrap() where they carry a cause, so errors.Is()
// and errors.As() see through them.
package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes signal the outcome of the program to the OS.
const (
	ExitSuccess       = 0   // Successful execution.
	ExitErrorGeneric  = 1   // Generic error.
	ExitErrorTimeout  = 2   // The solve timed out.
	ExitErrorMismatch = 3   // Strategies disagreed on the optimal order.
	ExitErrorConfig   = 4   // Invalid flags or invalid dimensions.
	ExitErrorCanceled = 130 // Canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// SolveError wraps a failed solve with the strategy that produced it.
type SolveError struct {
	// Algorithm is the display name of the strategy, if known.
	Algorithm string
	// Cause is the underlying error.
	Cause error
}

// Error returns the message of the cause, prefixed by the algorithm.
func (e SolveError) Error() string {
	if e.Algorithm == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Algorithm, e.Cause)
}

// Unwrap returns the original error.
func (e SolveError) Unwrap() error { return e.Cause }

// NewSolveError wraps cause. It returns nil when cause is nil.
func NewSolveError(algorithm string, cause error) error {
	if cause == nil {
		return nil
	}
	return SolveError{Algorithm: algorithm, Cause: cause}
}

// MismatchError reports strategies that disagreed on cost or order.
type MismatchError struct {
	// Results maps strategy name to "<cost> <parenthesization>".
	Results map[string]string
}

func (e MismatchError) Error() string {
	return fmt.Sprintf("strategies disagree on the optimal order: %v", e.Results)
}

// ServerError represents errors that occur in the HTTP server component.
type ServerError struct {
	// Message is a descriptive message about the server error.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error combines the message and the cause if present.
func (e ServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError creates a ServerError with a message and optional cause.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// It returns nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline
// exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ValidationError represents an invalid request or configuration field.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message describes why validation failed.
	Message string
	// Value is the invalid value (optional, may be nil).
	Value any
}

// Error returns the error message for a ValidationError.
func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, message string, value any) error {
	return ValidationError{Field: field, Message: message, Value: value}
}
