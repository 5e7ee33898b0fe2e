package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrLinkage indicates that a sale could not be linked to the requested purchase.
var ErrLinkage = errors.New("linkage error")

// ErrConflict indicates that an operation would break a reference held by other records.
var ErrConflict = errors.New("conflict")

// ErrCalculation indicates that pricing preconditions were violated.
var ErrCalculation = errors.New("calculation error")

// ErrStorage indicates a persistence layer failure (driver, constraint, scan).
var ErrStorage = errors.New("storage error")

// ErrStorageUnavailable indicates that the persistence layer did not answer in time.
var ErrStorageUnavailable = errors.New("storage unavailable")

// AppError carries an HTTP-ish status code and a human readable message
// alongside the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError returns an error wrapping ErrValidation whose Error()
// is exactly the user-facing message.
func NewValidationError(message string) error {
	return &fieldError{kind: ErrValidation, message: message}
}

// NewLinkageError returns an error wrapping ErrLinkage.
func NewLinkageError(message string) error {
	return &fieldError{kind: ErrLinkage, message: message}
}

// NewNotFoundError returns an error wrapping ErrNotFound.
func NewNotFoundError(message string) error {
	return &fieldError{kind: ErrNotFound, message: message}
}

// NewConflictError returns an error wrapping ErrConflict.
func NewConflictError(message string) error {
	return &fieldError{kind: ErrConflict, message: message}
}

// NewCalculationError returns an error wrapping ErrCalculation.
func NewCalculationError(message string) error {
	return &fieldError{kind: ErrCalculation, message: message}
}

// NewStorageError wraps a driver error as ErrStorage, keeping the cause for logs.
func NewStorageError(message string, err error) error {
	return NewAppError(500, message, fmt.Errorf("%w: %w", ErrStorage, err))
}

// NewStorageUnavailableError wraps a timed-out call as ErrStorageUnavailable.
func NewStorageUnavailableError(message string, err error) error {
	return NewAppError(503, message, fmt.Errorf("%w: %w", ErrStorageUnavailable, err))
}

// fieldError is an expected business failure; its message is safe to show.
type fieldError struct {
	kind    error
	message string
}

func (e *fieldError) Error() string { return e.message }

func (e *fieldError) Unwrap() error { return e.kind }
