package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrAccountState indicates that an account is in a state that forbids the
// requested operation (frozen, deleted, unmatured fixed, self-transfer, ...).
var ErrAccountState = errors.New("account state forbids operation")

// ErrLimitExceeded indicates that a daily transaction cap or an account
// creation quota would be exceeded.
var ErrLimitExceeded = errors.New("limit exceeded")

// ErrInsufficientBalance indicates that the debited account cannot cover the
// requested amount within its over-limit allowance.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrPersistence indicates that the underlying store was unavailable or a
// write failed.
var ErrPersistence = errors.New("persistence error")

// ErrRetryExhausted indicates that a bounded retry loop (account number
// generation, optimistic-concurrency conflicts) ran out of attempts.
var ErrRetryExhausted = errors.New("retries exhausted")

// ErrForbidden indicates that the caller failed an authorization gate.
var ErrForbidden = errors.New("forbidden")

// AppError carries an HTTP-ish status code alongside a message and an
// optional wrapped cause. Repositories use it to report persistence failures
// without leaking driver types into the services.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is treat any 5xx AppError as ErrPersistence and any 404 as
// ErrNotFound, so callers only ever match sentinels.
func (e *AppError) Is(target error) bool {
	switch target {
	case ErrPersistence:
		return e.Code >= 500
	case ErrNotFound:
		return e.Code == 404
	}
	return false
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
