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

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrInvalidAmount indicates a non-positive monetary amount.
var ErrInvalidAmount = errors.New("amount must be a positive number")

// ErrPolicyViolation indicates a request exceeds the configured credit ceilings.
var ErrPolicyViolation = errors.New("request violates credit policy")

// ErrDuplicateActiveCredit indicates the account already holds an active credit.
var ErrDuplicateActiveCredit = errors.New("account already has an active credit")

// ErrInsufficientFunds indicates the account balance would go negative.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrCapitalUnderflow indicates the bank capital would go negative.
var ErrCapitalUnderflow = errors.New("bank capital cannot go negative")

// ErrAlreadyDecided indicates the request has already reached a terminal state.
var ErrAlreadyDecided = errors.New("request already decided")

// AppError carries an HTTP-like status code alongside the wrapped cause so
// handlers can map failures without inspecting messages.
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

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
