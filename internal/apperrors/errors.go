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

// ErrUnauthorized indicates that the caller is not authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// ErrSerialization indicates that stored data could not be encoded or decoded.
var ErrSerialization = errors.New("serialization failure")

// ErrStorageUnavailable indicates that no key-value store is configured for this process.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Auth specific errors. Each wraps one of the generic kinds above so handlers can map
// them with errors.Is on either the specific or the generic sentinel.
var (
	ErrDuplicateEmail      = fmt.Errorf("%w: email already in use", ErrDuplicate)
	ErrInvalidCredentials  = fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	ErrUserNotFound        = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrIncorrectPassword   = fmt.Errorf("%w: current password is incorrect", ErrUnauthorized)
	ErrSessionNotFound     = fmt.Errorf("%w: no active session", ErrUnauthorized)
	ErrAccountNotFound     = fmt.Errorf("%w: account not found", ErrNotFound)
	ErrTransactionNotFound = fmt.Errorf("%w: transaction not found", ErrNotFound)
	ErrGoalNotFound        = fmt.Errorf("%w: goal not found", ErrNotFound)
)

// AppError carries an HTTP status code alongside an infrastructure error.
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
