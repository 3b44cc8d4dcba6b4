package errors

import (
	"net/http"

	"doable/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-facing error message
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-facing error message
func (e *BaseError) Message() string {
	return e.message
}

// Predefined error types. Messages are the wire contract: every error
// response body is {"error": "<message>"}.
var (
	// Validation errors (400)
	ErrUsernameEmpty = NewBaseError(
		http.StatusBadRequest,
		"USERNAME_EMPTY",
		"Username cannot be empty",
	)

	ErrPasswordRequired = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_REQUIRED",
		"Password is required",
	)

	ErrPasswordTooShort = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_TOO_SHORT",
		"Password must be at least 3 characters long",
	)

	ErrCredentialsRequired = NewBaseError(
		http.StatusBadRequest,
		"CREDENTIALS_REQUIRED",
		"Username and password are required",
	)

	ErrTodoTextRequired = NewBaseError(
		http.StatusBadRequest,
		"TODO_TEXT_REQUIRED",
		"Todo text is required",
	)

	ErrCompletedNotBoolean = NewBaseError(
		http.StatusBadRequest,
		"COMPLETED_NOT_BOOLEAN",
		"Completed must be a boolean value",
	)

	ErrInvalidTodoID = NewBaseError(
		http.StatusBadRequest,
		"INVALID_TODO_ID",
		"Invalid todo ID",
	)

	// Authentication errors (401)
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid username or password",
	)

	ErrAuthRequired = NewBaseError(
		http.StatusUnauthorized,
		"AUTH_REQUIRED",
		"Authentication required",
	)

	// Conflict errors (409)
	ErrUsernameTaken = NewBaseError(
		http.StatusConflict,
		"USERNAME_TAKEN",
		"Username already exists. Please log in instead.",
	)

	// Not-found errors (404). Missing, deleted and foreign-owned rows are
	// deliberately indistinguishable so existence never leaks across users.
	ErrTodoNotFound = NewBaseError(
		http.StatusNotFound,
		"TODO_NOT_FOUND",
		"Todo not found or deleted",
	)

	ErrTodoAlreadyDeleted = NewBaseError(
		http.StatusNotFound,
		"TODO_ALREADY_DELETED",
		"Todo not found or already deleted",
	)

	// General errors (500)
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-facing error message
func (e *DatabaseExecuteError) Message() string {
	return "Internal server error"
}

// Unwrap exposes the underlying database error for errors.Is/As checks.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}
