// Package apperrors provides application-level error types shared by the
// usecase and HTTP layers. Validation-class errors carry field-level messages
// that are safe to return to the caller; internal errors are not.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies an application error
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation_error"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeRestricted ErrorType = "restricted_assignment"
	ErrorTypeInternal   ErrorType = "internal_error"
)

// AppError represents an application error with an HTTP status code
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// NewInvalidIdentifierError reports a payload with no usable lookup key
func NewInvalidIdentifierError(field string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: fmt.Sprintf("missing or empty identifier: %s", field),
		Code:    http.StatusBadRequest,
	}
}

// NewValidationError creates a validation error naming the offending field
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    http.StatusBadRequest,
	}
}

// NewNotFoundError reports a resolved key that matched no record
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
		Code:    http.StatusNotFound,
	}
}

// NewRestrictedAssignmentError reports a gate/aircraft restriction violation.
// The message names the restriction so the caller can act on it.
func NewRestrictedAssignmentError(gateNumber, aircraftType string) *AppError {
	return &AppError{
		Type:    ErrorTypeRestricted,
		Message: fmt.Sprintf("gate %s is restricted for aircraft type %s", gateNumber, aircraftType),
		Code:    http.StatusConflict,
	}
}

// NewInternalError creates a generic internal error. Details stay out of the
// message so they are never leaked to the caller.
func NewInternalError() *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: "internal server error",
		Code:    http.StatusInternalServerError,
	}
}

// AsAppError extracts an AppError from an error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsValidation reports whether err is a validation-class error
func IsValidation(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Type == ErrorTypeValidation
}

// IsNotFound reports whether err is a not-found error
func IsNotFound(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Type == ErrorTypeNotFound
}
