package errors

import (
	"errors"
	"fmt"
	"net/http"

	"learning-log/internal/domain"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation         ErrorType = "validation"
	ErrorTypeUnreadableDocument ErrorType = "unreadable_document"
	ErrorTypeUploadWrite        ErrorType = "upload_write_failure"
	ErrorTypeNotFound           ErrorType = "not_found"
	ErrorTypeUnauthorized       ErrorType = "unauthorized"
	ErrorTypeInternal           ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		Details:    detail,
		StatusCode: http.StatusBadRequest,
	}
}

// NewUnreadableDocumentError reports a stored file that could not be parsed.
func NewUnreadableDocumentError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeUnreadableDocument,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewUploadWriteError reports an upload that could not be persisted.
func NewUploadWriteError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeUploadWrite,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewInternalError creates a new internal server error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// FromDomain maps domain errors to AppErrors for the request boundary.
// Errors that already are AppErrors pass through unchanged.
func FromDomain(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return NewValidationError(validationErr.Error())
	case errors.Is(err, domain.ErrInvalidFile):
		return NewValidationError("Invalid file", err.Error())
	case errors.Is(err, domain.ErrUnreadableDocument):
		return NewUnreadableDocumentError("Document could not be read", err)
	case errors.Is(err, domain.ErrUploadWriteFailure):
		return NewUploadWriteError("Failed to save uploaded file", err)
	case errors.Is(err, domain.ErrTopicNotFound):
		return NewNotFoundError("Topic not found")
	case errors.Is(err, domain.ErrEntryNotFound):
		return NewNotFoundError("Entry not found")
	case errors.Is(err, domain.ErrAccessDenied):
		// Someone else's records are reported as missing.
		return NewNotFoundError("Not found")
	case errors.Is(err, domain.ErrInvalidToken):
		return NewUnauthorizedError("Invalid token")
	default:
		return NewInternalError("Internal server error", err)
	}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode returns the HTTP status code for an error
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
