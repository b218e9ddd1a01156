// Package apperrors provides the unified error type for authd.
// It implements structured errors with machine-readable codes and HTTP
// status mapping so handlers can translate failures into responses without
// inspecting error strings.
package apperrors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message safe to return to clients.
	Message string `json:"message"`
	// HTTPStatus is the HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Reason is an internal sub-reason, kept for logging only. It is never
	// serialized into responses so distinct failure causes stay
	// indistinguishable at the boundary.
	Reason string `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithReason sets the internal sub-reason and returns the receiver.
func (e *AppError) WithReason(reason string) *AppError {
	e.Reason = reason
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// --- Common Error Constructors ---

// Validation creates a new AppError for invalid or malformed input.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// MissingField creates a new AppError for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("Missing required field: %s", field),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"field": field},
	}
}

// AlreadyExists creates a new AppError for a duplicate account. The message
// deliberately does not disclose which field collided.
func AlreadyExists() *AppError {
	return &AppError{
		Code: ErrCodeAlreadyExists, Message: "An account with these details already exists.",
		HTTPStatus: http.StatusConflict,
	}
}

// InvalidCredentials creates the single generic error returned for every
// login failure. Wrong password, unknown username and deactivated account
// all map here so the response does not leak account existence.
func InvalidCredentials() *AppError {
	return &AppError{
		Code: ErrCodeInvalidCredentials, Message: "Invalid username or password.",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Unauthorized creates the single generic error returned for every token
// rejection. The concrete sub-reason (missing header, bad signature,
// expiry) goes into Reason for logging and never into the response.
func Unauthorized() *AppError {
	return &AppError{
		Code: ErrCodeUnauthorized, Message: "Authentication required.",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Internal creates a new AppError for an internal server error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred. Please try again.",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}

// Database creates a new AppError for a storage failure, propagated
// opaquely to the client.
func Database(cause error) *AppError {
	return &AppError{
		Code: ErrCodeDatabaseError, Message: "A storage error occurred. Please try again.",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}
