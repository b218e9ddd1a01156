package apperrors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid or malformed.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Resource errors
const (
	// ErrCodeAlreadyExists indicates the account already exists.
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
)

// Authentication errors
const (
	// ErrCodeInvalidCredentials indicates a failed login. It covers wrong
	// password, unknown username and deactivated accounts uniformly.
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	// ErrCodeUnauthorized indicates a missing, malformed, invalid or
	// expired token. Subtypes are not distinguished at the boundary.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeDatabaseError indicates a storage error.
	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"
)

// Internal sub-reasons for UNAUTHORIZED rejections. These are attached via
// WithReason and surface only in logs.
const (
	ReasonMissingHeader    = "missing_authorization_header"
	ReasonMalformedHeader  = "malformed_authorization_header"
	ReasonMalformedToken   = "malformed_token"
	ReasonInvalidSignature = "invalid_signature"
	ReasonTokenExpired     = "token_expired"
	ReasonUnknownSubject   = "unknown_subject"
)
