package shared

import (
	"errors"
	"strings"
)

// Error codes carried by DomainError. The HTTP layer maps them to status codes.
const (
	CodeNotFound      = "NOT_FOUND"
	CodeAlreadyExists = "ALREADY_EXISTS"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeInvalidState  = "INVALID_STATE"
	CodeConflict      = "CONFLICT"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeUnprocessable = "UNPROCESSABLE"
	CodeUpstream      = "UPSTREAM_UNAVAILABLE"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same code, so errors.Is works
// against the sentinel values below. Every specific INVALID_* code other
// than INVALID_STATE also matches ErrInvalidInput.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	if t.Code == e.Code {
		return true
	}
	return t.Code == CodeInvalidInput && e.IsValidation()
}

// IsValidation reports whether the error describes bad caller input.
func (e *DomainError) IsValidation() bool {
	return e.Code != CodeInvalidState && strings.HasPrefix(e.Code, "INVALID_")
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewNotFoundError creates an error for a missing resource.
func NewNotFoundError(message string) *DomainError {
	return NewDomainError(CodeNotFound, message)
}

// NewConflictError creates an error for an operation that is not allowed
// given the current state of the catalog or customer records.
func NewConflictError(message string) *DomainError {
	return NewDomainError(CodeConflict, message)
}

// NewValidationError creates an argument error. Code may be a specific
// INVALID_* code; an empty code falls back to INVALID_INPUT.
func NewValidationError(code, message string) *DomainError {
	if code == "" {
		code = CodeInvalidInput
	}
	return NewDomainError(code, message)
}

// NewUnprocessableError creates an error for input an external service refused.
func NewUnprocessableError(message string) *DomainError {
	return NewDomainError(CodeUnprocessable, message)
}

// NewUpstreamError creates an error for an external service that could not be reached.
func NewUpstreamError(message string) *DomainError {
	return NewDomainError(CodeUpstream, message)
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput  = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrInvalidState  = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrConflict      = NewDomainError(CodeConflict, "Operation conflicts with existing data")
	ErrUnauthorized  = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
)
