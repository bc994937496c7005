package dto

import (
	"net/http"
	"strings"

	"github.com/secondhandshop/backend/internal/domain/shared"
)

// Error codes produced by the HTTP layer itself. Domain errors keep the code
// carried by *shared.DomainError.
const (
	ErrCodeInternal       = "INTERNAL_ERROR"
	ErrCodeBadRequest     = "BAD_REQUEST"
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeInvalidID      = "INVALID_ID"
	ErrCodeTooLarge       = "REQUEST_TOO_LARGE"
	ErrCodeRateLimited    = "RATE_LIMIT_EXCEEDED"
	ErrCodeTokenExpired   = "TOKEN_EXPIRED"
	ErrCodeTokenRevoked   = "TOKEN_REVOKED"
	ErrCodeInvalidRequest = shared.CodeInvalidInput
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	shared.CodeNotFound:      http.StatusNotFound,
	shared.CodeAlreadyExists: http.StatusConflict,
	shared.CodeConflict:      http.StatusConflict,
	shared.CodeInvalidState:  http.StatusConflict,
	shared.CodeUnauthorized:  http.StatusUnauthorized,
	shared.CodeUnprocessable: http.StatusUnprocessableEntity,
	shared.CodeUpstream:      http.StatusBadGateway,

	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeInvalidID:    http.StatusBadRequest,
	ErrCodeTooLarge:     http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:  http.StatusTooManyRequests,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenRevoked: http.StatusUnauthorized,
}

// GetHTTPStatus returns the HTTP status for an error code. Any INVALID_*
// code other than INVALID_STATE is a validation failure; unknown codes are
// internal errors.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
