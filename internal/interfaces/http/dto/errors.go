package dto

import (
	"net/http"
	"strings"
)

// Error codes the HTTP layer produces itself. Domain error codes come
// from shared.DomainError and are mapped below.
const (
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeInternal      = "INTERNAL"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeTokenExpired  = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid  = "TOKEN_INVALID"
	ErrCodeTokenRevoked  = "TOKEN_REVOKED"
	ErrCodePayloadLimit  = "PAYLOAD_TOO_LARGE"
	ErrCodeRateLimited   = "RATE_LIMITED"
	ErrCodeUnprocessable = "UNPROCESSABLE"
	ErrCodeValidation    = "VALIDATION_ERROR"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Cross-tenant reads surface as NOT_FOUND upstream, so 404 here never
// leaks existence.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	// Auth
	"UNAUTHENTICATED":   http.StatusUnauthorized,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,
	ErrCodeTokenRevoked: http.StatusUnauthorized,
	"FORBIDDEN":         http.StatusForbidden,
	// A principal without a business is a malformed request for scoped
	// routes, not a state conflict.
	"NO_BUSINESS": http.StatusBadRequest,

	// Resources
	ErrCodeNotFound:  http.StatusNotFound,
	"ALREADY_EXISTS": http.StatusConflict,
	"CONFLICT":       http.StatusConflict,

	// Membership
	"ALREADY_INVITED":       http.StatusConflict,
	"ALREADY_OWNER":         http.StatusConflict,
	"INVITE_QUOTA_EXCEEDED": http.StatusConflict,
	"INVITE_EXPIRED":        http.StatusGone,
	"INVITE_NOT_PENDING":    http.StatusConflict,
	"CANNOT_REMOVE_SELF":    http.StatusConflict,

	// Payroll
	"BATCH_LOCKED": http.StatusConflict,

	// State machine violations
	"INVALID_STATE":     http.StatusUnprocessableEntity,
	"UPLOAD_INCOMPLETE": http.StatusUnprocessableEntity,

	// External collaborators
	"INSIGHT_UNAVAILABLE": http.StatusServiceUnavailable,

	ErrCodePayloadLimit: http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:  http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Validation-style codes (INVALID_*) fall back to 400; anything
// unknown is treated as an internal error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
