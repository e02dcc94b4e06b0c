package dto

import (
	"net/http"
	"strings"
)

// Well-known error codes shared by the domain layer and the API
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeValidation   = "VALIDATION_ERROR"

	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"

	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeAlreadyExists       = "ALREADY_EXISTS"
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"

	ErrCodeInvalidState = "INVALID_STATE"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here fall back to the prefix rules in GetHTTPStatus.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,

	ErrCodeUnauthorized:   http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"INVALID_TOKEN":       http.StatusUnauthorized,
	ErrCodeForbidden:      http.StatusForbidden,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	"ALREADY_ACTIVE":         http.StatusUnprocessableEntity,
	"ALREADY_INACTIVE":       http.StatusUnprocessableEntity,
	"ACCOUNT_DEACTIVATED":    http.StatusUnprocessableEntity,
	"CUSTOMER_INACTIVE":      http.StatusUnprocessableEntity,
	"VEHICLE_RENTED":         http.StatusUnprocessableEntity,
	"VEHICLE_UNAVAILABLE":    http.StatusUnprocessableEntity,
	"ORGANIZATION_SUSPENDED": http.StatusUnprocessableEntity,
	"INTEGRATION_DISABLED":   http.StatusUnprocessableEntity,
	"ITEM_UNIDENTIFIABLE":    http.StatusUnprocessableEntity,
	"RESYNC_FAILED":          http.StatusUnprocessableEntity,

	"PROVIDER_UNAVAILABLE": http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status for a domain error code.
// INVALID_* codes not listed above are treated as bad input; anything
// else unknown is an internal error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// ValidationDetail describes one field-level validation problem
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewValidationErrorResponse creates an error envelope carrying
// field-level validation details
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) Response {
	resp := NewErrorResponseWithRequestID(ErrCodeValidation, message, requestID)
	if len(details) > 0 {
		resp.Data = details
	}
	return resp
}
