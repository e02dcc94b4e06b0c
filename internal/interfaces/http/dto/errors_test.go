package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{"INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"VEHICLE_RENTED", http.StatusUnprocessableEntity},
		{"INTEGRATION_DISABLED", http.StatusUnprocessableEntity},
		{"PROVIDER_UNAVAILABLE", http.StatusBadGateway},
		{"INVALID_PLATE", http.StatusBadRequest},
		{"INVALID_DUE_DATE", http.StatusBadRequest},
		{"SOMETHING_NOBODY_MAPPED", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Customer not found", "req-123")

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "Customer not found", resp.Error.Message)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a"}, 5, 1, 2)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(5), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{{Field: "email", Message: "invalid format"}}
	resp := NewValidationErrorResponse("Request validation failed", "req-1", details)

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, details, resp.Data)
}
