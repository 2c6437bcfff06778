package dto

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeUnknown, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeValidationRequired, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeTokenExpired, http.StatusUnauthorized},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeConflict, http.StatusConflict},
		{ErrCodeConcurrencyConflict, http.StatusConflict},
		{ErrCodeStateConflict, http.StatusConflict},
		{ErrCodeGateFailure, http.StatusUnprocessableEntity},
		{ErrCodeBusinessRule, http.StatusUnprocessableEntity},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Domain codes should be normalized to transport codes
		{"VALIDATION", ErrCodeValidation},
		{"NOT_FOUND", ErrCodeNotFound},
		{"ALREADY_EXISTS", ErrCodeAlreadyExists},
		{"INVALID_INPUT", ErrCodeInvalidInput},
		{"STATE_CONFLICT", ErrCodeStateConflict},
		{"GATE_FAILURE", ErrCodeGateFailure},
		{"UNAUTHORIZED", ErrCodeUnauthorized},
		{"FORBIDDEN", ErrCodeForbidden},
		{"CONCURRENCY_CONFLICT", ErrCodeConcurrencyConflict},
		// Already-normalized codes pass through unchanged
		{ErrCodeNotFound, ErrCodeNotFound},
		{ErrCodeGateFailure, ErrCodeGateFailure},
		// Unknown codes pass through unchanged
		{"SOMETHING_ELSE", "SOMETHING_ELSE"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestNewSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse(map[string]string{"title": "School fees for Amina"})

	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
	assert.Nil(t, resp.Meta)
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a", "b"}, 45, 2, 20)

	assert.True(t, resp.Success)
	if assert.NotNil(t, resp.Meta) {
		assert.Equal(t, int64(45), resp.Meta.Total)
		assert.Equal(t, 2, resp.Meta.Page)
		assert.Equal(t, 20, resp.Meta.PageSize)
		assert.Equal(t, 3, resp.Meta.TotalPages)
	}
}

func TestNewSuccessResponseWithMeta_ExactPages(t *testing.T) {
	resp := NewSuccessResponseWithMeta(nil, 40, 1, 20)

	assert.Equal(t, 2, resp.Meta.TotalPages)
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(ErrCodeNotFound, "fundraiser not found")

	assert.False(t, resp.Success)
	if assert.NotNil(t, resp.Error) {
		assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
		assert.Equal(t, "fundraiser not found", resp.Error.Message)
		assert.Empty(t, resp.Error.RequestID)
	}
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeGateFailure, "payout configuration is required", "req-123")

	assert.False(t, resp.Success)
	assert.Equal(t, "req-123", resp.Error.RequestID)
	assert.Equal(t, ErrCodeGateFailure, resp.Error.Code)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "title", Message: "This field is required"},
		{Field: "target_amount", Message: "Must be greater than 0"},
	}
	resp := NewValidationErrorResponse("Request validation failed", "req-456", details)

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "title", resp.Error.Details[0].Field)
}

func TestErrorInfoJSON_OmitsEmptyFields(t *testing.T) {
	resp := NewErrorResponse(ErrCodeInternal, "boom")

	data, err := json.Marshal(resp)
	assert.NoError(t, err)
	assert.NotContains(t, string(data), "request_id")
	assert.NotContains(t, string(data), "details")
	assert.NotContains(t, string(data), "field")
}

func TestTimestampResponseJSON(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	ts := TimestampResponse{CreatedAt: now, UpdatedAt: now}

	data, err := json.Marshal(ts)
	assert.NoError(t, err)

	var decoded TimestampResponse
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.CreatedAt.Equal(now))
}

func TestDefaultListRequest(t *testing.T) {
	req := DefaultListRequest()

	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 20, req.PageSize)
	assert.Equal(t, "created_at", req.OrderBy)
	assert.Equal(t, "desc", req.OrderDir)
}
