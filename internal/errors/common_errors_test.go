package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name:     "without cause",
			appError: NewConfigError("AzureWebJobsStorage is not set.", nil),
			expected: "[CONFIG] AzureWebJobsStorage is not set.",
		},
		{
			name:     "with cause",
			appError: NewParsingError("failed to parse CSV", errors.New("wrong number of fields")),
			expected: "[PARSING] failed to parse CSV: wrong number of fields",
		},
		{
			name:     "not found",
			appError: NewNotFoundError("blob"),
			expected: "[NOT_FOUND] blob not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStorageError("download failed", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestAppError_Is(t *testing.T) {
	err := fmt.Errorf("process: %w", NewAggregationError("empty group", nil))

	assert.True(t, errors.Is(err, &AppError{Type: ErrTypeAggregation}))
	assert.False(t, errors.Is(err, &AppError{Type: ErrTypeConfig}))

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "empty group", appErr.Message)
}

func TestAppError_WithContext(t *testing.T) {
	err := NewValidationError("missing column", nil).
		WithContext("column", "Fat(g)").
		WithContext("row", 3)

	assert.Equal(t, "Fat(g)", err.Context["column"])
	assert.Equal(t, 3, err.Context["row"])

	bare := &AppError{Type: ErrTypeStorage}
	bare.WithContext("blob", "All_Diets.csv")
	assert.Equal(t, "All_Diets.csv", bare.Context["blob"])
}

func TestIsType(t *testing.T) {
	inner := NewParsingError("bad csv", errors.New("EOF"))
	outer := NewStorageError("wrapped", inner)

	assert.True(t, IsType(outer, ErrTypeStorage))
	assert.True(t, IsType(outer, ErrTypeParsing))
	assert.True(t, IsType(fmt.Errorf("ctx: %w", inner), ErrTypeParsing))
	assert.False(t, IsType(inner, ErrTypeConfig))
	assert.False(t, IsType(errors.New("plain"), ErrTypeConfig))
	assert.False(t, IsType(nil, ErrTypeConfig))
}
