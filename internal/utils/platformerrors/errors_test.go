package platformerrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTypeToHTTPStatus(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		want      int
	}{
		{ErrorTypeNotFound, http.StatusNotFound},
		{ErrorTypeValidation, http.StatusBadRequest},
		{ErrorTypeSessionFull, http.StatusConflict},
		{ErrorTypeSessionEnded, http.StatusGone},
		{ErrorTypeUnauthorized, http.StatusUnauthorized},
		{ErrorTypeExternal, http.StatusBadGateway},
		{ErrorTypeDatabaseError, http.StatusInternalServerError},
		{ErrorTypeInternal, http.StatusInternalServerError},
		{ErrorType("UNKNOWN"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.errorType), func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorTypeToHTTPStatus(tt.errorType))
		})
	}
}

func TestAsErrorPreservesClassifiedType(t *testing.T) {
	ctx := context.Background()
	inner := NewError(ctx, LayerRepository, ErrorTypeNotFound, "session not found", nil)
	wrapped := fmt.Errorf("lookup failed: %w", inner)

	outer := AsError(ctx, LayerDomain, wrapped, "join session")
	assert.Equal(t, ErrorTypeNotFound, outer.Type)
	assert.Equal(t, LayerDomain, outer.Layer)
	assert.True(t, IsErrorType(outer, ErrorTypeNotFound))
}

func TestAsErrorClassifiesPlainErrorAsInternal(t *testing.T) {
	ctx := context.Background()
	outer := AsError(ctx, LayerDomain, errors.New("boom"), "extend deck")
	assert.Equal(t, ErrorTypeInternal, outer.Type)
	assert.ErrorContains(t, outer, "boom")
}

func TestAsErrorNil(t *testing.T) {
	assert.Nil(t, AsError(context.Background(), LayerDomain, nil, "noop"))
}

func TestErrorCarriesRequestID(t *testing.T) {
	ctx := context.WithValue(context.Background(), "requestID", "req-42") //nolint:staticcheck
	err := NewError(ctx, LayerHandler, ErrorTypeValidation, "bad input", nil)
	assert.Equal(t, "req-42", err.RequestID)
}
