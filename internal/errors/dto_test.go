package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewErrorResponse(t *testing.T) {
	err := WithError(errors.New("dial tcp 10.0.0.1:443: connection refused")).
		WithHint("Failed to reach kapital").
		WithReportableDetails(map[string]any{"gateway": "kapital"}).
		Mark(ErrHTTPClient)
	err = WithError(err).
		WithReportableDetails(map[string]any{"operation": "get_order"}).
		Mark(ErrHTTPClient)

	resp := NewErrorResponse(err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Failed to reach kapital", resp.Error.Message)
	assert.Equal(t, map[string]any{"gateway": "kapital", "operation": "get_order"}, resp.Error.Details)
	assert.NotContains(t, resp.Error.Message, "10.0.0.1")
}

func TestNewErrorResponseWithoutHints(t *testing.T) {
	resp := NewErrorResponse(errors.New("boom"))
	assert.Equal(t, fallbackMessage, resp.Error.Message)
	assert.Nil(t, resp.Error.Details)
}

func TestDisplayMessagePrefersInnermostHint(t *testing.T) {
	err := WithError(NewError("bad amount").WithHint("amount must be positive").Mark(ErrValidation)).
		WithHint("Request failed").
		Mark(ErrValidation)

	assert.Equal(t, "amount must be positive", DisplayMessage(err))
}
