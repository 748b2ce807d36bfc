package base

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	ierr "github.com/flexprice/azpay/internal/errors"
	"github.com/flexprice/azpay/internal/httpclient"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testOrderRequest struct {
	OrderID  string          `json:"order_id" validate:"required"`
	Amount   decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Currency string          `json:"currency" validate:"required,len=3"`
}

type testOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type testErrorResponse struct {
	Code    string `json:"errorCode"`
	Message string `json:"errorDescription"`
}

func newTestSchema() *Schema[testOrderRequest, testOrderResponse, testErrorResponse] {
	return &Schema[testOrderRequest, testOrderResponse, testErrorResponse]{
		Gateway: "test",
		Pre: func(_ context.Context, fields map[string]any) error {
			SetDefault(fields, "currency", "AZN")
			return nil
		},
		Check: func(resp *testOrderResponse) *GatewayError {
			if resp.Status == "declined" {
				return &GatewayError{Gateway: "test", Code: "declined", Message: "card declined"}
			}
			return nil
		},
		Failure: func(_ int, fail *testErrorResponse) *GatewayError {
			if fail.Code == "" {
				return nil
			}
			return &GatewayError{Gateway: "test", Code: fail.Code, Message: fail.Message}
		},
	}
}

func TestSchema_BuildRequest(t *testing.T) {
	prepared, err := newTestSchema().BuildRequest(context.Background(), Params{
		"order_id": "ORD-1",
		"amount":   "10.50",
	})
	require.NoError(t, err)

	req, ok := prepared.Request.(*testOrderRequest)
	require.True(t, ok)
	assert.Equal(t, "AZN", req.Currency)
	assert.True(t, decimal.RequireFromString("10.5").Equal(req.Amount))
	assert.Equal(t, "ORD-1", prepared.Values["order_id"])
	assert.Equal(t, "AZN", prepared.Payload.Fields["currency"])
}

func TestSchema_BuildRequestCallerWinsOverDefault(t *testing.T) {
	prepared, err := newTestSchema().BuildRequest(context.Background(), Params{
		"order_id": "ORD-1",
		"amount":   5,
		"currency": "USD",
	})
	require.NoError(t, err)
	assert.Equal(t, "USD", prepared.Payload.Fields["currency"])
}

func TestSchema_BuildRequestValidation(t *testing.T) {
	_, err := newTestSchema().BuildRequest(context.Background(), Params{"amount": "10"})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
	assert.Contains(t, errors.FlattenHints(err), "order_id")
}

func TestSchema_BuildRequestDoesNotMutateParams(t *testing.T) {
	params := Params{"order_id": "ORD-1", "amount": "1"}
	_, err := newTestSchema().BuildRequest(context.Background(), params)
	require.NoError(t, err)
	assert.NotContains(t, params, "currency")
}

func TestSchema_ParseResponse(t *testing.T) {
	schema := newTestSchema()

	tests := []struct {
		name      string
		status    int
		body      string
		wantCode  string
		wantFail  bool
		wantError bool
	}{
		{name: "success", status: http.StatusOK, body: `{"id":"1","status":"approved"}`},
		{name: "redirect status uses success shape", status: http.StatusFound, body: `{"id":"1"}`},
		{name: "business failure in success body", status: http.StatusOK, body: `{"id":"1","status":"declined"}`, wantCode: "declined"},
		{name: "error shape", status: http.StatusBadRequest, body: `{"errorCode":"InvalidAmount","errorDescription":"bad amount"}`, wantCode: "InvalidAmount", wantFail: true},
		{name: "error without code falls back to status", status: http.StatusInternalServerError, body: `{}`, wantCode: "500", wantFail: true},
		{name: "empty error body", status: http.StatusNotFound, body: ``, wantCode: "404", wantFail: true},
		{name: "malformed body", status: http.StatusOK, body: `<html>`, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := schema.ParseResponse(context.Background(), &httpclient.Response{
				StatusCode: tt.status,
				Body:       []byte(tt.body),
			})
			if tt.wantError {
				require.Error(t, err)
				assert.True(t, ierr.IsValidation(err))
				return
			}
			require.NoError(t, err)

			if tt.wantFail {
				assert.IsType(t, &testErrorResponse{}, parsed.Result)
			} else {
				assert.IsType(t, &testOrderResponse{}, parsed.Result)
			}

			if tt.wantCode == "" {
				assert.Nil(t, parsed.Error)
			} else {
				require.NotNil(t, parsed.Error)
				assert.Equal(t, tt.wantCode, parsed.Error.Code)
			}
		})
	}
}

func TestPassthrough(t *testing.T) {
	h := Passthrough("test")

	prepared, err := h.BuildRequest(context.Background(), map[string]any{"a": "1"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "1"}, prepared.Payload.Fields)

	parsed, err := h.ParseResponse(context.Background(), &httpclient.Response{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"ok":true}`),
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ok": true}, parsed.Result)

	parsed, err = h.ParseResponse(context.Background(), &httpclient.Response{
		StatusCode: http.StatusBadGateway,
		Body:       []byte(`upstream down`),
	})
	require.NoError(t, err)
	assert.Equal(t, "upstream down", parsed.Result)
	require.NotNil(t, parsed.Error)
	assert.Equal(t, "502", parsed.Error.Code)
}

func TestSetDefault(t *testing.T) {
	fields := map[string]any{"a": "", "b": "set"}
	SetDefault(fields, "a", "x")
	SetDefault(fields, "b", "y")
	SetDefault(fields, "c", "z")
	SetDefault(fields, "d", "")

	assert.Equal(t, map[string]any{"a": "x", "b": "set", "c": "z"}, fields)
}

func TestDecodeKeyValue(t *testing.T) {
	var out struct {
		Errno   string `json:"errno"`
		ErrText string `json:"errtext"`
		Credit  int    `json:"credit"`
	}

	require.NoError(t, DecodeKeyValue([]byte("errno=0&errtext=Islem%20basarili\ncredit=1250\n<br>"), &out))
	assert.Equal(t, "0", out.Errno)
	assert.Equal(t, "Islem basarili", out.ErrText)
	assert.Equal(t, 1250, out.Credit)
}

func TestDecodeKeyValueLongLine(t *testing.T) {
	var out struct {
		Errno   string `json:"errno"`
		Message string `json:"message"`
	}

	long := strings.Repeat("x", 100*1024)
	require.NoError(t, DecodeKeyValue([]byte("errno=0&message="+long), &out))
	assert.Equal(t, "0", out.Errno)
	assert.Len(t, out.Message, len(long))
}
