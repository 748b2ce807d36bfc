package base

import (
	"fmt"
)

// GatewayType identifies a provider binding
type GatewayType string

const (
	GatewayEPoint         GatewayType = "epoint"
	GatewayAzeriCard      GatewayType = "azericard"
	GatewayKapital        GatewayType = "kapital"
	GatewayPayriff        GatewayType = "payriff"
	GatewayLSIM           GatewayType = "lsim"
	GatewayPostaGuvercini GatewayType = "posta_guvercini"
)

// Encoding is how request fields travel on the wire
type Encoding string

const (
	EncodingJSON  Encoding = "json"
	EncodingForm  Encoding = "form"
	EncodingQuery Encoding = "query"
)

// Params are loosely typed call arguments, keyed by wire field name
type Params map[string]any

// GatewayError is a business failure reported by the provider. It is carried
// inside the Envelope as data; transport and configuration problems are Go errors.
type GatewayError struct {
	Gateway string         `json:"gateway"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s error %s: %s", e.Gateway, e.Code, e.Message)
}

// CodeTable translates provider codes into readable messages
type CodeTable map[string]string

// Translate returns the message for code, or fallback when the code is unknown
func (t CodeTable) Translate(code, fallback string) string {
	if msg, ok := t[code]; ok {
		return msg
	}
	if fallback != "" {
		return fallback
	}
	return "unknown error"
}

// Error builds a GatewayError for code using the table
func (t CodeTable) Error(gateway GatewayType, code, fallback string) *GatewayError {
	return &GatewayError{
		Gateway: string(gateway),
		Code:    code,
		Message: t.Translate(code, fallback),
	}
}
