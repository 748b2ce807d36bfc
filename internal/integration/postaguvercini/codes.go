package postaguvercini

import (
	"github.com/flexprice/azpay/internal/integration/base"
)

const errnoOK = "0"

// Delivery states reported by status
const (
	StatusWaiting   = "0"
	StatusDelivered = "1"
	StatusFailed    = "2"
)

var errnoMessages = base.CodeTable{
	errnoOK: "OK",
	"1":     "Invalid user or password",
	"2":     "Insufficient credit",
	"3":     "Invalid GSM number",
	"4":     "Message text is empty",
	"5":     "Originator is not allowed",
	"6":     "Message not found",
	"7":     "Invalid send date",
	"9":     "Posta Guvercini system error",
}

func check(resp *Response) *base.GatewayError {
	if resp.Errno == errnoOK {
		return nil
	}
	code := resp.Errno
	if code == "" {
		code = "unknown"
	}
	return errnoMessages.Error(base.GatewayPostaGuvercini, code, resp.ErrText)
}
