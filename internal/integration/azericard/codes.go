package azericard

import (
	"github.com/flexprice/azpay/internal/integration/base"
)

// Transaction types
const (
	TrTypeAuthorize = "1"
	TrTypeComplete  = "21"
	TrTypeReverse   = "22"
	TrTypeRefund    = "24"
	TrTypeStatus    = "90"
)

// ACTION values
const (
	ActionApproved  = "0"
	ActionDuplicate = "1"
	ActionDeclined  = "2"
	ActionFault     = "3"
	ActionInfo      = "4"
)

var actionMessages = base.CodeTable{
	ActionApproved:  "Transaction approved",
	ActionDuplicate: "Duplicate transaction",
	ActionDeclined:  "Transaction declined",
	ActionFault:     "Transaction processing fault",
	ActionInfo:      "Information message",
}

const rcInvalidResponse = "-3"

// rcMessages maps issuer response codes
var rcMessages = base.CodeTable{
	"00": "Approved",
	"01": "Refer to card issuer",
	"03": "Invalid merchant",
	"04": "Pick up card",
	"05": "Do not honour",
	"06": "Error",
	"12": "Invalid transaction",
	"13": "Invalid amount",
	"14": "Invalid card number",
	"15": "No such issuer",
	"30": "Format error",
	"33": "Expired card, pick up",
	"41": "Lost card, pick up",
	"43": "Stolen card, pick up",
	"51": "Insufficient funds",
	"54": "Expired card",
	"55": "Incorrect PIN",
	"57": "Transaction not permitted to card holder",
	"58": "Transaction not permitted to terminal",
	"61": "Exceeds withdrawal amount limit",
	"62": "Restricted card",
	"65": "Exceeds withdrawal frequency limit",
	"91": "Issuer or switch is inoperative",
	"94": "Duplicate transmission",
	"96": "System malfunction",
	"-2": "Bad CGI request",
	"-3": "No or invalid response received",
	"-4": "Server is not responding",
	"-17": "Access denied",
	"-19": "Authentication failed",
	"-20": "Expired transaction",
}

// actionError converts a non approved response into a GatewayError
func actionError(resp *Response) *base.GatewayError {
	if resp.Action == ActionApproved {
		return nil
	}
	if resp.Action == "" {
		return rcMessages.Error(base.GatewayAzeriCard, rcInvalidResponse, "")
	}

	code := resp.RC
	if code == "" {
		code = resp.Action
	}
	message := rcMessages.Translate(resp.RC, "")
	if _, known := rcMessages[resp.RC]; !known {
		message = actionMessages.Translate(resp.Action, resp.Text)
	}

	return &base.GatewayError{
		Gateway: string(base.GatewayAzeriCard),
		Code:    code,
		Message: message,
		Details: map[string]any{
			"action":  resp.Action,
			"order":   resp.Order,
			"rrn":     resp.RRN,
			"int_ref": resp.IntRef,
		},
	}
}
