package payriff

import (
	"github.com/flexprice/azpay/internal/integration/base"
)

// CodeSuccess is the body code of every successful answer
const CodeSuccess = "00000"

var codeMessages = base.CodeTable{
	CodeSuccess: "Operation performed successfully",
	"01000":     "Warning",
	"15000":     "Invalid parameters",
	"14010":     "Order not found",
	"14013":     "Invalid amount",
	"14020":     "Merchant not found",
	"14030":     "Authorization failed, check the secret key",
	"16000":     "Payriff internal error",
}

// codeError converts a non-success body code into a GatewayError
func codeError(code, message, internal string) *base.GatewayError {
	if code == CodeSuccess {
		return nil
	}
	err := codeMessages.Error(base.GatewayPayriff, code, message)
	err.Details = map[string]any{"message": message}
	if internal != "" {
		err.Details["internal_message"] = internal
	}
	return err
}
