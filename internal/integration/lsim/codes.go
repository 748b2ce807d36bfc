package lsim

import (
	"github.com/flexprice/azpay/internal/integration/base"
	"github.com/flexprice/azpay/internal/types"
)

var errorMessages = base.CodeTable{
	"-100": "Authentication failed, check login and password",
	"-101": "Insufficient balance",
	"-102": "Sender name is not allowed",
	"-103": "Invalid phone number",
	"-104": "Message text is empty or too long",
	"-105": "Request parameters are missing",
	"-500": "LSIM internal error",
}

func check(resp *Response) *base.GatewayError {
	if resp.ErrorCode == nil {
		return nil
	}
	return errorMessages.Error(base.GatewayLSIM, types.Stringify(resp.ErrorCode), resp.ErrorMessage)
}
