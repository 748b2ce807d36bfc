package epoint

import (
	"github.com/flexprice/azpay/internal/integration/base"
	"github.com/samber/lo"
)

// Payment statuses reported in the status field
const (
	StatusNew         = "new"
	StatusSuccess     = "success"
	StatusReturned    = "returned"
	StatusError       = "error"
	StatusFailed      = "failed"
	StatusServerError = "server_error"
)

var failedStatuses = []string{StatusError, StatusFailed, StatusServerError}

var statusMessages = base.CodeTable{
	StatusNew:         "Payment created, waiting for the card holder",
	StatusSuccess:     "Payment completed",
	StatusReturned:    "Payment returned",
	StatusError:       "Payment failed",
	StatusFailed:      "Payment failed",
	StatusServerError: "EPoint internal error",
}

// statusError reports a failure carried in a success body
func statusError(status, code, message string) *base.GatewayError {
	if !lo.Contains(failedStatuses, status) {
		return nil
	}
	return &base.GatewayError{
		Gateway: string(base.GatewayEPoint),
		Code:    lo.CoalesceOrEmpty(code, status),
		Message: lo.CoalesceOrEmpty(message, statusMessages.Translate(status, "")),
		Details: map[string]any{"status": status},
	}
}
