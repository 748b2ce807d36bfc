package kapital

import (
	"net/http"
	"strconv"

	"github.com/flexprice/azpay/internal/integration/base"
)

// Order statuses
const (
	StatusPreparing         = "Preparing"
	StatusFullyPaid         = "FullyPaid"
	StatusPartPaid          = "PartPaid"
	StatusDeclined          = "Declined"
	StatusRefunded          = "Refunded"
	StatusVoided            = "Voided"
	StatusClosed            = "Closed"
	StatusExpired           = "Expired"
	StatusCancelled         = "Cancelled"
	StatusAuthorized        = "Authorized"
	StatusFunded            = "Funded"
	StatusRefused           = "Refused"
	StatusPending           = "Pending"
	StatusCardholderNotAuth = "CardholderNotAuth"
)

var errorMessages = base.CodeTable{
	"InvalidRequest":      "The request is malformed",
	"InvalidAmount":       "The amount is invalid",
	"InvalidCurrency":     "The currency is not supported",
	"InvalidOrderState":   "The order state does not allow this operation",
	"InvalidOrderType":    "The order type does not allow this operation",
	"NoSuchOrder":         "Order not found",
	"NoSuchToken":         "Stored card not found",
	"AccessDenied":        "Credentials were rejected",
	"OperationNotAllowed": "The operation is not allowed for this merchant",
	"DuplicateOperation":  "The operation was already performed",
	"InternalError":       "Kapital Bank internal error",
}

func failure(statusCode int, fail *ErrorResponse) *base.GatewayError {
	code := fail.ErrorCode
	if code == "" {
		code = strconv.Itoa(statusCode)
	}
	err := errorMessages.Error(base.GatewayKapital, code, fail.ErrorDescription)
	if fail.ErrorDescription == "" && fail.ErrorCode == "" {
		err.Message = http.StatusText(statusCode)
	}
	if fail.ErrorDescription != "" {
		err.Details = map[string]any{"description": fail.ErrorDescription}
	}
	return err
}
