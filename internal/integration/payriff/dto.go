package payriff

import (
	"github.com/shopspring/decimal"
)

// Payment operations
const (
	OperationTypePurchase = "PURCHASE"
	OperationTypePreAuth  = "PRE_AUTH"
)

// CreateOrderRequest creates a hosted payment order
type CreateOrderRequest struct {
	Amount      decimal.Decimal   `json:"amount" validate:"required,gt=0"`
	Language    string            `json:"language" validate:"required,oneof=AZ EN RU"`
	Currency    string            `json:"currency" validate:"required,oneof=AZN USD EUR"`
	Description string            `json:"description" validate:"required,max=500"`
	CallbackURL string            `json:"callbackUrl" validate:"required,url"`
	CardSave    bool              `json:"cardSave"`
	Operation   string            `json:"operation" validate:"required,oneof=PURCHASE PRE_AUTH"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// GetOrderRequest fetches an order by its Payriff id
type GetOrderRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

// TransactionRequest refunds, completes or reverses an order
type TransactionRequest struct {
	OrderID string          `json:"orderId" validate:"required"`
	Amount  decimal.Decimal `json:"amount" validate:"required,gt=0"`
}

// AutoPayRequest charges a saved card without card holder interaction
type AutoPayRequest struct {
	CardUUID    string            `json:"cardUuid" validate:"required"`
	Amount      decimal.Decimal   `json:"amount" validate:"required,gt=0"`
	Currency    string            `json:"currency" validate:"required,oneof=AZN USD EUR"`
	Description string            `json:"description" validate:"required,max=500"`
	CallbackURL string            `json:"callbackUrl" validate:"required,url"`
	Operation   string            `json:"operation" validate:"required,oneof=PURCHASE PRE_AUTH"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Response is the envelope of every Payriff answer
type Response[T any] struct {
	Code            string `json:"code"`
	Message         string `json:"message"`
	Route           string `json:"route,omitempty"`
	InternalMessage string `json:"internalMessage,omitempty"`
	ResponseID      string `json:"responseId,omitempty"`
	Payload         *T     `json:"payload,omitempty"`
}

// CreateOrderPayload is returned by create_order
type CreateOrderPayload struct {
	OrderID       string `json:"orderId"`
	PaymentURL    string `json:"paymentUrl"`
	TransactionID int64  `json:"transactionId"`
}

// OrderPayload describes an order
type OrderPayload struct {
	OrderID       string           `json:"orderId"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	CurrencyType  string           `json:"currencyType,omitempty"`
	MerchantName  string           `json:"merchantName,omitempty"`
	OperationType string           `json:"operationType,omitempty"`
	PaymentStatus string           `json:"paymentStatus,omitempty"`
	Auto          bool             `json:"auto,omitempty"`
	CreatedDate   string           `json:"createdDate,omitempty"`
	Description   string           `json:"description,omitempty"`
	Transactions  []Transaction    `json:"transactions,omitempty"`
}

// Transaction is a payment attempt on an order
type Transaction struct {
	UUID             string           `json:"uuid,omitempty"`
	CreatedDate      string           `json:"createdDate,omitempty"`
	Status           string           `json:"status,omitempty"`
	Channel          string           `json:"channel,omitempty"`
	ChannelType      string           `json:"channelType,omitempty"`
	RequestRRN       string           `json:"requestRrn,omitempty"`
	ResponseRRN      string           `json:"responseRrn,omitempty"`
	Pan              string           `json:"pan,omitempty"`
	PaymentWay       string           `json:"paymentWay,omitempty"`
	CardDetails      map[string]any   `json:"cardDetails,omitempty"`
	MerchantCategory string           `json:"merchantCategory,omitempty"`
	Installment      map[string]any   `json:"installment,omitempty"`
	Amount           *decimal.Decimal `json:"amount,omitempty"`
}

// AutoPayPayload is returned by auto_pay
type AutoPayPayload struct {
	OrderID       string           `json:"orderId"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	CurrencyType  string           `json:"currencyType,omitempty"`
	PaymentStatus string           `json:"paymentStatus,omitempty"`
	Transactions  []Transaction    `json:"transactions,omitempty"`
}

// Empty is the payload of operations that answer with a code only
type Empty struct{}
