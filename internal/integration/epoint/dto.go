package epoint

import (
	"github.com/shopspring/decimal"
)

// PaymentRequest starts a hosted card payment (/request)
type PaymentRequest struct {
	PublicKey          string          `json:"public_key" validate:"required"`
	Amount             decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Currency           string          `json:"currency" validate:"required,len=3"`
	Language           string          `json:"language" validate:"required,oneof=az en ru"`
	OrderID            string          `json:"order_id" validate:"required,max=255"`
	Description        string          `json:"description,omitempty" validate:"omitempty,max=1000"`
	SuccessRedirectURL string          `json:"success_redirect_url,omitempty" validate:"omitempty,url"`
	ErrorRedirectURL   string          `json:"error_redirect_url,omitempty" validate:"omitempty,url"`
	OtherAttr          []string        `json:"other_attr,omitempty"`
}

// RedirectResponse is returned by operations that hand the card holder to the hosted page
type RedirectResponse struct {
	Status      string `json:"status"`
	RedirectURL string `json:"redirect_url,omitempty"`
	Transaction string `json:"transaction,omitempty"`
	CardID      string `json:"card_id,omitempty"`
	Message     string `json:"message,omitempty"`
	Code        string `json:"code,omitempty"`
}

// StatusRequest queries a payment by merchant order or gateway transaction
type StatusRequest struct {
	PublicKey   string `json:"public_key" validate:"required"`
	OrderID     string `json:"order_id,omitempty" validate:"required_without=Transaction"`
	Transaction string `json:"transaction,omitempty"`
}

// TransactionResponse describes a processed transaction
type TransactionResponse struct {
	Status          string           `json:"status"`
	Code            string           `json:"code,omitempty"`
	Message         string           `json:"message,omitempty"`
	OrderID         string           `json:"order_id,omitempty"`
	Transaction     string           `json:"transaction,omitempty"`
	BankTransaction string           `json:"bank_transaction,omitempty"`
	BankResponse    string           `json:"bank_response,omitempty"`
	OperationCode   string           `json:"operation_code,omitempty"`
	RRN             string           `json:"rrn,omitempty"`
	CardName        string           `json:"card_name,omitempty"`
	CardMask        string           `json:"card_mask,omitempty"`
	CardID          string           `json:"card_id,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
}

// SaveCardRequest registers a card for later charges (/card-registration)
type SaveCardRequest struct {
	PublicKey          string `json:"public_key" validate:"required"`
	Language           string `json:"language" validate:"required,oneof=az en ru"`
	Refund             int    `json:"refund" validate:"oneof=0 1"`
	Description        string `json:"description,omitempty" validate:"omitempty,max=1000"`
	SuccessRedirectURL string `json:"success_redirect_url,omitempty" validate:"omitempty,url"`
	ErrorRedirectURL   string `json:"error_redirect_url,omitempty" validate:"omitempty,url"`
}

// SavedCardPaymentRequest charges a previously saved card (/execute-pay)
type SavedCardPaymentRequest struct {
	PublicKey   string          `json:"public_key" validate:"required"`
	Language    string          `json:"language" validate:"required,oneof=az en ru"`
	CardID      string          `json:"card_id" validate:"required"`
	OrderID     string          `json:"order_id" validate:"required,max=255"`
	Amount      decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Currency    string          `json:"currency" validate:"required,len=3"`
	Description string          `json:"description,omitempty" validate:"omitempty,max=1000"`
}

// RefundRequest pays funds back to a saved card (/refund-request)
type RefundRequest struct {
	PublicKey   string          `json:"public_key" validate:"required"`
	Language    string          `json:"language" validate:"required,oneof=az en ru"`
	CardID      string          `json:"card_id" validate:"required"`
	OrderID     string          `json:"order_id" validate:"required,max=255"`
	Amount      decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Currency    string          `json:"currency" validate:"required,len=3"`
	Description string          `json:"description,omitempty" validate:"omitempty,max=1000"`
}

// ReverseRequest cancels a transaction, fully or for Amount when set (/reverse)
type ReverseRequest struct {
	PublicKey   string           `json:"public_key" validate:"required"`
	Language    string           `json:"language" validate:"required,oneof=az en ru"`
	Transaction string           `json:"transaction" validate:"required"`
	Currency    string           `json:"currency" validate:"required,len=3"`
	Amount      *decimal.Decimal `json:"amount,omitempty" validate:"omitempty,gt=0"`
}

// SplitPaymentRequest pays Amount and forwards SplitAmount to SplitUser (/split-request)
type SplitPaymentRequest struct {
	PublicKey          string          `json:"public_key" validate:"required"`
	Amount             decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Currency           string          `json:"currency" validate:"required,len=3"`
	Language           string          `json:"language" validate:"required,oneof=az en ru"`
	OrderID            string          `json:"order_id" validate:"required,max=255"`
	SplitUser          string          `json:"split_user" validate:"required"`
	SplitAmount        decimal.Decimal `json:"split_amount" validate:"required,gt=0"`
	Description        string          `json:"description,omitempty" validate:"omitempty,max=1000"`
	SuccessRedirectURL string          `json:"success_redirect_url,omitempty" validate:"omitempty,url"`
	ErrorRedirectURL   string          `json:"error_redirect_url,omitempty" validate:"omitempty,url"`
}

// Callback is the payload EPoint posts to the merchant result URL
type Callback struct {
	OrderID         string           `json:"order_id" validate:"required"`
	Status          string           `json:"status" validate:"required"`
	Code            string           `json:"code,omitempty"`
	Message         string           `json:"message,omitempty"`
	Transaction     string           `json:"transaction,omitempty"`
	BankTransaction string           `json:"bank_transaction,omitempty"`
	BankResponse    string           `json:"bank_response,omitempty"`
	OperationCode   string           `json:"operation_code,omitempty"`
	RRN             string           `json:"rrn,omitempty"`
	CardName        string           `json:"card_name,omitempty"`
	CardMask        string           `json:"card_mask,omitempty"`
	CardID          string           `json:"card_id,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	OtherAttr       []string         `json:"other_attr,omitempty"`
}

// IsSuccess reports whether the callback confirms a completed payment
func (c *Callback) IsSuccess() bool {
	return c.Status == StatusSuccess
}

// ErrorResponse is the body EPoint sends with non-success HTTP statuses
type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
