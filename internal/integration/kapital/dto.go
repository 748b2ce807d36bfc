package kapital

import (
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// Order types
const (
	OrderTypePurchase  = "Order_SMS"
	OrderTypePreAuth   = "Order_DMS"
	OrderTypeRecurring = "Order_REC"
)

// CreateOrderRequest registers an order on the hosted payment page
type CreateOrderRequest struct {
	TypeRid            string          `json:"typeRid" validate:"required,oneof=Order_SMS Order_DMS Order_REC"`
	Amount             decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Currency           string          `json:"currency" validate:"required,len=3"`
	Language           string          `json:"language" validate:"required,oneof=az en ru"`
	Description        string          `json:"description,omitempty" validate:"omitempty,max=1000"`
	HppRedirectURL     string          `json:"hppRedirectUrl" validate:"required,url"`
	CofCapturePurposes []string        `json:"hppCofCapturePurposes,omitempty"`
}

// SaveCardRequest creates a recurring order whose only purpose is storing the card
type SaveCardRequest struct {
	TypeRid            string           `json:"typeRid" validate:"required,eq=Order_REC"`
	Amount             *decimal.Decimal `json:"amount,omitempty" validate:"omitempty,gte=0"`
	Currency           string           `json:"currency" validate:"required,len=3"`
	Language           string           `json:"language" validate:"required,oneof=az en ru"`
	Description        string           `json:"description,omitempty" validate:"omitempty,max=1000"`
	HppRedirectURL     string           `json:"hppRedirectUrl" validate:"required,url"`
	CofCapturePurposes []string         `json:"hppCofCapturePurposes" validate:"required,min=1"`
}

// GetOrderRequest fetches an order; detail levels widen the answer
type GetOrderRequest struct {
	OrderID          string `json:"order_id" validate:"required"`
	TranDetailLevel  int    `json:"tranDetailLevel,omitempty" validate:"omitempty,oneof=1 2"`
	TokenDetailLevel int    `json:"tokenDetailLevel,omitempty" validate:"omitempty,oneof=1 2"`
	OrderDetailLevel int    `json:"orderDetailLevel,omitempty" validate:"omitempty,oneof=1 2"`
}

// TransactionRequest drives refund, reverse and complete. Amount is required
// except for a full reverse.
type TransactionRequest struct {
	OrderID string           `json:"order_id" validate:"required"`
	Amount  *decimal.Decimal `json:"amount,omitempty" validate:"omitempty,gt=0"`
}

// SetSourceTokenRequest charges an order with a stored card token
type SetSourceTokenRequest struct {
	OrderID  string `json:"order_id" validate:"required"`
	StoredID int64  `json:"storedId" validate:"required,gt=0"`
}

// Order is the order object returned by every order endpoint
type Order struct {
	ID             int64            `json:"id"`
	HppURL         string           `json:"hppUrl,omitempty"`
	Password       string           `json:"password,omitempty"`
	Secret         string           `json:"secret,omitempty"`
	Status         string           `json:"status,omitempty"`
	TypeRid        string           `json:"typeRid,omitempty"`
	Cvv2AuthStatus string           `json:"cvv2AuthStatus,omitempty"`
	Amount         *decimal.Decimal `json:"amount,omitempty"`
	Currency       string           `json:"currency,omitempty"`
	Description    string           `json:"description,omitempty"`
	CreateTime     string           `json:"createTime,omitempty"`
	StoredTokens   []StoredToken    `json:"storedTokens,omitempty"`
	Transactions   []Transaction    `json:"trans,omitempty"`
}

// StoredToken is a saved card
type StoredToken struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"displayName,omitempty"`
	Expiry      string `json:"expiry,omitempty"`
	Brand       string `json:"brand,omitempty"`
}

// Transaction is one financial operation on an order
type Transaction struct {
	ApprovalCode  string           `json:"approvalCode,omitempty"`
	ActionID      string           `json:"actionId,omitempty"`
	PmoResultCode string           `json:"pmoResultCode,omitempty"`
	Status        string           `json:"status,omitempty"`
	Type          string           `json:"type,omitempty"`
	Phase         string           `json:"phase,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Match         map[string]any   `json:"match,omitempty"`
}

// OrderResponse wraps the order object
type OrderResponse struct {
	Order Order `json:"order"`
}

// CreateOrderResponse is the answer to create_order and save_card
type CreateOrderResponse struct {
	Order Order `json:"order"`
}

// PaymentURL is where the card holder is redirected to pay
func (r *CreateOrderResponse) PaymentURL() string {
	if r.Order.HppURL == "" {
		return ""
	}
	query := url.Values{}
	query.Set("id", strconv.FormatInt(r.Order.ID, 10))
	query.Set("password", r.Order.Password)
	return r.Order.HppURL + "?" + query.Encode()
}

// TransactionResponse wraps the transaction object of exec-tran
type TransactionResponse struct {
	Tran Transaction `json:"tran"`
}

// ErrorResponse is the body of every failed call
type ErrorResponse struct {
	ErrorCode        string `json:"errorCode"`
	ErrorDescription string `json:"errorDescription"`
}
