package azericard

import (
	"github.com/shopspring/decimal"
)

// AuthorizeRequest opens the hosted card page (TRTYPE 1). It is never sent by
// the server, the card holder's browser posts it.
type AuthorizeRequest struct {
	Amount    decimal.Decimal `json:"AMOUNT" validate:"required,gt=0"`
	Currency  string          `json:"CURRENCY" validate:"required,numeric,len=3"`
	Order     string          `json:"ORDER" validate:"required,numeric,min=6,max=32"`
	Desc      string          `json:"DESC" validate:"required,max=50"`
	MerchName string          `json:"MERCH_NAME" validate:"required,max=50"`
	MerchURL  string          `json:"MERCH_URL" validate:"required,url"`
	Terminal  string          `json:"TERMINAL" validate:"required,max=8"`
	Email     string          `json:"EMAIL,omitempty" validate:"omitempty,email"`
	TrType    string          `json:"TRTYPE" validate:"required"`
	Country   string          `json:"COUNTRY" validate:"required,len=2"`
	MerchGMT  string          `json:"MERCH_GMT" validate:"required"`
	Timestamp string          `json:"TIMESTAMP" validate:"required,len=14"`
	Nonce     string          `json:"NONCE" validate:"required,hexadecimal,min=8,max=32"`
	BackRef   string          `json:"BACKREF" validate:"required,url"`
	Lang      string          `json:"LANG" validate:"required"`
	MInfo     string          `json:"M_INFO,omitempty"`
}

// TransactionRequest completes, reverses or refunds an authorized order (TRTYPE 21, 22, 24)
type TransactionRequest struct {
	Amount    decimal.Decimal `json:"AMOUNT" validate:"required,gt=0"`
	Currency  string          `json:"CURRENCY" validate:"required,numeric,len=3"`
	Order     string          `json:"ORDER" validate:"required,numeric,min=6,max=32"`
	RRN       string          `json:"RRN" validate:"required,len=12"`
	IntRef    string          `json:"INT_REF" validate:"required"`
	TrType    string          `json:"TRTYPE" validate:"required"`
	Terminal  string          `json:"TERMINAL" validate:"required,max=8"`
	Timestamp string          `json:"TIMESTAMP" validate:"required,len=14"`
	Nonce     string          `json:"NONCE" validate:"required,hexadecimal,min=8,max=32"`
}

// StatusRequest asks for the state of the TranTrType transaction of an order (TRTYPE 90)
type StatusRequest struct {
	Order      string `json:"ORDER" validate:"required,numeric,min=6,max=32"`
	TranTrType string `json:"TRAN_TRTYPE" validate:"required,oneof=1 21 22 24"`
	TrType     string `json:"TRTYPE" validate:"required"`
	Terminal   string `json:"TERMINAL" validate:"required,max=8"`
	Timestamp  string `json:"TIMESTAMP" validate:"required,len=14"`
	Nonce      string `json:"NONCE" validate:"required,hexadecimal,min=8,max=32"`
}

// Response is the key=value answer of the gateway, also posted to the merchant as callback
type Response struct {
	Terminal  string `json:"TERMINAL"`
	TrType    string `json:"TRTYPE"`
	Order     string `json:"ORDER"`
	Amount    string `json:"AMOUNT"`
	Currency  string `json:"CURRENCY"`
	Action    string `json:"ACTION"`
	RC        string `json:"RC"`
	Approval  string `json:"APPROVAL"`
	RRN       string `json:"RRN"`
	IntRef    string `json:"INT_REF"`
	Timestamp string `json:"TIMESTAMP"`
	Nonce     string `json:"NONCE"`
	PSign     string `json:"P_SIGN"`
	Text      string `json:"TEXT"`
	Card      string `json:"CARD"`
}

// IsApproved reports whether the transaction was approved
func (r *Response) IsApproved() bool {
	return r.Action == ActionApproved
}
