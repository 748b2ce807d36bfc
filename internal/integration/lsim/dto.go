package lsim

// SendSMSRequest sends one text message
type SendSMSRequest struct {
	Login  string `json:"login" validate:"required"`
	MSISDN string `json:"msisdn" validate:"required,numeric,len=12,startswith=994"`
	Text   string `json:"text" validate:"required,max=918"`
	Sender string `json:"sender" validate:"required,max=11"`
}

// BalanceRequest asks for the remaining SMS balance
type BalanceRequest struct {
	Login string `json:"login" validate:"required"`
}

// Response is the answer of every LSIM endpoint. Obj carries the message id
// for send and the balance for balance.
type Response struct {
	SuccessMessage string `json:"successMessage"`
	Obj            any    `json:"obj"`
	ErrorMessage   string `json:"errorMessage"`
	ErrorCode      any    `json:"errorCode"`
}
