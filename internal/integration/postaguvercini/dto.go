package postaguvercini

// SendSMSRequest sends Text to one or more comma separated GSM numbers
type SendSMSRequest struct {
	User       string `json:"user" validate:"required"`
	Password   string `json:"password" validate:"required"`
	GSM        string `json:"gsm" validate:"required"`
	Text       string `json:"text" validate:"required,max=918"`
	Originator string `json:"originator,omitempty" validate:"omitempty,max=11"`
	SendDate   string `json:"senddate,omitempty"`
}

// StatusRequest queries the delivery state of a message
type StatusRequest struct {
	User      string `json:"user" validate:"required"`
	Password  string `json:"password" validate:"required"`
	MessageID string `json:"message_id" validate:"required"`
}

// CreditRequest asks for the remaining credit
type CreditRequest struct {
	User     string `json:"user" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response is the errno=..&errtext=.. answer of every endpoint
type Response struct {
	Errno      string `json:"errno"`
	ErrText    string `json:"errtext"`
	MessageID  string `json:"message_id"`
	Charge     string `json:"charge"`
	Credit     string `json:"credit"`
	Status     string `json:"status"`
	StatusText string `json:"status_text"`
	GSM        string `json:"gsm"`
}
