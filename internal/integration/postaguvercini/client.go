package postaguvercini

import (
	"context"
	"net/http"

	"github.com/flexprice/azpay/internal/config"
	ierr "github.com/flexprice/azpay/internal/errors"
	"github.com/flexprice/azpay/internal/integration/base"
	"github.com/flexprice/azpay/internal/logger"
)

const DefaultBaseURL = "https://www.postaguvercini.com/api_http"

// Operations
const (
	OperationSendSMS = "send_sms"
	OperationStatus  = "status"
	OperationCredit  = "credit"
)

// Client is the Posta Guvercini HTTP API binding; credentials travel in the query
type Client struct {
	*base.Client
	config config.PostaGuverciniConfig
}

// New builds a Posta Guvercini client from cfg
func New(cfg config.PostaGuverciniConfig, log *logger.Logger, opts ...base.Option) (*Client, error) {
	if cfg.User == "" || cfg.Password == "" {
		return nil, ierr.NewError("posta guvercini credentials not configured").
			WithHint("Configure gateways.posta_guvercini.user and gateways.posta_guvercini.password").
			Mark(ierr.ErrConfiguration)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{config: cfg}

	opts = append([]base.Option{base.WithBaseURL(baseURL), base.WithLogger(log)}, opts...)
	c.Client = base.NewClient(base.GatewayPostaGuvercini, opts...)

	if err := c.Register(
		base.Endpoint{
			Name:    OperationSendSMS,
			Path:    "/sendsms.asp",
			Method:  http.MethodGet,
			Handler: schema[SendSMSRequest](c),
		},
		base.Endpoint{
			Name:    OperationStatus,
			Path:    "/querysms.asp",
			Method:  http.MethodGet,
			Handler: schema[StatusRequest](c),
		},
		base.Endpoint{
			Name:    OperationCredit,
			Path:    "/getcredit.asp",
			Method:  http.MethodGet,
			Handler: schema[CreditRequest](c),
		},
	); err != nil {
		return nil, err
	}
	return c, nil
}

func schema[Req any](c *Client) base.Handler {
	return &base.Schema[Req, Response, Response]{
		Gateway: base.GatewayPostaGuvercini,
		Pre:     c.credentials,
		Decode:  base.DecodeKeyValue,
		Check:   check,
	}
}

func (c *Client) credentials(_ context.Context, fields map[string]any) error {
	fields["user"] = c.config.User
	fields["password"] = c.config.Password
	return nil
}

// SendSMS queues a message; MessageID identifies it for Status
func (c *Client) SendSMS(ctx context.Context, req SendSMSRequest, opts ...base.CallOption) (*Response, *base.Envelope, error) {
	return base.Call[*Response](ctx, c.Client, OperationSendSMS, req, opts...)
}

func (c *Client) Status(ctx context.Context, req StatusRequest, opts ...base.CallOption) (*Response, *base.Envelope, error) {
	return base.Call[*Response](ctx, c.Client, OperationStatus, req, opts...)
}

func (c *Client) Credit(ctx context.Context, opts ...base.CallOption) (*Response, *base.Envelope, error) {
	return base.Call[*Response](ctx, c.Client, OperationCredit, CreditRequest{}, opts...)
}
