package lsim

import (
	"context"
	"net/http"

	"github.com/flexprice/azpay/internal/config"
	ierr "github.com/flexprice/azpay/internal/errors"
	"github.com/flexprice/azpay/internal/integration/base"
	"github.com/flexprice/azpay/internal/logger"
	"github.com/flexprice/azpay/internal/security"
	"github.com/flexprice/azpay/internal/types"
)

const DefaultBaseURL = "https://apps.lsim.az/quicksms/v1"

// Operations
const (
	OperationSendSMS = "send_sms"
	OperationBalance = "balance"
)

// Client is the LSIM quick SMS binding. The password never leaves the
// process, every request carries a key derived from it.
type Client struct {
	*base.Client
	config config.LSIMConfig
}

// New builds an LSIM client from cfg
func New(cfg config.LSIMConfig, log *logger.Logger, opts ...base.Option) (*Client, error) {
	if cfg.Login == "" || cfg.Password == "" {
		return nil, ierr.NewError("lsim credentials not configured").
			WithHint("Configure gateways.lsim.login and gateways.lsim.password").
			Mark(ierr.ErrConfiguration)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{config: cfg}

	opts = append([]base.Option{base.WithBaseURL(baseURL), base.WithLogger(log)}, opts...)
	c.Client = base.NewClient(base.GatewayLSIM, opts...)

	if err := c.Register(
		base.Endpoint{
			Name:   OperationSendSMS,
			Path:   "/send",
			Method: http.MethodGet,
			Handler: &base.Schema[SendSMSRequest, Response, Response]{
				Gateway: base.GatewayLSIM,
				Pre:     c.inject,
				Post:    c.signed("text", "msisdn", "sender"),
				Check:   check,
				Failure: func(_ int, fail *Response) *base.GatewayError { return check(fail) },
			},
		},
		base.Endpoint{
			Name:   OperationBalance,
			Path:   "/balance",
			Method: http.MethodGet,
			Handler: &base.Schema[BalanceRequest, Response, Response]{
				Gateway: base.GatewayLSIM,
				Pre:     c.inject,
				Post:    c.signed(),
				Check:   check,
				Failure: func(_ int, fail *Response) *base.GatewayError { return check(fail) },
			},
		},
	); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) inject(_ context.Context, fields map[string]any) error {
	fields["login"] = c.config.Login
	base.SetDefault(fields, "sender", c.config.Sender)
	return nil
}

// signed adds key = md5(md5(password) + login + the named fields in order)
func (c *Client) signed(keyFields ...string) base.PostFunc {
	return func(_ context.Context, fields map[string]any) (base.Payload, error) {
		parts := []string{security.MD5Hex(c.config.Password), c.config.Login}
		for _, name := range keyFields {
			parts = append(parts, types.Stringify(fields[name]))
		}
		fields["key"] = security.MD5Hex(parts...)
		return base.Payload{Fields: fields}, nil
	}
}

// SendSMS sends text to msisdn; Obj of the response is the message id
func (c *Client) SendSMS(ctx context.Context, req SendSMSRequest, opts ...base.CallOption) (*Response, *base.Envelope, error) {
	return base.Call[*Response](ctx, c.Client, OperationSendSMS, req, opts...)
}

// Balance returns the remaining message balance in Obj
func (c *Client) Balance(ctx context.Context, opts ...base.CallOption) (*Response, *base.Envelope, error) {
	return base.Call[*Response](ctx, c.Client, OperationBalance, BalanceRequest{}, opts...)
}
