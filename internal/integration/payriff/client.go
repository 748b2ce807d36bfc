package payriff

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/flexprice/azpay/internal/config"
	ierr "github.com/flexprice/azpay/internal/errors"
	"github.com/flexprice/azpay/internal/integration/base"
	"github.com/flexprice/azpay/internal/logger"
	"github.com/flexprice/azpay/internal/types"
	"github.com/shopspring/decimal"
)

const DefaultBaseURL = "https://api.payriff.com/api/v3"

// Operations
const (
	OperationCreateOrder = "create_order"
	OperationGetOrder    = "get_order"
	OperationRefund      = "refund"
	OperationComplete    = "complete"
	OperationReverse     = "reverse"
	OperationAutoPay     = "auto_pay"
)

// Client is the Payriff binding. The secret key is sent as the raw
// Authorization header value.
type Client struct {
	*base.Client
	config config.PayriffConfig
}

// New builds a Payriff client from cfg
func New(cfg config.PayriffConfig, log *logger.Logger, opts ...base.Option) (*Client, error) {
	if cfg.SecretKey == "" {
		return nil, ierr.NewError("payriff secret key not configured").
			WithHint("Configure gateways.payriff.secret_key").
			Mark(ierr.ErrConfiguration)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{config: cfg}

	opts = append([]base.Option{
		base.WithBaseURL(baseURL),
		base.WithLogger(log),
		base.WithAuth(base.AuthConfig{Type: base.AuthTypeRawToken, Token: cfg.SecretKey}),
	}, opts...)
	c.Client = base.NewClient(base.GatewayPayriff, opts...)

	if err := c.Register(
		base.Endpoint{
			Name:    OperationCreateOrder,
			Path:    "/orders",
			Method:  http.MethodPost,
			Handler: schema[CreateOrderRequest, CreateOrderPayload](c.orderDefaults),
		},
		base.Endpoint{
			Name:   OperationGetOrder,
			Path:   "/orders/{order_id}",
			Method: http.MethodGet,
			Handler: &base.Schema[GetOrderRequest, Response[OrderPayload], Response[Empty]]{
				Gateway:    base.GatewayPayriff,
				PathParams: []string{"order_id"},
				Check:      check[OrderPayload],
				Failure:    failure,
			},
		},
		c.transaction(OperationRefund, "/refund"),
		c.transaction(OperationComplete, "/complete"),
		c.transaction(OperationReverse, "/reverse"),
		base.Endpoint{
			Name:    OperationAutoPay,
			Path:    "/autoPay",
			Method:  http.MethodPost,
			Handler: schema[AutoPayRequest, AutoPayPayload](c.orderDefaults),
		},
	); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) transaction(name, path string) base.Endpoint {
	return base.Endpoint{
		Name:    name,
		Path:    path,
		Method:  http.MethodPost,
		Handler: schema[TransactionRequest, Empty](nil),
	}
}

func schema[Req any, Payload any](pre base.PreFunc) base.Handler {
	return &base.Schema[Req, Response[Payload], Response[Empty]]{
		Gateway: base.GatewayPayriff,
		Pre:     pre,
		Post:    numericAmount,
		Check:   check[Payload],
		Failure: failure,
	}
}

func check[Payload any](resp *Response[Payload]) *base.GatewayError {
	return codeError(resp.Code, resp.Message, resp.InternalMessage)
}

func failure(_ int, fail *Response[Empty]) *base.GatewayError {
	if fail.Code == "" {
		return nil
	}
	return codeError(fail.Code, fail.Message, fail.InternalMessage)
}

func (c *Client) orderDefaults(_ context.Context, fields map[string]any) error {
	base.SetDefault(fields, "language", c.config.Language)
	base.SetDefault(fields, "currency", c.config.Currency)
	base.SetDefault(fields, "callbackUrl", c.config.CallbackURL)
	base.SetDefault(fields, "operation", OperationTypePurchase)
	return nil
}

// numericAmount sends the amount as a JSON number
func numericAmount(_ context.Context, fields map[string]any) (base.Payload, error) {
	if amount, ok := fields["amount"]; ok {
		d, err := decimal.NewFromString(types.Stringify(amount))
		if err != nil {
			return base.Payload{}, ierr.WithError(err).
				WithHint("amount must be a decimal number").
				Mark(ierr.ErrValidation)
		}
		fields["amount"] = json.Number(d.String())
	}
	return base.Payload{Fields: fields}, nil
}

// CreateOrder creates a hosted payment; send the card holder to PaymentURL
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest, opts ...base.CallOption) (*Response[CreateOrderPayload], *base.Envelope, error) {
	return base.Call[*Response[CreateOrderPayload]](ctx, c.Client, OperationCreateOrder, req, opts...)
}

func (c *Client) GetOrder(ctx context.Context, req GetOrderRequest, opts ...base.CallOption) (*Response[OrderPayload], *base.Envelope, error) {
	return base.Call[*Response[OrderPayload]](ctx, c.Client, OperationGetOrder, req, opts...)
}

func (c *Client) Refund(ctx context.Context, req TransactionRequest, opts ...base.CallOption) (*Response[Empty], *base.Envelope, error) {
	return base.Call[*Response[Empty]](ctx, c.Client, OperationRefund, req, opts...)
}

// Complete captures a PRE_AUTH order
func (c *Client) Complete(ctx context.Context, req TransactionRequest, opts ...base.CallOption) (*Response[Empty], *base.Envelope, error) {
	return base.Call[*Response[Empty]](ctx, c.Client, OperationComplete, req, opts...)
}

func (c *Client) Reverse(ctx context.Context, req TransactionRequest, opts ...base.CallOption) (*Response[Empty], *base.Envelope, error) {
	return base.Call[*Response[Empty]](ctx, c.Client, OperationReverse, req, opts...)
}

// AutoPay charges a card saved with cardSave on an earlier order
func (c *Client) AutoPay(ctx context.Context, req AutoPayRequest, opts ...base.CallOption) (*Response[AutoPayPayload], *base.Envelope, error) {
	return base.Call[*Response[AutoPayPayload]](ctx, c.Client, OperationAutoPay, req, opts...)
}
