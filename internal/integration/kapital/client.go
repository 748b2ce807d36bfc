package kapital

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/flexprice/azpay/internal/config"
	ierr "github.com/flexprice/azpay/internal/errors"
	"github.com/flexprice/azpay/internal/integration/base"
	"github.com/flexprice/azpay/internal/logger"
	"github.com/flexprice/azpay/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	TestBaseURL       = "https://txpgtst.kapitalbank.az/api"
	ProductionBaseURL = "https://e-commerce.kapitalbank.az/api"
)

// Operations
const (
	OperationCreateOrder    = "create_order"
	OperationSaveCard       = "save_card"
	OperationGetOrder       = "get_order"
	OperationRefund         = "refund"
	OperationReverse        = "reverse"
	OperationComplete       = "complete"
	OperationSetSourceToken = "set_source_token"
)

const pathParamOrderID = "order_id"

// Client is the Kapital Bank e-commerce binding, JSON over HTTP Basic auth
type Client struct {
	*base.Client
	config config.KapitalConfig
}

// New builds a Kapital Bank client from cfg
func New(cfg config.KapitalConfig, log *logger.Logger, opts ...base.Option) (*Client, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return nil, ierr.NewError("kapital credentials not configured").
			WithHint("Configure gateways.kapital.username and gateways.kapital.password").
			Mark(ierr.ErrConfiguration)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = TestBaseURL
		if cfg.Environment.IsProduction() {
			baseURL = ProductionBaseURL
		}
	}

	c := &Client{config: cfg}

	opts = append([]base.Option{
		base.WithBaseURL(baseURL),
		base.WithLogger(log),
		base.WithAuth(base.AuthConfig{
			Type:     base.AuthTypeBasicAuth,
			Username: cfg.Username,
			Password: cfg.Password,
		}),
	}, opts...)
	c.Client = base.NewClient(base.GatewayKapital, opts...)

	if err := c.Register(
		base.Endpoint{
			Name:   OperationCreateOrder,
			Path:   "/order",
			Method: http.MethodPost,
			Handler: &base.Schema[CreateOrderRequest, CreateOrderResponse, ErrorResponse]{
				Gateway: base.GatewayKapital,
				Pre:     c.orderDefaults(OrderTypePurchase),
				Post:    wrapOrder,
				Failure: failure,
			},
		},
		base.Endpoint{
			Name:   OperationSaveCard,
			Path:   "/order",
			Method: http.MethodPost,
			Handler: &base.Schema[SaveCardRequest, CreateOrderResponse, ErrorResponse]{
				Gateway: base.GatewayKapital,
				Pre:     c.saveCardDefaults,
				Post:    wrapOrder,
				Failure: failure,
			},
		},
		base.Endpoint{
			Name:   OperationGetOrder,
			Path:   "/order/{order_id}",
			Method: http.MethodGet,
			Handler: &base.Schema[GetOrderRequest, OrderResponse, ErrorResponse]{
				Gateway:    base.GatewayKapital,
				PathParams: []string{pathParamOrderID},
				Failure:    failure,
			},
		},
		c.transaction(OperationRefund, map[string]any{"phase": "Single", "type": "Refund"}, true),
		c.transaction(OperationReverse, map[string]any{"phase": "Auth", "voidKind": "Full"}, false),
		c.transaction(OperationComplete, map[string]any{"phase": "Clearing"}, true),
		base.Endpoint{
			Name:   OperationSetSourceToken,
			Path:   "/order/{order_id}/set-src-token",
			Method: http.MethodPost,
			Handler: &base.Schema[SetSourceTokenRequest, OrderResponse, ErrorResponse]{
				Gateway:    base.GatewayKapital,
				PathParams: []string{pathParamOrderID},
				Post:       wrapSourceToken,
				Failure:    failure,
			},
		},
	); err != nil {
		return nil, err
	}
	return c, nil
}

// transaction registers an exec-tran operation; fixed is merged into the tran object
func (c *Client) transaction(name string, fixed map[string]any, amountRequired bool) base.Endpoint {
	return base.Endpoint{
		Name:   name,
		Path:   "/order/{order_id}/exec-tran",
		Method: http.MethodPost,
		Handler: &base.Schema[TransactionRequest, TransactionResponse, ErrorResponse]{
			Gateway:    base.GatewayKapital,
			PathParams: []string{pathParamOrderID},
			Post: func(_ context.Context, fields map[string]any) (base.Payload, error) {
				tran := lo.Assign(lo.OmitByKeys(fields, []string{pathParamOrderID}), fixed)
				if _, ok := fields["amount"]; !ok {
					if amountRequired {
						return base.Payload{}, ierr.NewErrorf("%s requires an amount", name).
							WithHint("Provide the amount").
							WithReportableDetails(map[string]any{"amount": "required"}).
							Mark(ierr.ErrValidation)
					}
				} else if fixed["voidKind"] != nil {
					tran["voidKind"] = "Partial"
				}
				if err := formatAmount(tran); err != nil {
					return base.Payload{}, err
				}
				return base.Payload{Fields: map[string]any{"tran": tran}}, nil
			},
			Failure: failure,
		},
	}
}

func (c *Client) orderDefaults(typeRid string) base.PreFunc {
	return func(_ context.Context, fields map[string]any) error {
		base.SetDefault(fields, "typeRid", typeRid)
		base.SetDefault(fields, "currency", c.config.Currency)
		base.SetDefault(fields, "language", c.config.Language)
		base.SetDefault(fields, "hppRedirectUrl", c.config.RedirectURL)
		return nil
	}
}

func (c *Client) saveCardDefaults(ctx context.Context, fields map[string]any) error {
	fields["typeRid"] = OrderTypeRecurring
	base.SetDefault(fields, "hppCofCapturePurposes", []string{"Cit"})
	return c.orderDefaults(OrderTypeRecurring)(ctx, fields)
}

func wrapOrder(_ context.Context, fields map[string]any) (base.Payload, error) {
	if err := formatAmount(fields); err != nil {
		return base.Payload{}, err
	}
	return base.Payload{Fields: map[string]any{"order": fields}}, nil
}

func wrapSourceToken(_ context.Context, fields map[string]any) (base.Payload, error) {
	return base.Payload{Fields: map[string]any{
		"order": map[string]any{"initiationEnvKind": "Server"},
		"token": map[string]any{"storedId": fields["storedId"]},
	}}, nil
}

// formatAmount sends amounts as JSON numbers with two decimals
func formatAmount(fields map[string]any) error {
	amount, ok := fields["amount"]
	if !ok {
		return nil
	}
	d, err := decimal.NewFromString(types.Stringify(amount))
	if err != nil {
		return ierr.WithError(err).
			WithHint("amount must be a decimal number").
			Mark(ierr.ErrValidation)
	}
	fields["amount"] = json.Number(d.StringFixed(2))
	return nil
}

// CreateOrder registers a purchase; redirect the card holder to PaymentURL()
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest, opts ...base.CallOption) (*CreateOrderResponse, *base.Envelope, error) {
	return base.Call[*CreateOrderResponse](ctx, c.Client, OperationCreateOrder, req, opts...)
}

// SaveCard registers a recurring order used to store the card
func (c *Client) SaveCard(ctx context.Context, req SaveCardRequest, opts ...base.CallOption) (*CreateOrderResponse, *base.Envelope, error) {
	return base.Call[*CreateOrderResponse](ctx, c.Client, OperationSaveCard, req, opts...)
}

func (c *Client) GetOrder(ctx context.Context, req GetOrderRequest, opts ...base.CallOption) (*OrderResponse, *base.Envelope, error) {
	return base.Call[*OrderResponse](ctx, c.Client, OperationGetOrder, req, opts...)
}

func (c *Client) Refund(ctx context.Context, req TransactionRequest, opts ...base.CallOption) (*TransactionResponse, *base.Envelope, error) {
	return base.Call[*TransactionResponse](ctx, c.Client, OperationRefund, req, opts...)
}

// Reverse voids an authorization, partially when Amount is set
func (c *Client) Reverse(ctx context.Context, req TransactionRequest, opts ...base.CallOption) (*TransactionResponse, *base.Envelope, error) {
	return base.Call[*TransactionResponse](ctx, c.Client, OperationReverse, req, opts...)
}

// Complete captures a pre-authorized order
func (c *Client) Complete(ctx context.Context, req TransactionRequest, opts ...base.CallOption) (*TransactionResponse, *base.Envelope, error) {
	return base.Call[*TransactionResponse](ctx, c.Client, OperationComplete, req, opts...)
}

// SetSourceToken pays an order with a stored card
func (c *Client) SetSourceToken(ctx context.Context, req SetSourceTokenRequest, opts ...base.CallOption) (*OrderResponse, *base.Envelope, error) {
	return base.Call[*OrderResponse](ctx, c.Client, OperationSetSourceToken, req, opts...)
}
