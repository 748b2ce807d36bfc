package epoint

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/flexprice/azpay/internal/config"
	ierr "github.com/flexprice/azpay/internal/errors"
	"github.com/flexprice/azpay/internal/integration/base"
	"github.com/flexprice/azpay/internal/logger"
	"github.com/flexprice/azpay/internal/security"
	"github.com/flexprice/azpay/internal/types"
	"github.com/flexprice/azpay/internal/validator"
	"github.com/shopspring/decimal"
)

const DefaultBaseURL = "https://epoint.az/api/1"

// Operations
const (
	OperationPay              = "pay"
	OperationGetStatus        = "get_status"
	OperationSaveCard         = "save_card"
	OperationPayWithSavedCard = "pay_with_saved_card"
	OperationPayAndSaveCard   = "pay_and_save_card"
	OperationRefund           = "refund"
	OperationReverse          = "reverse"
	OperationSplitPay         = "split_pay"
)

// Client is the EPoint binding. Every request is sealed into the data and
// signature form fields with the merchant private key.
type Client struct {
	*base.Client
	config config.EPointConfig
	signer *security.DigestSigner
	logger *logger.Logger
}

// New builds an EPoint client from cfg
func New(cfg config.EPointConfig, log *logger.Logger, opts ...base.Option) (*Client, error) {
	if cfg.PublicKey == "" {
		return nil, ierr.NewError("epoint public key not configured").
			WithHint("Configure gateways.epoint.public_key").
			Mark(ierr.ErrConfiguration)
	}
	signer, err := security.NewDigestSigner(cfg.PrivateKey)
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.L
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		config: cfg,
		signer: signer,
		logger: log,
	}

	opts = append([]base.Option{base.WithBaseURL(baseURL), base.WithLogger(log)}, opts...)
	c.Client = base.NewClient(base.GatewayEPoint, opts...)

	if err := c.Register(c.endpoints()...); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) endpoints() []base.Endpoint {
	return []base.Endpoint{
		c.endpoint(OperationPay, "/request", schema[PaymentRequest, RedirectResponse](c, redirectCheck)),
		c.endpoint(OperationGetStatus, "/get-status", schema[StatusRequest, TransactionResponse](c, transactionCheck)),
		c.endpoint(OperationSaveCard, "/card-registration", schema[SaveCardRequest, RedirectResponse](c, redirectCheck)),
		c.endpoint(OperationPayWithSavedCard, "/execute-pay", schema[SavedCardPaymentRequest, TransactionResponse](c, transactionCheck)),
		c.endpoint(OperationPayAndSaveCard, "/card-registration-with-pay", schema[PaymentRequest, RedirectResponse](c, redirectCheck)),
		c.endpoint(OperationRefund, "/refund-request", schema[RefundRequest, TransactionResponse](c, transactionCheck)),
		c.endpoint(OperationReverse, "/reverse", schema[ReverseRequest, TransactionResponse](c, transactionCheck)),
		c.endpoint(OperationSplitPay, "/split-request", schema[SplitPaymentRequest, RedirectResponse](c, redirectCheck)),
	}
}

func (c *Client) endpoint(name, path string, handler base.Handler) base.Endpoint {
	return base.Endpoint{
		Name:     name,
		Path:     path,
		Method:   http.MethodPost,
		Encoding: base.EncodingForm,
		Handler:  handler,
	}
}

func schema[Req any, Resp any](c *Client, check func(*Resp) *base.GatewayError) base.Handler {
	return &base.Schema[Req, Resp, ErrorResponse]{
		Gateway: base.GatewayEPoint,
		Pre:     c.inject,
		Post:    c.seal,
		Check:   check,
		Failure: func(_ int, fail *ErrorResponse) *base.GatewayError {
			if fail.Status == "" && fail.Message == "" {
				return nil
			}
			return &base.GatewayError{
				Gateway: string(base.GatewayEPoint),
				Code:    fail.Code,
				Message: fail.Message,
				Details: map[string]any{"status": fail.Status},
			}
		},
	}
}

// inject adds merchant constants the caller did not supply
func (c *Client) inject(_ context.Context, fields map[string]any) error {
	base.SetDefault(fields, "public_key", c.config.PublicKey)
	base.SetDefault(fields, "language", c.config.Language)
	base.SetDefault(fields, "currency", c.config.Currency)
	base.SetDefault(fields, "success_redirect_url", c.config.SuccessRedirectURL)
	base.SetDefault(fields, "error_redirect_url", c.config.ErrorRedirectURL)
	return nil
}

// seal replaces the validated fields with their signed envelope
func (c *Client) seal(_ context.Context, fields map[string]any) (base.Payload, error) {
	if err := numericAmounts(fields); err != nil {
		return base.Payload{}, err
	}

	data, signature, err := c.signer.Seal(fields)
	if err != nil {
		return base.Payload{}, err
	}
	return base.Payload{Fields: map[string]any{
		security.FieldData:      data,
		security.FieldSignature: signature,
	}}, nil
}

// numericAmounts writes money fields as JSON numbers inside the sealed data
func numericAmounts(fields map[string]any) error {
	for _, key := range []string{"amount", "split_amount"} {
		value, ok := fields[key]
		if !ok || value == nil {
			continue
		}
		d, err := decimal.NewFromString(types.Stringify(value))
		if err != nil {
			return ierr.WithError(err).
				WithHint(key + " must be a decimal number").
				WithReportableDetails(map[string]any{"field": key}).
				Mark(ierr.ErrValidation)
		}
		fields[key] = json.Number(d.String())
	}
	return nil
}

func redirectCheck(resp *RedirectResponse) *base.GatewayError {
	return statusError(resp.Status, resp.Code, resp.Message)
}

func transactionCheck(resp *TransactionResponse) *base.GatewayError {
	return statusError(resp.Status, resp.Code, resp.Message)
}

// Pay starts a hosted payment; the card holder is sent to RedirectURL
func (c *Client) Pay(ctx context.Context, req PaymentRequest, opts ...base.CallOption) (*RedirectResponse, *base.Envelope, error) {
	return base.Call[*RedirectResponse](ctx, c.Client, OperationPay, req, opts...)
}

// GetStatus returns the current state of a payment
func (c *Client) GetStatus(ctx context.Context, req StatusRequest, opts ...base.CallOption) (*TransactionResponse, *base.Envelope, error) {
	return base.Call[*TransactionResponse](ctx, c.Client, OperationGetStatus, req, opts...)
}

// SaveCard starts card registration without a charge
func (c *Client) SaveCard(ctx context.Context, req SaveCardRequest, opts ...base.CallOption) (*RedirectResponse, *base.Envelope, error) {
	return base.Call[*RedirectResponse](ctx, c.Client, OperationSaveCard, req, opts...)
}

// PayWithSavedCard charges a registered card without card holder interaction
func (c *Client) PayWithSavedCard(ctx context.Context, req SavedCardPaymentRequest, opts ...base.CallOption) (*TransactionResponse, *base.Envelope, error) {
	return base.Call[*TransactionResponse](ctx, c.Client, OperationPayWithSavedCard, req, opts...)
}

// PayAndSaveCard charges the card and registers it in one hosted flow
func (c *Client) PayAndSaveCard(ctx context.Context, req PaymentRequest, opts ...base.CallOption) (*RedirectResponse, *base.Envelope, error) {
	return base.Call[*RedirectResponse](ctx, c.Client, OperationPayAndSaveCard, req, opts...)
}

func (c *Client) Refund(ctx context.Context, req RefundRequest, opts ...base.CallOption) (*TransactionResponse, *base.Envelope, error) {
	return base.Call[*TransactionResponse](ctx, c.Client, OperationRefund, req, opts...)
}

func (c *Client) Reverse(ctx context.Context, req ReverseRequest, opts ...base.CallOption) (*TransactionResponse, *base.Envelope, error) {
	return base.Call[*TransactionResponse](ctx, c.Client, OperationReverse, req, opts...)
}

func (c *Client) SplitPay(ctx context.Context, req SplitPaymentRequest, opts ...base.CallOption) (*RedirectResponse, *base.Envelope, error) {
	return base.Call[*RedirectResponse](ctx, c.Client, OperationSplitPay, req, opts...)
}

// VerifyCallback checks the signature of a result callback and decodes it.
// The payload is only decoded once the signature matches.
func (c *Client) VerifyCallback(_ context.Context, values url.Values) (any, error) {
	var cb Callback
	if err := c.signer.OpenValues(values, &cb); err != nil {
		if ierr.IsSignatureMismatch(err) {
			c.logger.Warnw("epoint callback signature mismatch", "data_length", len(values.Get(security.FieldData)))
		}
		return nil, err
	}
	if err := validator.ValidateRequest(cb); err != nil {
		return nil, err
	}
	return &cb, nil
}
