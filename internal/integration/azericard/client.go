package azericard

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/flexprice/azpay/internal/config"
	ierr "github.com/flexprice/azpay/internal/errors"
	"github.com/flexprice/azpay/internal/integration/base"
	"github.com/flexprice/azpay/internal/logger"
	"github.com/flexprice/azpay/internal/security"
	"github.com/flexprice/azpay/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	TestBaseURL       = "https://testmpi.3dsecure.az/cgi-bin"
	ProductionBaseURL = "https://mpi.3dsecure.az/cgi-bin"

	cgiPath         = "/cgi_link"
	timestampLayout = "20060102150405"
)

// Operations
const (
	OperationAuthorize = "authorize"
	OperationComplete  = "complete"
	OperationReverse   = "reverse"
	OperationRefund    = "refund"
	OperationStatus    = "status"
)

// Fields signed into P_SIGN, in gateway order
var (
	authorizeSignFields   = []string{"TERMINAL", "ORDER", "AMOUNT", "CURRENCY", "TIMESTAMP"}
	transactionSignFields = []string{"TERMINAL", "ORDER", "AMOUNT", "CURRENCY", "RRN", "INT_REF", "TIMESTAMP"}
	statusSignFields      = []string{"TERMINAL", "ORDER", "TRAN_TRTYPE", "TIMESTAMP"}
	callbackSignFields    = []string{"TERMINAL", "ORDER", "AMOUNT", "CURRENCY", "ACTION", "RC", "RRN", "INT_REF", "TIMESTAMP"}
)

const fieldSignature = "P_SIGN"

// Client is the AzeriCard binding. Requests are form posts signed with the
// terminal key; authorization is a browser flow and only ever dry-run.
type Client struct {
	*base.Client
	config config.AzeriCardConfig
	signer *security.FieldSigner
	logger *logger.Logger
	now    func() time.Time
	nonce  func() (string, error)
}

// New builds an AzeriCard client from cfg. The key file is read on every
// signature unless cfg.KeyCacheTTL is set.
func New(cfg config.AzeriCardConfig, log *logger.Logger, opts ...base.Option) (*Client, error) {
	if cfg.Terminal == "" {
		return nil, ierr.NewError("azericard terminal not configured").
			WithHint("Configure gateways.azericard.terminal").
			Mark(ierr.ErrConfiguration)
	}
	if cfg.KeyFile == "" {
		return nil, ierr.NewError("azericard key file not configured").
			WithHint("Configure gateways.azericard.key_file").
			Mark(ierr.ErrConfiguration)
	}
	if log == nil {
		log = logger.L
	}

	var key security.KeySource = security.FileKey{Path: cfg.KeyFile}
	if cfg.KeyCacheTTL > 0 {
		key = security.NewCachedKey(key, string(base.GatewayAzeriCard)+":"+cfg.Terminal, cfg.KeyCacheTTL)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = TestBaseURL
		if cfg.Environment.IsProduction() {
			baseURL = ProductionBaseURL
		}
	}

	c := &Client{
		config: cfg,
		signer: security.NewFieldSigner(key),
		logger: log,
		now:    time.Now,
		nonce:  randomNonce,
	}

	opts = append([]base.Option{base.WithBaseURL(baseURL), base.WithLogger(log)}, opts...)
	c.Client = base.NewClient(base.GatewayAzeriCard, opts...)

	if err := c.Register(
		c.endpoint(OperationAuthorize, true, &base.Schema[AuthorizeRequest, Response, Response]{
			Gateway: base.GatewayAzeriCard,
			Pre:     c.inject(TrTypeAuthorize),
			Post:    c.sign(authorizeSignFields),
			Decode:  base.DecodeKeyValue,
			Check:   actionError,
		}),
		c.endpoint(OperationComplete, false, c.transactionSchema(TrTypeComplete)),
		c.endpoint(OperationReverse, false, c.transactionSchema(TrTypeReverse)),
		c.endpoint(OperationRefund, false, c.transactionSchema(TrTypeRefund)),
		c.endpoint(OperationStatus, false, &base.Schema[StatusRequest, Response, Response]{
			Gateway: base.GatewayAzeriCard,
			Pre:     c.inject(TrTypeStatus),
			Post:    c.sign(statusSignFields),
			Decode:  base.DecodeKeyValue,
			Check:   actionError,
		}),
	); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) endpoint(name string, dryRun bool, handler base.Handler) base.Endpoint {
	return base.Endpoint{
		Name:     name,
		Path:     cgiPath,
		Method:   http.MethodPost,
		Encoding: base.EncodingForm,
		DryRun:   dryRun,
		Handler:  handler,
	}
}

func (c *Client) transactionSchema(trType string) base.Handler {
	return &base.Schema[TransactionRequest, Response, Response]{
		Gateway: base.GatewayAzeriCard,
		Pre:     c.inject(trType),
		Post:    c.sign(transactionSignFields),
		Decode:  base.DecodeKeyValue,
		Check:   actionError,
	}
}

// inject fills merchant constants, the transaction type, a fresh timestamp and nonce
func (c *Client) inject(trType string) base.PreFunc {
	return func(_ context.Context, fields map[string]any) error {
		nonce, err := c.nonce()
		if err != nil {
			return err
		}

		fields["TRTYPE"] = trType
		fields["TERMINAL"] = c.config.Terminal
		fields["TIMESTAMP"] = c.now().UTC().Format(timestampLayout)
		fields["NONCE"] = nonce
		base.SetDefault(fields, "CURRENCY", c.config.Currency)
		base.SetDefault(fields, "MERCH_NAME", c.config.MerchantName)
		base.SetDefault(fields, "MERCH_URL", c.config.MerchantURL)
		base.SetDefault(fields, "COUNTRY", c.config.Country)
		base.SetDefault(fields, "MERCH_GMT", c.config.MerchGMT)
		base.SetDefault(fields, "BACKREF", c.config.BackRef)
		base.SetDefault(fields, "LANG", c.config.Language)
		return nil
	}
}

// sign formats the amount and adds P_SIGN over signFields in order
func (c *Client) sign(signFields []string) base.PostFunc {
	return func(ctx context.Context, fields map[string]any) (base.Payload, error) {
		if amount, ok := fields["AMOUNT"]; ok {
			d, err := decimal.NewFromString(types.Stringify(amount))
			if err != nil {
				return base.Payload{}, ierr.WithError(err).
					WithHint("AMOUNT must be a decimal number").
					Mark(ierr.ErrValidation)
			}
			fields["AMOUNT"] = d.StringFixed(2)
		}

		values := lo.Map(signFields, func(name string, _ int) string {
			return types.Stringify(fields[name])
		})
		signature, err := c.signer.Sign(ctx, values...)
		if err != nil {
			return base.Payload{}, err
		}
		fields[fieldSignature] = signature
		return base.Payload{Fields: fields}, nil
	}
}

// Authorize prepares the hosted payment form. The envelope carries a DryRun
// whose HTML() is served to the card holder.
func (c *Client) Authorize(ctx context.Context, req AuthorizeRequest, opts ...base.CallOption) (*base.DryRun, *base.Envelope, error) {
	env, err := c.Invoke(ctx, OperationAuthorize, req, opts...)
	if err != nil {
		return nil, nil, err
	}
	return env.DryRun, env, nil
}

// Complete captures a previously authorized amount
func (c *Client) Complete(ctx context.Context, req TransactionRequest, opts ...base.CallOption) (*Response, *base.Envelope, error) {
	return base.Call[*Response](ctx, c.Client, OperationComplete, req, opts...)
}

func (c *Client) Reverse(ctx context.Context, req TransactionRequest, opts ...base.CallOption) (*Response, *base.Envelope, error) {
	return base.Call[*Response](ctx, c.Client, OperationReverse, req, opts...)
}

func (c *Client) Refund(ctx context.Context, req TransactionRequest, opts ...base.CallOption) (*Response, *base.Envelope, error) {
	return base.Call[*Response](ctx, c.Client, OperationRefund, req, opts...)
}

// Status queries the result of an earlier transaction of an order
func (c *Client) Status(ctx context.Context, req StatusRequest, opts ...base.CallOption) (*Response, *base.Envelope, error) {
	return base.Call[*Response](ctx, c.Client, OperationStatus, req, opts...)
}

// VerifyCallback checks P_SIGN of the result the gateway posts to BACKREF and decodes it
func (c *Client) VerifyCallback(ctx context.Context, values url.Values) (any, error) {
	signature := values.Get(fieldSignature)
	if signature == "" {
		return nil, ierr.NewError("callback is missing P_SIGN").
			WithHint("Callback payload must be signed").
			Mark(ierr.ErrValidation)
	}

	parts := lo.Map(callbackSignFields, func(name string, _ int) string {
		return values.Get(name)
	})
	ok, err := c.signer.Verify(ctx, signature, parts...)
	if err != nil {
		return nil, err
	}
	if !ok {
		c.logger.Warnw("azericard callback signature mismatch",
			"order", values.Get("ORDER"),
			"terminal", values.Get("TERMINAL"))
		return nil, ierr.NewError("callback signature mismatch").
			WithHint("Signature verification failed").
			WithReportableDetails(map[string]any{"order": values.Get("ORDER")}).
			Mark(ierr.ErrSignatureMismatch)
	}

	fields := make(map[string]any, len(values))
	for k := range values {
		fields[k] = values.Get(k)
	}
	var resp Response
	if err := types.Decode(fields, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func randomNonce() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to generate nonce").
			Mark(ierr.ErrSystem)
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}
