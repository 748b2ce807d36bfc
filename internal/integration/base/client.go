package base

import (
	"context"

	ierr "github.com/flexprice/azpay/internal/errors"
	"github.com/flexprice/azpay/internal/httpclient"
	"github.com/flexprice/azpay/internal/logger"
	"github.com/samber/lo"
)

// Operation is a resolved gateway operation ready to be called
type Operation func(ctx context.Context, params any, opts ...CallOption) (*Envelope, error)

// Client dispatches operation names to registered endpoints and runs them
// through the shared executor.
type Client struct {
	name      GatewayType
	baseURL   string
	transport httpclient.Client
	logger    *logger.Logger
	dryRun    bool
	auth      AuthConfig
	headers   map[string]string
	registry  *Registry
}

// Option configures a Client
type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

func WithTransport(transport httpclient.Client) Option {
	return func(c *Client) { c.transport = transport }
}

func WithLogger(log *logger.Logger) Option {
	return func(c *Client) { c.logger = log }
}

// WithDryRun makes every operation of the client return a request descriptor
func WithDryRun(dryRun bool) Option {
	return func(c *Client) { c.dryRun = dryRun }
}

func WithAuth(auth AuthConfig) Option {
	return func(c *Client) { c.auth = auth }
}

// WithHeader adds a header sent with every request
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

// NewClient creates a client for the named gateway
func NewClient(name GatewayType, opts ...Option) *Client {
	c := &Client{
		name:    name,
		headers: make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.L
	}
	if c.transport == nil {
		c.transport = httpclient.NewDefaultClient()
	}
	c.logger = c.logger.With("gateway", string(name))
	c.registry = NewRegistry(c.logger)
	return c
}

// Name returns the gateway this client talks to
func (c *Client) Name() GatewayType {
	return c.name
}

// Register adds endpoints to the client. Endpoints without a handler use the
// passthrough handler for this gateway.
func (c *Client) Register(endpoints ...Endpoint) error {
	for _, ep := range endpoints {
		if ep.Handler == nil {
			ep.Handler = Passthrough(c.name)
		}
		if err := c.registry.Register(ep); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister is Register for static endpoint tables
func (c *Client) MustRegister(endpoints ...Endpoint) {
	if err := c.Register(endpoints...); err != nil {
		panic(err)
	}
}

// Operations lists the registered operation names
func (c *Client) Operations() []string {
	return c.registry.Names()
}

// Endpoint returns the endpoint registered under name
func (c *Client) Endpoint(name string) (Endpoint, bool) {
	return c.registry.Lookup(name)
}

// Resolve returns a callable for the named operation
func (c *Client) Resolve(name string) (Operation, error) {
	ep, ok := c.registry.Lookup(name)
	if !ok {
		return nil, ierr.NewErrorf("%s has no operation %q", c.name, name).
			WithHintf("Unknown operation %s", name).
			WithReportableDetails(map[string]any{
				"gateway":    c.name,
				"operation":  name,
				"operations": c.registry.Names(),
			}).
			Mark(ierr.ErrNotFound)
	}

	return func(ctx context.Context, params any, opts ...CallOption) (*Envelope, error) {
		return c.execute(ctx, ep, params, newCallOptions(opts))
	}, nil
}

// Invoke resolves and calls the named operation
func (c *Client) Invoke(ctx context.Context, name string, params any, opts ...CallOption) (*Envelope, error) {
	op, err := c.Resolve(name)
	if err != nil {
		return nil, err
	}
	return op(ctx, params, opts...)
}

// CallOption adjusts a single invocation
type CallOption func(*callOptions)

type callOptions struct {
	baseURL string
	dryRun  *bool
	headers map[string]string
}

func newCallOptions(opts []CallOption) *callOptions {
	o := &callOptions{headers: make(map[string]string)}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// CallBaseURL overrides the base URL for one call
func CallBaseURL(baseURL string) CallOption {
	return func(o *callOptions) { o.baseURL = baseURL }
}

// CallDryRun forces dry-run on or off for one call
func CallDryRun(dryRun bool) CallOption {
	return func(o *callOptions) { o.dryRun = lo.ToPtr(dryRun) }
}

// CallHeader adds a header to one call
func CallHeader(key, value string) CallOption {
	return func(o *callOptions) { o.headers[key] = value }
}

// Call invokes operation and returns its result as T next to the envelope. The
// result is the zero value when the gateway answered with its failure shape or
// the call was a dry-run; the envelope tells which.
func Call[T any](ctx context.Context, c *Client, operation string, params any, opts ...CallOption) (T, *Envelope, error) {
	var zero T
	env, err := c.Invoke(ctx, operation, params, opts...)
	if err != nil {
		return zero, nil, err
	}
	result, ok := env.Result.(T)
	if !ok {
		return zero, env, nil
	}
	return result, env, nil
}
