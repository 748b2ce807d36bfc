package integration

import (
	"github.com/flexprice/azpay/internal/config"
	"github.com/flexprice/azpay/internal/httpclient"
	"github.com/flexprice/azpay/internal/integration/azericard"
	"github.com/flexprice/azpay/internal/integration/base"
	"github.com/flexprice/azpay/internal/integration/epoint"
	"github.com/flexprice/azpay/internal/integration/kapital"
	"github.com/flexprice/azpay/internal/integration/lsim"
	"github.com/flexprice/azpay/internal/integration/payriff"
	"github.com/flexprice/azpay/internal/integration/postaguvercini"
	"github.com/flexprice/azpay/internal/logger"
	"golang.org/x/time/rate"
)

// Factory builds the configured gateway clients
type Factory struct {
	config    *config.Configuration
	logger    *logger.Logger
	transport httpclient.Client
}

// NewFactory creates a new integration factory
func NewFactory(cfg *config.Configuration, logger *logger.Logger, transport httpclient.Client) *Factory {
	return &Factory{
		config:    cfg,
		logger:    logger,
		transport: transport,
	}
}

// options are shared by every gateway client. Each call gets its own limiter
// so the configured rate applies per gateway.
func (f *Factory) options() []base.Option {
	transport := f.transport
	if limit := f.config.HTTP.RateLimit; limit > 0 {
		transport = httpclient.NewRateLimitedClient(transport, rate.NewLimiter(rate.Limit(limit), 1))
	}
	return []base.Option{
		base.WithTransport(transport),
		base.WithDryRun(f.config.HTTP.DryRun),
	}
}

// NewManager builds every enabled gateway and registers it
func (f *Factory) NewManager() (*base.Manager, error) {
	manager := base.NewManager()
	gateways := f.config.Gateways

	builders := []struct {
		enabled bool
		build   func() (base.Integration, error)
	}{
		{gateways.EPoint.Enabled, f.epoint},
		{gateways.AzeriCard.Enabled, f.azericard},
		{gateways.Kapital.Enabled, f.kapital},
		{gateways.Payriff.Enabled, f.payriff},
		{gateways.LSIM.Enabled, f.lsim},
		{gateways.PostaGuvercini.Enabled, f.postaGuvercini},
	}

	for _, b := range builders {
		if !b.enabled {
			continue
		}
		integration, err := b.build()
		if err != nil {
			return nil, err
		}
		if err := manager.Register(integration); err != nil {
			return nil, err
		}
		f.logger.Infow("gateway registered",
			"gateway", integration.Type,
			"operations", integration.Client.Operations())
	}

	return manager, nil
}

func (f *Factory) epoint() (base.Integration, error) {
	client, err := epoint.New(f.config.Gateways.EPoint, f.logger, f.options()...)
	if err != nil {
		return base.Integration{}, err
	}
	return base.Integration{Type: base.GatewayEPoint, Client: client.Client, Callback: client}, nil
}

func (f *Factory) azericard() (base.Integration, error) {
	client, err := azericard.New(f.config.Gateways.AzeriCard, f.logger, f.options()...)
	if err != nil {
		return base.Integration{}, err
	}
	return base.Integration{Type: base.GatewayAzeriCard, Client: client.Client, Callback: client}, nil
}

func (f *Factory) kapital() (base.Integration, error) {
	client, err := kapital.New(f.config.Gateways.Kapital, f.logger, f.options()...)
	if err != nil {
		return base.Integration{}, err
	}
	return base.Integration{Type: base.GatewayKapital, Client: client.Client}, nil
}

func (f *Factory) payriff() (base.Integration, error) {
	client, err := payriff.New(f.config.Gateways.Payriff, f.logger, f.options()...)
	if err != nil {
		return base.Integration{}, err
	}
	return base.Integration{Type: base.GatewayPayriff, Client: client.Client}, nil
}

func (f *Factory) lsim() (base.Integration, error) {
	client, err := lsim.New(f.config.Gateways.LSIM, f.logger, f.options()...)
	if err != nil {
		return base.Integration{}, err
	}
	return base.Integration{Type: base.GatewayLSIM, Client: client.Client}, nil
}

func (f *Factory) postaGuvercini() (base.Integration, error) {
	client, err := postaguvercini.New(f.config.Gateways.PostaGuvercini, f.logger, f.options()...)
	if err != nil {
		return base.Integration{}, err
	}
	return base.Integration{Type: base.GatewayPostaGuvercini, Client: client.Client}, nil
}
