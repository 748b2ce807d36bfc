package base

import (
	"context"
	"net/url"
	"slices"
	"sync"

	ierr "github.com/flexprice/azpay/internal/errors"
	"github.com/samber/lo"
)

// CallbackVerifier checks the signature of a provider callback and decodes it
type CallbackVerifier interface {
	VerifyCallback(ctx context.Context, values url.Values) (any, error)
}

// Integration bundles a gateway client with its optional callback verifier
type Integration struct {
	Type     GatewayType
	Client   *Client
	Callback CallbackVerifier
}

// GatewayInfo describes a registered gateway
type GatewayInfo struct {
	Gateway    GatewayType `json:"gateway"`
	Operations []string    `json:"operations"`
	Callbacks  bool        `json:"callbacks"`
}

// Manager holds the configured gateways
type Manager struct {
	integrations map[GatewayType]Integration
	mu           sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		integrations: make(map[GatewayType]Integration),
	}
}

// Register adds an integration. Each gateway may be registered once.
func (m *Manager) Register(integration Integration) error {
	if integration.Client == nil {
		return ierr.NewErrorf("client not configured for gateway %s", integration.Type).
			WithHint("Every gateway needs a client").
			Mark(ierr.ErrConfiguration)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.integrations[integration.Type]; exists {
		return ierr.NewErrorf("gateway %s already registered", integration.Type).
			WithHintf("Gateway %s is configured twice", integration.Type).
			Mark(ierr.ErrConfiguration)
	}

	m.integrations[integration.Type] = integration
	return nil
}

// GetClient returns the client for gateway
func (m *Manager) GetClient(gateway GatewayType) (*Client, error) {
	integration, err := m.Get(gateway)
	if err != nil {
		return nil, err
	}
	return integration.Client, nil
}

// GetCallbackVerifier returns the callback verifier for gateway
func (m *Manager) GetCallbackVerifier(gateway GatewayType) (CallbackVerifier, error) {
	integration, err := m.Get(gateway)
	if err != nil {
		return nil, err
	}
	if integration.Callback == nil {
		return nil, ierr.NewErrorf("gateway %s does not send callbacks", gateway).
			WithHintf("Callbacks are not supported for %s", gateway).
			Mark(ierr.ErrNotFound)
	}
	return integration.Callback, nil
}

// Get returns the complete integration for gateway
func (m *Manager) Get(gateway GatewayType) (Integration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	integration, exists := m.integrations[gateway]
	if !exists {
		return Integration{}, ierr.NewErrorf("gateway %s not found", gateway).
			WithHintf("Gateway %s is not configured", gateway).
			WithReportableDetails(map[string]any{"gateway": gateway}).
			Mark(ierr.ErrNotFound)
	}
	return integration, nil
}

// List returns the registered gateway types, sorted
func (m *Manager) List() []GatewayType {
	m.mu.RLock()
	defer m.mu.RUnlock()

	gateways := lo.Keys(m.integrations)
	slices.Sort(gateways)
	return gateways
}

// Describe lists every gateway with its operations
func (m *Manager) Describe() []GatewayInfo {
	return lo.Map(m.List(), func(gateway GatewayType, _ int) GatewayInfo {
		integration, _ := m.Get(gateway)
		return GatewayInfo{
			Gateway:    gateway,
			Operations: integration.Client.Operations(),
			Callbacks:  integration.Callback != nil,
		}
	})
}
