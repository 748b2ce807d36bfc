package dto

import "github.com/flexprice/azpay/internal/integration/base"

// ListGatewaysResponse lists the configured gateways and their operations
type ListGatewaysResponse struct {
	Gateways []base.GatewayInfo `json:"gateways"`
}

// CallbackResponse carries a verified provider callback
type CallbackResponse struct {
	Gateway  base.GatewayType `json:"gateway"`
	Verified bool             `json:"verified"`
	Payload  any              `json:"payload"`
}

// HealthResponse is returned by the health check
type HealthResponse struct {
	Status   string `json:"status"`
	Gateways int    `json:"gateways"`
}
