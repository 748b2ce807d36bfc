package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_EnabledGatewayRequiresCredentials(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Configuration)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Configuration) {},
		},
		{
			name: "disabled gateway may be empty",
			mutate: func(c *Configuration) {
				c.Gateways.Payriff = PayriffConfig{Enabled: false}
			},
		},
		{
			name: "enabled payriff without secret",
			mutate: func(c *Configuration) {
				c.Gateways.Payriff = PayriffConfig{Enabled: true, BaseURL: "https://api.payriff.com/api/v3"}
			},
			wantErr: true,
		},
		{
			name: "enabled epoint with keys",
			mutate: func(c *Configuration) {
				c.Gateways.EPoint = EPointConfig{
					Enabled:    true,
					BaseURL:    "https://epoint.az/api/1",
					PublicKey:  "i000000001",
					PrivateKey: "secret",
				}
			},
		},
		{
			name: "unknown environment",
			mutate: func(c *Configuration) {
				c.Gateways.Kapital.Environment = "staging"
			},
			wantErr: true,
		},
		{
			name: "negative rate limit",
			mutate: func(c *Configuration) {
				c.HTTP.RateLimit = -1
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
