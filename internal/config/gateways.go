package config

import (
	"time"

	"github.com/flexprice/azpay/internal/types"
)

// GatewaysConfig groups the per provider settings. A provider is only built when enabled.
type GatewaysConfig struct {
	EPoint         EPointConfig         `mapstructure:"epoint"`
	AzeriCard      AzeriCardConfig      `mapstructure:"azericard"`
	Kapital        KapitalConfig        `mapstructure:"kapital"`
	Payriff        PayriffConfig        `mapstructure:"payriff"`
	LSIM           LSIMConfig           `mapstructure:"lsim"`
	PostaGuvercini PostaGuverciniConfig `mapstructure:"posta_guvercini"`
}

type EPointConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	BaseURL            string `mapstructure:"base_url" validate:"required_if=Enabled true,omitempty,url"`
	PublicKey          string `mapstructure:"public_key" validate:"required_if=Enabled true"`
	PrivateKey         string `mapstructure:"private_key" validate:"required_if=Enabled true"`
	Language           string `mapstructure:"language"`
	Currency           string `mapstructure:"currency"`
	SuccessRedirectURL string `mapstructure:"success_redirect_url"`
	ErrorRedirectURL   string `mapstructure:"error_redirect_url"`
}

type AzeriCardConfig struct {
	Enabled      bool              `mapstructure:"enabled"`
	Environment  types.Environment `mapstructure:"environment" validate:"omitempty,oneof=test prod"`
	BaseURL      string            `mapstructure:"base_url" validate:"omitempty,url"`
	Terminal     string            `mapstructure:"terminal" validate:"required_if=Enabled true"`
	MerchantName string            `mapstructure:"merchant_name"`
	MerchantURL  string            `mapstructure:"merchant_url"`
	// KeyFile holds the signing key material, it is read on every call unless KeyCacheTTL is set
	KeyFile     string        `mapstructure:"key_file" validate:"required_if=Enabled true"`
	KeyCacheTTL time.Duration `mapstructure:"key_cache_ttl"`
	Currency    string        `mapstructure:"currency"`
	Country     string        `mapstructure:"country"`
	MerchGMT    string        `mapstructure:"merch_gmt"`
	BackRef     string        `mapstructure:"backref"`
	Language    string        `mapstructure:"language"`
}

type KapitalConfig struct {
	Enabled     bool              `mapstructure:"enabled"`
	Environment types.Environment `mapstructure:"environment" validate:"omitempty,oneof=test prod"`
	BaseURL     string            `mapstructure:"base_url" validate:"omitempty,url"`
	Username    string            `mapstructure:"username" validate:"required_if=Enabled true"`
	Password    string            `mapstructure:"password" validate:"required_if=Enabled true"`
	Language    string            `mapstructure:"language"`
	Currency    string            `mapstructure:"currency"`
	RedirectURL string            `mapstructure:"redirect_url"`
}

type PayriffConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	BaseURL     string `mapstructure:"base_url" validate:"required_if=Enabled true,omitempty,url"`
	SecretKey   string `mapstructure:"secret_key" validate:"required_if=Enabled true"`
	Language    string `mapstructure:"language"`
	Currency    string `mapstructure:"currency"`
	CallbackURL string `mapstructure:"callback_url"`
}

type LSIMConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BaseURL  string `mapstructure:"base_url" validate:"required_if=Enabled true,omitempty,url"`
	Login    string `mapstructure:"login" validate:"required_if=Enabled true"`
	Password string `mapstructure:"password" validate:"required_if=Enabled true"`
	Sender   string `mapstructure:"sender" validate:"required_if=Enabled true"`
}

type PostaGuverciniConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BaseURL  string `mapstructure:"base_url" validate:"required_if=Enabled true,omitempty,url"`
	User     string `mapstructure:"user" validate:"required_if=Enabled true"`
	Password string `mapstructure:"password" validate:"required_if=Enabled true"`
}
