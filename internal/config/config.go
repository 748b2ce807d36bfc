package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flexprice/azpay/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	HTTP       HTTPConfig       `mapstructure:"http"`
	Gateways   GatewaysConfig   `mapstructure:"gateways"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

// HTTPConfig is shared by every gateway transport
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
	// RateLimit is the number of outbound requests per second per gateway, 0 disables it
	RateLimit float64 `mapstructure:"rate_limit" validate:"gte=0"`
	// DryRun makes every gateway return request descriptors instead of calling out
	DryRun bool `mapstructure:"dry_run"`
}

func NewConfig() (*Configuration, error) {
	// .env is optional, real environment variables always win
	_ = godotenv.Load()

	v := viper.New()

	// Modify config paths to ensure config.yaml is found
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/azpay")

	// Set up environment variables support
	v.SetEnvPrefix("AZPAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it without a config file
func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", types.ModeLocal)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", types.LogLevelInfo)
	v.SetDefault("http.timeout", 30*time.Second)
	v.SetDefault("http.rate_limit", 0)
	v.SetDefault("http.dry_run", false)

	v.SetDefault("gateways.epoint.enabled", false)
	v.SetDefault("gateways.epoint.base_url", "https://epoint.az/api/1")
	v.SetDefault("gateways.epoint.public_key", "")
	v.SetDefault("gateways.epoint.private_key", "")
	v.SetDefault("gateways.epoint.language", "az")
	v.SetDefault("gateways.epoint.currency", "AZN")
	v.SetDefault("gateways.epoint.success_redirect_url", "")
	v.SetDefault("gateways.epoint.error_redirect_url", "")

	v.SetDefault("gateways.azericard.enabled", false)
	v.SetDefault("gateways.azericard.environment", types.EnvironmentTest)
	v.SetDefault("gateways.azericard.base_url", "")
	v.SetDefault("gateways.azericard.terminal", "")
	v.SetDefault("gateways.azericard.merchant_name", "")
	v.SetDefault("gateways.azericard.merchant_url", "")
	v.SetDefault("gateways.azericard.key_file", "")
	v.SetDefault("gateways.azericard.key_cache_ttl", 0)
	v.SetDefault("gateways.azericard.currency", "944")
	v.SetDefault("gateways.azericard.country", "AZ")
	v.SetDefault("gateways.azericard.merch_gmt", "+4")
	v.SetDefault("gateways.azericard.backref", "")
	v.SetDefault("gateways.azericard.language", "AZ")

	v.SetDefault("gateways.kapital.enabled", false)
	v.SetDefault("gateways.kapital.environment", types.EnvironmentTest)
	v.SetDefault("gateways.kapital.base_url", "")
	v.SetDefault("gateways.kapital.username", "")
	v.SetDefault("gateways.kapital.password", "")
	v.SetDefault("gateways.kapital.language", "az")
	v.SetDefault("gateways.kapital.currency", "AZN")
	v.SetDefault("gateways.kapital.redirect_url", "")

	v.SetDefault("gateways.payriff.enabled", false)
	v.SetDefault("gateways.payriff.base_url", "https://api.payriff.com/api/v3")
	v.SetDefault("gateways.payriff.secret_key", "")
	v.SetDefault("gateways.payriff.language", "AZ")
	v.SetDefault("gateways.payriff.currency", "AZN")
	v.SetDefault("gateways.payriff.callback_url", "")

	v.SetDefault("gateways.lsim.enabled", false)
	v.SetDefault("gateways.lsim.base_url", "https://apps.lsim.az/quicksms/v1")
	v.SetDefault("gateways.lsim.login", "")
	v.SetDefault("gateways.lsim.password", "")
	v.SetDefault("gateways.lsim.sender", "")

	v.SetDefault("gateways.posta_guvercini.enabled", false)
	v.SetDefault("gateways.posta_guvercini.base_url", "https://www.postaguvercini.com/api_http")
	v.SetDefault("gateways.posta_guvercini.user", "")
	v.SetDefault("gateways.posta_guvercini.password", "")
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or other non-web applications
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		HTTP:       HTTPConfig{Timeout: 30 * time.Second},
	}
}
