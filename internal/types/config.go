package types

type RunMode string

const (
	// ModeLocal runs the gateway API server with developer defaults
	ModeLocal RunMode = "local"
	// ModeAPI runs the gateway API server
	ModeAPI RunMode = "api"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
)

// Environment selects between a provider's test and production hosts
type Environment string

const (
	EnvironmentTest       Environment = "test"
	EnvironmentProduction Environment = "prod"
)

// IsProduction reports whether the production host should be used
func (e Environment) IsProduction() bool {
	return e == EnvironmentProduction
}
