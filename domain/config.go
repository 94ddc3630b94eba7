package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Config defines the config for the DEX aggregator server.
type Config struct {
	// Defines the web server configuration.
	ServerAddress string `mapstructure:"server-address"`

	// Defines the gRPC health server address. Disabled if empty.
	GRPCAddress string `mapstructure:"grpc-address"`

	// Defines the logger configuration.
	LoggerFilename     string `mapstructure:"logger-filename"`
	LoggerIsProduction bool   `mapstructure:"logger-is-production"`
	LoggerLevel        string `mapstructure:"logger-level"`

	CORS *CORSConfig `mapstructure:"cors"`

	OTEL *OTELConfig `mapstructure:"otel"`

	// Router encapsulates the router config.
	Router *RouterConfig `mapstructure:"router"`

	RateLimit *RateLimitConfig `mapstructure:"rate-limit"`

	// Venues encapsulates per-venue adapter config.
	Venues *VenuesConfig `mapstructure:"venues"`
}

// CORSConfig represents the CORS configuration.
type CORSConfig struct {
	AllowedHeaders string `mapstructure:"allowed-headers"`
	AllowedMethods string `mapstructure:"allowed-methods"`
	AllowedOrigin  string `mapstructure:"allowed-origin"`
}

// OTELConfig represents OpenTelemetry and Sentry configuration.
type OTELConfig struct {
	DSN                string  `mapstructure:"dsn"`
	SampleRate         float64 `mapstructure:"sample-rate"`
	EnableTracing      bool    `mapstructure:"enable-tracing"`
	TracesSampleRate   float64 `mapstructure:"traces-sample-rate"`
	ProfilesSampleRate float64 `mapstructure:"profiles-sample-rate"`
	Environment        string  `mapstructure:"environment"`
}

// RouterConfig represents the quote router configuration.
type RouterConfig struct {
	// PlatformFeeRate is the aggregator markup applied on top of venue fees,
	// as a fraction of the input amount.
	PlatformFeeRate string `mapstructure:"platform-fee-rate"`
	// AdapterTimeoutMs bounds every single adapter call. Zero disables the bound.
	AdapterTimeoutMs int `mapstructure:"adapter-timeout-ms"`
	// QuoteTTLSeconds is how long issued quotes stay valid.
	QuoteTTLSeconds int `mapstructure:"quote-ttl-seconds"`
	// QuoteCacheSize is the max number of issued quotes remembered for lookup by id.
	QuoteCacheSize int `mapstructure:"quote-cache-size"`
}

// RateLimitConfig represents the per-client request rate limit. Disabled if RequestsPerSecond is zero.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests-per-second"`
	Burst             int     `mapstructure:"burst"`
}

// VenuesConfig groups per-venue adapter configuration.
type VenuesConfig struct {
	// ProbeReachability makes venue health checks issue an HTTP request to the
	// configured endpoint instead of only checking that one is configured.
	ProbeReachability bool `mapstructure:"probe-reachability"`
	// ProbeTimeoutMs bounds a single reachability probe.
	ProbeTimeoutMs int `mapstructure:"probe-timeout-ms"`

	XPMarket *XPMarketConfig `mapstructure:"xpmarket"`
	Uniswap  *UniswapConfig  `mapstructure:"uniswap"`
	Jupiter  *JupiterConfig  `mapstructure:"jupiter"`
}

// XPMarketConfig configures the XRPL XPMarket adapter.
type XPMarketConfig struct {
	RPCURL string `mapstructure:"rpc-url"`
	// Rates maps "BASE/QUOTE" to the number of quote tokens per base token.
	Rates map[string]string `mapstructure:"rates"`
}

// UniswapConfig configures the Uniswap v3 adapter.
type UniswapConfig struct {
	RPCURL string `mapstructure:"rpc-url"`
}

// JupiterConfig configures the Jupiter adapter.
type JupiterConfig struct {
	APIURL string `mapstructure:"api-url"`
}

// GetPlatformFeeRate parses the configured platform fee rate.
// Errors if the rate is malformed or outside of [0, 1).
func (c RouterConfig) GetPlatformFeeRate() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(c.PlatformFeeRate)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid platform fee rate (%s): %w", c.PlatformFeeRate, err)
	}

	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return decimal.Decimal{}, fmt.Errorf("platform fee rate (%s) must be within [0, 1)", c.PlatformFeeRate)
	}

	return rate, nil
}
