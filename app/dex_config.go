package main

import (
	"github.com/mangrove-one/MangroveMarkets/dex/adapters"
	"github.com/mangrove-one/MangroveMarkets/domain"
)

// DefaultConfig returns the default config for the DEX aggregator server.
// A fresh value is returned on every call since the config holds pointers.
func DefaultConfig() domain.Config {
	return domain.Config{
		ServerAddress: ":9092",
		GRPCAddress:   "",

		LoggerFilename:     "dex.log",
		LoggerIsProduction: true,
		LoggerLevel:        "info",

		CORS: &domain.CORSConfig{
			AllowedHeaders: "Origin, Accept, Content-Type, X-Requested-With",
			AllowedMethods: "HEAD, GET, POST, OPTIONS",
			AllowedOrigin:  "*",
		},

		OTEL: &domain.OTELConfig{
			EnableTracing:    true,
			SampleRate:       1,
			TracesSampleRate: 0.1,
			Environment:      "development",
		},

		Router: &domain.RouterConfig{
			PlatformFeeRate:  "0.0005",
			AdapterTimeoutMs: 3000,
			QuoteTTLSeconds:  60,
			QuoteCacheSize:   10_000,
		},

		// Disabled.
		RateLimit: &domain.RateLimitConfig{},

		Venues: &domain.VenuesConfig{
			ProbeReachability: false,
			ProbeTimeoutMs:    2000,

			XPMarket: &domain.XPMarketConfig{
				RPCURL: adapters.DefaultXRPLRPCURL,
			},
			Uniswap: &domain.UniswapConfig{},
			Jupiter: &domain.JupiterConfig{
				APIURL: adapters.DefaultJupiterAPIURL,
			},
		},
	}
}
