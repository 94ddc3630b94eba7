package adapters

import (
	"time"

	"github.com/mangrove-one/MangroveMarkets/domain"
)

// NewDefaultAdapters constructs the shipped adapters in routing order:
// XPMarket, Uniswap v3, Jupiter. Missing venue sections fall back to public defaults.
func NewDefaultAdapters(config *domain.VenuesConfig, quoteTTL time.Duration, prober ReachabilityProber) ([]domain.VenueAdapter, error) {
	if config == nil {
		config = &domain.VenuesConfig{}
	}

	xpMarketConfig := domain.XPMarketConfig{RPCURL: DefaultXRPLRPCURL}
	if config.XPMarket != nil {
		xpMarketConfig = *config.XPMarket
	}

	uniswapConfig := domain.UniswapConfig{}
	if config.Uniswap != nil {
		uniswapConfig = *config.Uniswap
	}

	jupiterConfig := domain.JupiterConfig{APIURL: DefaultJupiterAPIURL}
	if config.Jupiter != nil {
		jupiterConfig = *config.Jupiter
	}

	xpMarket, err := NewXPMarketAdapter(xpMarketConfig, quoteTTL, prober)
	if err != nil {
		return nil, err
	}

	return []domain.VenueAdapter{
		xpMarket,
		NewUniswapAdapter(uniswapConfig, prober),
		NewJupiterAdapter(jupiterConfig, prober),
	}, nil
}
