package adapters

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mangrove-one/MangroveMarkets/domain"
)

const (
	UniswapVenueID = "uniswap-v3"
	UniswapChain   = "ethereum-sepolia"
)

var uniswapFeePercent = decimal.RequireFromString("0.003")

// UniswapAdapter lists Uniswap v3 pools on Sepolia. Quoting is not wired.
type UniswapAdapter struct {
	venueInfo

	rpcURL string
	prober ReachabilityProber
}

var _ domain.VenueAdapter = &UniswapAdapter{}

// NewUniswapAdapter returns the Uniswap v3 adapter.
func NewUniswapAdapter(config domain.UniswapConfig, prober ReachabilityProber) *UniswapAdapter {
	return &UniswapAdapter{
		venueInfo: venueInfo{
			id:         UniswapVenueID,
			name:       "Uniswap v3",
			chain:      UniswapChain,
			feePercent: uniswapFeePercent,
			status:     domain.VenueStatusActive,
			pairs: []domain.TradingPair{
				newPair(UniswapVenueID, "ETH", "USDC"),
				newPair(UniswapVenueID, "WBTC", "ETH"),
				newPair(UniswapVenueID, "WBTC", "USDC"),
			},
		},
		rpcURL: config.RPCURL,
		prober: prober,
	}
}

// GetQuote implements domain.VenueAdapter.
func (a *UniswapAdapter) GetQuote(ctx context.Context, inputToken, outputToken string, amount decimal.Decimal) (domain.Quote, error) {
	return domain.Quote{}, domain.VenueNotSupportedError(fmt.Sprintf("Quoting is not yet wired for %s on %s", a.name, a.chain))
}

// HealthCheck implements domain.VenueAdapter.
// Without a configured RPC endpoint there is nothing to be unhealthy about.
func (a *UniswapAdapter) HealthCheck(ctx context.Context) bool {
	if a.rpcURL == "" {
		return true
	}
	return isReachable(ctx, a.prober, a.rpcURL)
}
