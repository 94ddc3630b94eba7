package adapters

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mangrove-one/MangroveMarkets/domain"
)

const (
	JupiterVenueID = "jupiter"
	JupiterChain   = "solana-devnet"

	// DefaultJupiterAPIURL is the public Jupiter v6 quote API.
	DefaultJupiterAPIURL = "https://quote-api.jup.ag/v6"
)

var jupiterFeePercent = decimal.RequireFromString("0.002")

// JupiterAdapter lists Jupiter aggregator pairs on Solana devnet. Quoting is not wired.
type JupiterAdapter struct {
	venueInfo

	apiURL string
	prober ReachabilityProber
}

var _ domain.VenueAdapter = &JupiterAdapter{}

// NewJupiterAdapter returns the Jupiter adapter.
func NewJupiterAdapter(config domain.JupiterConfig, prober ReachabilityProber) *JupiterAdapter {
	return &JupiterAdapter{
		venueInfo: venueInfo{
			id:         JupiterVenueID,
			name:       "Jupiter",
			chain:      JupiterChain,
			feePercent: jupiterFeePercent,
			status:     domain.VenueStatusActive,
			pairs: []domain.TradingPair{
				newPair(JupiterVenueID, "SOL", "USDC"),
				newPair(JupiterVenueID, "WBTC", "SOL"),
				newPair(JupiterVenueID, "WBTC", "USDC"),
			},
		},
		apiURL: config.APIURL,
		prober: prober,
	}
}

// GetQuote implements domain.VenueAdapter.
func (a *JupiterAdapter) GetQuote(ctx context.Context, inputToken, outputToken string, amount decimal.Decimal) (domain.Quote, error) {
	return domain.Quote{}, domain.VenueNotSupportedError(fmt.Sprintf("Quoting is not yet wired for %s on %s", a.name, a.chain))
}

// HealthCheck implements domain.VenueAdapter.
func (a *JupiterAdapter) HealthCheck(ctx context.Context) bool {
	return isReachable(ctx, a.prober, a.apiURL)
}
