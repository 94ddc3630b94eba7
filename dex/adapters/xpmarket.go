package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mangrove-one/MangroveMarkets/domain"
)

const (
	XPMarketVenueID = "xpmarket"
	XPMarketChain   = "xrpl-testnet"

	// DefaultXRPLRPCURL is the public XRPL testnet JSON-RPC endpoint.
	DefaultXRPLRPCURL = "https://s.altnet.rippletest.net:51234"
)

var (
	xpMarketFeePercent = decimal.RequireFromString("0.001")

	xpMarketMinAmount = decimal.NewFromInt(1)
	xpMarketMaxAmount = decimal.NewFromInt(1_000_000)

	// DefaultXPMarketRates are the reference rates used when none are configured.
	DefaultXPMarketRates = map[string]string{
		"XRP/USDC": "0.50",
		"XRP/USD":  "0.50",
	}
)

// XPMarketAdapter prices XRPL DEX pairs from a rate table.
type XPMarketAdapter struct {
	venueInfo

	rpcURL   string
	rates    RateTable
	quoteTTL time.Duration
	prober   ReachabilityProber
}

var _ domain.VenueAdapter = &XPMarketAdapter{}

// NewXPMarketAdapter returns the XPMarket adapter.
// Falls back to DefaultXPMarketRates when config carries no rates.
// Quotes expire quoteTTL after issuance; a zero quoteTTL issues quotes without expiry.
func NewXPMarketAdapter(config domain.XPMarketConfig, quoteTTL time.Duration, prober ReachabilityProber) (*XPMarketAdapter, error) {
	rawRates := config.Rates
	if len(rawRates) == 0 {
		rawRates = DefaultXPMarketRates
	}

	rates, err := ParseRateTable(rawRates)
	if err != nil {
		return nil, fmt.Errorf("xpmarket: %w", err)
	}

	pairs := make([]domain.TradingPair, 0, len(rates))
	for _, pair := range sortedPairs(rates) {
		pairs = append(pairs, newBoundedPair(XPMarketVenueID, pair.Base, pair.Quote, xpMarketMinAmount, xpMarketMaxAmount))
	}

	return &XPMarketAdapter{
		venueInfo: venueInfo{
			id:         XPMarketVenueID,
			name:       "XPMarket",
			chain:      XPMarketChain,
			feePercent: xpMarketFeePercent,
			status:     domain.VenueStatusActive,
			pairs:      pairs,
		},
		rpcURL:   config.RPCURL,
		rates:    rates,
		quoteTTL: quoteTTL,
		prober:   prober,
	}, nil
}

// GetQuote implements domain.VenueAdapter.
func (a *XPMarketAdapter) GetQuote(ctx context.Context, inputToken, outputToken string, amount decimal.Decimal) (domain.Quote, error) {
	rate, ok := a.rates.Rate(inputToken, outputToken)
	if !ok {
		return domain.Quote{}, domain.VenueNotSupportedError(fmt.Sprintf("XPMarket has no rate for %s->%s", inputToken, outputToken))
	}

	priced := PriceWithInputFee(amount, a.feePercent, rate)
	if amount.IsPositive() && !priced.OutputAmount.IsPositive() {
		return domain.Quote{}, domain.VenueNotSupportedError(fmt.Sprintf("XPMarket cannot price %s %s->%s", amount, inputToken, outputToken))
	}

	quote := domain.Quote{
		QuoteID:            a.newQuoteID(),
		VenueID:            a.id,
		InputToken:         inputToken,
		OutputToken:        outputToken,
		InputAmount:        amount,
		OutputAmount:       priced.OutputAmount,
		ExchangeRate:       priced.ExchangeRate,
		PriceImpactPercent: decimal.Zero,
		VenueFee:           priced.VenueFee,
		PlatformFee:        decimal.Zero,
		TotalCost:          amount.Add(priced.VenueFee),
	}

	if a.quoteTTL > 0 {
		expiresAt := time.Now().UTC().Add(a.quoteTTL)
		quote.ExpiresAt = &expiresAt
	}

	return quote, nil
}

// HealthCheck implements domain.VenueAdapter.
func (a *XPMarketAdapter) HealthCheck(ctx context.Context) bool {
	return isReachable(ctx, a.prober, a.rpcURL)
}
