package adapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mangrove-one/MangroveMarkets/domain"
)

// venueInfo implements the parts of domain.VenueAdapter that every venue
// shares. Venues embed it and override what they support.
type venueInfo struct {
	id         string
	name       string
	chain      string
	feePercent decimal.Decimal
	status     domain.VenueStatus
	pairs      []domain.TradingPair
}

// VenueID implements domain.VenueAdapter.
func (v *venueInfo) VenueID() string {
	return v.id
}

// Name implements domain.VenueAdapter.
func (v *venueInfo) Name() string {
	return v.name
}

// Chain implements domain.VenueAdapter.
func (v *venueInfo) Chain() string {
	return v.chain
}

// FeePercent implements domain.VenueAdapter.
func (v *venueInfo) FeePercent() decimal.Decimal {
	return v.feePercent
}

// Status implements domain.VenueAdapter.
func (v *venueInfo) Status() domain.VenueStatus {
	return v.status
}

// GetPairs implements domain.VenueAdapter.
// Returns a copy so that callers cannot mutate the static list.
func (v *venueInfo) GetPairs(ctx context.Context) ([]domain.TradingPair, error) {
	pairs := make([]domain.TradingPair, len(v.pairs))
	copy(pairs, v.pairs)
	return pairs, nil
}

// GetSwapStatus implements domain.VenueAdapter.
// Without live chain access, every transaction is reported as pending.
func (v *venueInfo) GetSwapStatus(ctx context.Context, txHash string) (domain.SwapStatus, error) {
	return domain.SwapStatusPending, nil
}

// newQuoteID returns a quote id namespaced by the venue.
func (v *venueInfo) newQuoteID() string {
	return v.id + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func newPair(venueID, base, quote string) domain.TradingPair {
	return domain.TradingPair{
		VenueID:    venueID,
		BaseToken:  base,
		QuoteToken: quote,
		IsActive:   true,
	}
}

func newBoundedPair(venueID, base, quote string, minAmount, maxAmount decimal.Decimal) domain.TradingPair {
	pair := newPair(venueID, base, quote)
	pair.MinAmount = &minAmount
	pair.MaxAmount = &maxAmount
	return pair
}

// ExecuteSwap implements domain.VenueAdapter.
// On-chain submission is not wired for any venue.
func (v *venueInfo) ExecuteSwap(ctx context.Context, quote domain.Quote, credential string) (domain.Swap, error) {
	return domain.Swap{}, domain.VenueNotSupportedError(fmt.Sprintf("Swap execution is not supported on %s", v.name))
}

// ReachabilityProber reports whether the endpoint at url answers.
type ReachabilityProber func(ctx context.Context, url string) bool

// isReachable reports whether endpoint is configured and, if a prober is set, answers.
func isReachable(ctx context.Context, prober ReachabilityProber, endpoint string) bool {
	if endpoint == "" {
		return false
	}
	if prober == nil {
		return true
	}
	return prober(ctx, endpoint)
}
