package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// VenueAdapter translates generic quote and swap requests into the semantics of a single DEX venue.
type VenueAdapter interface {
	// VenueID returns the unique identifier of the venue.
	VenueID() string
	// Name returns the display name of the venue.
	Name() string
	// Chain returns the chain identifier the venue operates on.
	Chain() string
	// FeePercent returns the nominal venue fee as a fraction of the input amount.
	FeePercent() decimal.Decimal
	// Status returns the operating status of the venue.
	Status() VenueStatus

	// GetPairs returns all pairs the venue currently lists.
	// Must be idempotent and side-effect free.
	GetPairs(ctx context.Context) ([]TradingPair, error)
	// GetQuote computes the output amount and venue fee for converting amount of inputToken.
	// Returns VenueNotSupportedError if the venue has no route for the pair
	// or quoting is not wired for the venue.
	GetQuote(ctx context.Context, inputToken, outputToken string, amount decimal.Decimal) (Quote, error)
	// ExecuteSwap submits the swap described by quote.
	ExecuteSwap(ctx context.Context, quote Quote, credential string) (Swap, error)
	// GetSwapStatus reports the status of a previously submitted transaction.
	GetSwapStatus(ctx context.Context, txHash string) (SwapStatus, error)
	// HealthCheck is a best-effort reachability signal.
	HealthCheck(ctx context.Context) bool
}
