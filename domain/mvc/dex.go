package mvc

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mangrove-one/MangroveMarkets/domain"
)

// DexUsecase represent the DEX aggregator's usecases exposed to callers.
type DexUsecase interface {
	// SupportedVenues returns one venue per registered adapter, in registration order.
	SupportedVenues(ctx context.Context) ([]domain.Venue, error)
	// SupportedPairs returns the pairs listed by the given venue.
	// Returns VenueNotFoundError if the venue is not registered.
	SupportedPairs(ctx context.Context, venueID string) ([]domain.TradingPair, error)
	// GetQuote returns the best quote for converting amount of inputToken into outputToken.
	// If venueID is empty, all venues are queried and the one with the greatest output wins.
	GetQuote(ctx context.Context, inputToken, outputToken string, amount decimal.Decimal, venueID string) (domain.Quote, error)
	// GetIssuedQuote returns a quote previously issued by GetQuote.
	// Returns QuoteNotFoundError if it is unknown or expired.
	GetIssuedQuote(ctx context.Context, quoteID string) (domain.Quote, error)
	// Swap executes a swap against a previously issued quote and returns the swap id.
	Swap(ctx context.Context, quoteID, credential string) (string, error)
	// SwapStatus returns the status of a swap.
	SwapStatus(ctx context.Context, swapID string) (domain.SwapStatus, error)
	// VenueHealth returns the health of every registered venue keyed by venue id.
	VenueHealth(ctx context.Context) map[string]bool
}

// QuoteRepository represents the contract for a repository of issued quotes.
type QuoteRepository interface {
	// Store remembers the quote until it expires or is evicted.
	Store(quote domain.Quote)
	// Get returns the quote with the given id. Returns false if unknown, evicted or expired.
	Get(quoteID string) (domain.Quote, bool)
	// Len returns the number of quotes currently remembered.
	Len() int
}
