package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are exposed to callers as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// VenueStatus is the operating status of a venue.
type VenueStatus string

const (
	VenueStatusActive      VenueStatus = "active"
	VenueStatusMaintenance VenueStatus = "maintenance"
	VenueStatusDeprecated  VenueStatus = "deprecated"
)

// SwapStatus is the lifecycle status of a swap.
type SwapStatus string

const (
	SwapStatusPending   SwapStatus = "pending"
	SwapStatusSubmitted SwapStatus = "submitted"
	SwapStatusConfirmed SwapStatus = "confirmed"
	SwapStatusFailed    SwapStatus = "failed"
)

// IsTerminal returns true if no further transition is possible from s.
func (s SwapStatus) IsTerminal() bool {
	return s == SwapStatusConfirmed || s == SwapStatusFailed
}

// CanTransitionTo reports whether a swap in status s may move to next.
// Transitions move forward only (pending -> submitted -> confirmed). Failed is reachable
// from any non-terminal status.
func (s SwapStatus) CanTransitionTo(next SwapStatus) bool {
	if s.IsTerminal() {
		return false
	}

	switch next {
	case SwapStatusFailed:
		return true
	case SwapStatusSubmitted:
		return s == SwapStatusPending
	case SwapStatusConfirmed:
		return s == SwapStatusSubmitted
	default:
		return false
	}
}

// Venue is a read-only projection of a registered venue adapter.
type Venue struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Chain               string          `json:"chain"`
	Status              VenueStatus     `json:"status"`
	SupportedPairsCount int             `json:"supported_pairs_count"`
	FeePercent          decimal.Decimal `json:"fee_percent"`
}

// TradingPair is a tradeable base/quote pair on a venue.
type TradingPair struct {
	VenueID    string           `json:"venue_id"`
	BaseToken  string           `json:"base_token"`
	QuoteToken string           `json:"quote_token"`
	MinAmount  *decimal.Decimal `json:"min_amount"`
	MaxAmount  *decimal.Decimal `json:"max_amount"`
	IsActive   bool             `json:"is_active"`
}

// Quote is a non-binding price proposal for converting InputAmount of InputToken
// into OutputToken on a single venue. Fees are denominated in the input token.
type Quote struct {
	QuoteID            string          `json:"quote_id"`
	VenueID            string          `json:"venue_id"`
	InputToken         string          `json:"input_token"`
	OutputToken        string          `json:"output_token"`
	InputAmount        decimal.Decimal `json:"input_amount"`
	OutputAmount       decimal.Decimal `json:"output_amount"`
	ExchangeRate       decimal.Decimal `json:"exchange_rate"`
	PriceImpactPercent decimal.Decimal `json:"price_impact_percent"`
	VenueFee           decimal.Decimal `json:"venue_fee"`
	PlatformFee        decimal.Decimal `json:"platform_fee"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	ExpiresAt          *time.Time      `json:"expires_at"`
}

// IsExpired returns true if the quote carries an expiry that is not after now.
func (q Quote) IsExpired(now time.Time) bool {
	return q.ExpiresAt != nil && !q.ExpiresAt.After(now)
}

// Swap is the record of a swap executed against a quote.
type Swap struct {
	SwapID       string          `json:"swap_id"`
	QuoteID      string          `json:"quote_id"`
	VenueID      string          `json:"venue_id"`
	InputToken   string          `json:"input_token"`
	OutputToken  string          `json:"output_token"`
	InputAmount  decimal.Decimal `json:"input_amount"`
	OutputAmount decimal.Decimal `json:"output_amount"`
	Status       SwapStatus      `json:"status"`
	TxHash       *string         `json:"tx_hash"`
	ErrorMessage *string         `json:"error_message"`
	CreatedAt    time.Time       `json:"created_at"`
	ConfirmedAt  *time.Time      `json:"confirmed_at"`
}
