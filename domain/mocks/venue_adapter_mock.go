package mocks

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mangrove-one/MangroveMarkets/domain"
)

var _ domain.VenueAdapter = &VenueAdapterMock{}

// VenueAdapterMock is a mock implementation of the VenueAdapter interface.
// Identity getters return the corresponding fields. Operations without a configured func
// return zero values, except GetQuote which fails with VenueNotSupportedError.
type VenueAdapterMock struct {
	ID          string
	VenueName   string
	VenueChain  string
	Fee         decimal.Decimal
	VenueStatus domain.VenueStatus
	Pairs       []domain.TradingPair
	Healthy     bool

	GetPairsFunc      func(ctx context.Context) ([]domain.TradingPair, error)
	GetQuoteFunc      func(ctx context.Context, inputToken, outputToken string, amount decimal.Decimal) (domain.Quote, error)
	ExecuteSwapFunc   func(ctx context.Context, quote domain.Quote, credential string) (domain.Swap, error)
	GetSwapStatusFunc func(ctx context.Context, txHash string) (domain.SwapStatus, error)
	HealthCheckFunc   func(ctx context.Context) bool
}

// VenueID implements domain.VenueAdapter.
func (m *VenueAdapterMock) VenueID() string {
	return m.ID
}

// Name implements domain.VenueAdapter.
func (m *VenueAdapterMock) Name() string {
	if m.VenueName == "" {
		return m.ID
	}
	return m.VenueName
}

// Chain implements domain.VenueAdapter.
func (m *VenueAdapterMock) Chain() string {
	return m.VenueChain
}

// FeePercent implements domain.VenueAdapter.
func (m *VenueAdapterMock) FeePercent() decimal.Decimal {
	return m.Fee
}

// Status implements domain.VenueAdapter.
func (m *VenueAdapterMock) Status() domain.VenueStatus {
	if m.VenueStatus == "" {
		return domain.VenueStatusActive
	}
	return m.VenueStatus
}

// GetPairs implements domain.VenueAdapter.
func (m *VenueAdapterMock) GetPairs(ctx context.Context) ([]domain.TradingPair, error) {
	if m.GetPairsFunc != nil {
		return m.GetPairsFunc(ctx)
	}
	return m.Pairs, nil
}

// GetQuote implements domain.VenueAdapter.
func (m *VenueAdapterMock) GetQuote(ctx context.Context, inputToken, outputToken string, amount decimal.Decimal) (domain.Quote, error) {
	if m.GetQuoteFunc != nil {
		return m.GetQuoteFunc(ctx, inputToken, outputToken, amount)
	}
	return domain.Quote{}, domain.VenueNotSupportedError("")
}

// ExecuteSwap implements domain.VenueAdapter.
func (m *VenueAdapterMock) ExecuteSwap(ctx context.Context, quote domain.Quote, credential string) (domain.Swap, error) {
	if m.ExecuteSwapFunc != nil {
		return m.ExecuteSwapFunc(ctx, quote, credential)
	}
	return domain.Swap{}, domain.VenueNotSupportedError("")
}

// GetSwapStatus implements domain.VenueAdapter.
func (m *VenueAdapterMock) GetSwapStatus(ctx context.Context, txHash string) (domain.SwapStatus, error) {
	if m.GetSwapStatusFunc != nil {
		return m.GetSwapStatusFunc(ctx, txHash)
	}
	return domain.SwapStatusPending, nil
}

// HealthCheck implements domain.VenueAdapter.
func (m *VenueAdapterMock) HealthCheck(ctx context.Context) bool {
	if m.HealthCheckFunc != nil {
		return m.HealthCheckFunc(ctx)
	}
	return m.Healthy
}
