package mocks

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mangrove-one/MangroveMarkets/domain"
	"github.com/mangrove-one/MangroveMarkets/domain/mvc"
)

var _ mvc.DexUsecase = &DexUsecaseMock{}

// DexUsecaseMock is a mock implementation of the DexUsecase interface
type DexUsecaseMock struct {
	SupportedVenuesFunc func(ctx context.Context) ([]domain.Venue, error)
	SupportedPairsFunc  func(ctx context.Context, venueID string) ([]domain.TradingPair, error)
	GetQuoteFunc        func(ctx context.Context, inputToken, outputToken string, amount decimal.Decimal, venueID string) (domain.Quote, error)
	GetIssuedQuoteFunc  func(ctx context.Context, quoteID string) (domain.Quote, error)
	SwapFunc            func(ctx context.Context, quoteID, credential string) (string, error)
	SwapStatusFunc      func(ctx context.Context, swapID string) (domain.SwapStatus, error)
	VenueHealthFunc     func(ctx context.Context) map[string]bool
}

// SupportedVenues implements mvc.DexUsecase.
func (m *DexUsecaseMock) SupportedVenues(ctx context.Context) ([]domain.Venue, error) {
	if m.SupportedVenuesFunc != nil {
		return m.SupportedVenuesFunc(ctx)
	}
	panic("unimplemented")
}

// SupportedPairs implements mvc.DexUsecase.
func (m *DexUsecaseMock) SupportedPairs(ctx context.Context, venueID string) ([]domain.TradingPair, error) {
	if m.SupportedPairsFunc != nil {
		return m.SupportedPairsFunc(ctx, venueID)
	}
	panic("unimplemented")
}

// GetQuote implements mvc.DexUsecase.
func (m *DexUsecaseMock) GetQuote(ctx context.Context, inputToken, outputToken string, amount decimal.Decimal, venueID string) (domain.Quote, error) {
	if m.GetQuoteFunc != nil {
		return m.GetQuoteFunc(ctx, inputToken, outputToken, amount, venueID)
	}
	panic("unimplemented")
}

// GetIssuedQuote implements mvc.DexUsecase.
func (m *DexUsecaseMock) GetIssuedQuote(ctx context.Context, quoteID string) (domain.Quote, error) {
	if m.GetIssuedQuoteFunc != nil {
		return m.GetIssuedQuoteFunc(ctx, quoteID)
	}
	panic("unimplemented")
}

// Swap implements mvc.DexUsecase.
func (m *DexUsecaseMock) Swap(ctx context.Context, quoteID, credential string) (string, error) {
	if m.SwapFunc != nil {
		return m.SwapFunc(ctx, quoteID, credential)
	}
	panic("unimplemented")
}

// SwapStatus implements mvc.DexUsecase.
func (m *DexUsecaseMock) SwapStatus(ctx context.Context, swapID string) (domain.SwapStatus, error) {
	if m.SwapStatusFunc != nil {
		return m.SwapStatusFunc(ctx, swapID)
	}
	panic("unimplemented")
}

// VenueHealth implements mvc.DexUsecase.
func (m *DexUsecaseMock) VenueHealth(ctx context.Context) map[string]bool {
	if m.VenueHealthFunc != nil {
		return m.VenueHealthFunc(ctx)
	}
	panic("unimplemented")
}
