package adapters_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/mangrove-one/MangroveMarkets/dex/adapters"
	"github.com/mangrove-one/MangroveMarkets/domain"
)

type AdaptersTestSuite struct {
	suite.Suite

	ctx context.Context
}

func TestAdaptersTestSuite(t *testing.T) {
	suite.Run(t, new(AdaptersTestSuite))
}

const defaultQuoteTTL = 30 * time.Second

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)

	alwaysReachable = func(ctx context.Context, url string) bool { return true }
	neverReachable  = func(ctx context.Context, url string) bool { return false }
)

func (s *AdaptersTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *AdaptersTestSuite) newXPMarket(config domain.XPMarketConfig) *adapters.XPMarketAdapter {
	adapter, err := adapters.NewXPMarketAdapter(config, defaultQuoteTTL, nil)
	s.Require().NoError(err)
	return adapter
}

func (s *AdaptersTestSuite) TestDefaultAdapters_Order() {
	venueAdapters, err := adapters.NewDefaultAdapters(nil, defaultQuoteTTL, nil)
	s.Require().NoError(err)

	ids := make([]string, 0, len(venueAdapters))
	for _, adapter := range venueAdapters {
		ids = append(ids, adapter.VenueID())
	}

	s.Require().Equal([]string{adapters.XPMarketVenueID, adapters.UniswapVenueID, adapters.JupiterVenueID}, ids)
}

func (s *AdaptersTestSuite) TestDefaultAdapters_InvalidRates() {
	_, err := adapters.NewDefaultAdapters(&domain.VenuesConfig{
		XPMarket: &domain.XPMarketConfig{Rates: map[string]string{"XRP": "1"}},
	}, defaultQuoteTTL, nil)
	s.Require().Error(err)
}

func (s *AdaptersTestSuite) TestIdentity() {
	tests := []struct {
		adapter       domain.VenueAdapter
		expectedID    string
		expectedChain string
		expectedFee   string
		expectedPairs int
	}{
		{s.newXPMarket(domain.XPMarketConfig{}), "xpmarket", "xrpl-testnet", "0.001", 2},
		{adapters.NewUniswapAdapter(domain.UniswapConfig{}, nil), "uniswap-v3", "ethereum-sepolia", "0.003", 3},
		{adapters.NewJupiterAdapter(domain.JupiterConfig{}, nil), "jupiter", "solana-devnet", "0.002", 3},
	}

	for _, tt := range tests {
		s.Run(tt.expectedID, func() {
			s.Require().Equal(tt.expectedID, tt.adapter.VenueID())
			s.Require().Equal(tt.expectedChain, tt.adapter.Chain())
			s.Require().True(decimal.RequireFromString(tt.expectedFee).Equal(tt.adapter.FeePercent()))
			s.Require().Equal(domain.VenueStatusActive, tt.adapter.Status())

			pairs, err := tt.adapter.GetPairs(s.ctx)
			s.Require().NoError(err)
			s.Require().Len(pairs, tt.expectedPairs)
			for _, pair := range pairs {
				s.Require().Equal(tt.expectedID, pair.VenueID)
				s.Require().True(pair.IsActive)
			}

			// Idempotent and not aliased.
			pairs[0].BaseToken = "MUTATED"
			again, err := tt.adapter.GetPairs(s.ctx)
			s.Require().NoError(err)
			s.Require().NotEqual("MUTATED", again[0].BaseToken)
		})
	}
}

func (s *AdaptersTestSuite) TestXPMarket_Pairs() {
	pairs, err := s.newXPMarket(domain.XPMarketConfig{}).GetPairs(s.ctx)
	s.Require().NoError(err)

	s.Require().Equal("XRP", pairs[0].BaseToken)
	s.Require().Equal("USD", pairs[0].QuoteToken)
	s.Require().Equal("XRP", pairs[1].BaseToken)
	s.Require().Equal("USDC", pairs[1].QuoteToken)

	for _, pair := range pairs {
		s.Require().NotNil(pair.MinAmount)
		s.Require().NotNil(pair.MaxAmount)
		s.Require().True(one.Equal(*pair.MinAmount))
		s.Require().True(decimal.NewFromInt(1_000_000).Equal(*pair.MaxAmount))
	}
}

func (s *AdaptersTestSuite) TestXPMarket_GetQuote() {
	adapter := s.newXPMarket(domain.XPMarketConfig{})

	quote, err := adapter.GetQuote(s.ctx, "XRP", "USDC", hundred)
	s.Require().NoError(err)

	s.Require().True(strings.HasPrefix(quote.QuoteID, "xpmarket-"))
	s.Require().Len(strings.TrimPrefix(quote.QuoteID, "xpmarket-"), 32)
	s.Require().Equal(adapters.XPMarketVenueID, quote.VenueID)
	s.Require().Equal("XRP", quote.InputToken)
	s.Require().Equal("USDC", quote.OutputToken)
	s.Require().True(hundred.Equal(quote.InputAmount))
	s.Require().True(decimal.RequireFromString("0.1").Equal(quote.VenueFee))
	s.Require().True(decimal.RequireFromString("49.95").Equal(quote.OutputAmount))
	s.Require().True(quote.OutputAmount.Div(hundred).Equal(quote.ExchangeRate))
	s.Require().True(quote.PriceImpactPercent.IsZero())
	s.Require().True(quote.PlatformFee.IsZero())

	s.Require().NotNil(quote.ExpiresAt)
	s.Require().WithinDuration(time.Now().Add(defaultQuoteTTL), *quote.ExpiresAt, 5*time.Second)

	// Quote ids are unique per request.
	other, err := adapter.GetQuote(s.ctx, "XRP", "USDC", hundred)
	s.Require().NoError(err)
	s.Require().NotEqual(quote.QuoteID, other.QuoteID)
}

func (s *AdaptersTestSuite) TestXPMarket_GetQuote_Reverse() {
	adapter := s.newXPMarket(domain.XPMarketConfig{})

	quote, err := adapter.GetQuote(s.ctx, "USDC", "XRP", hundred)
	s.Require().NoError(err)

	// (100 - 0.1) * (1 / 0.5)
	s.Require().True(decimal.RequireFromString("199.8").Equal(quote.OutputAmount), quote.OutputAmount.String())
}

func (s *AdaptersTestSuite) TestXPMarket_GetQuote_PositiveOutputs() {
	adapter := s.newXPMarket(domain.XPMarketConfig{})

	for _, amount := range []string{"0.000001", "1", "12.5", "1000000"} {
		for _, route := range [][2]string{{"XRP", "USDC"}, {"USDC", "XRP"}, {"XRP", "USD"}, {"USD", "XRP"}} {
			amount := decimal.RequireFromString(amount)
			quote, err := adapter.GetQuote(s.ctx, route[0], route[1], amount)
			s.Require().NoError(err)
			s.Require().True(quote.OutputAmount.IsPositive())
			s.Require().True(quote.OutputAmount.Div(amount).Equal(quote.ExchangeRate))
		}
	}
}

func (s *AdaptersTestSuite) TestXPMarket_GetQuote_NoExpiryWithoutTTL() {
	adapter, err := adapters.NewXPMarketAdapter(domain.XPMarketConfig{}, 0, nil)
	s.Require().NoError(err)

	quote, err := adapter.GetQuote(s.ctx, "XRP", "USDC", hundred)
	s.Require().NoError(err)
	s.Require().Nil(quote.ExpiresAt)
}

func (s *AdaptersTestSuite) TestXPMarket_GetQuote_ConfiguredRates() {
	adapter := s.newXPMarket(domain.XPMarketConfig{
		Rates: map[string]string{"XRP/EUR": "0.25"},
	})

	quote, err := adapter.GetQuote(s.ctx, "XRP", "EUR", hundred)
	s.Require().NoError(err)
	s.Require().True(decimal.RequireFromString("24.975").Equal(quote.OutputAmount))

	// Defaults are replaced, not merged.
	_, err = adapter.GetQuote(s.ctx, "XRP", "USDC", hundred)
	s.Require().ErrorIs(err, domain.VenueNotSupportedError(""))
}

func (s *AdaptersTestSuite) TestGetQuote_NotSupported() {
	tests := []struct {
		name    string
		adapter domain.VenueAdapter
		input   string
		output  string
	}{
		{"xpmarket unknown pair", s.newXPMarket(domain.XPMarketConfig{}), "XRP", "SOL"},
		{"uniswap listed pair", adapters.NewUniswapAdapter(domain.UniswapConfig{}, nil), "ETH", "USDC"},
		{"jupiter listed pair", adapters.NewJupiterAdapter(domain.JupiterConfig{}, nil), "SOL", "USDC"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := tt.adapter.GetQuote(s.ctx, tt.input, tt.output, hundred)
			s.Require().ErrorIs(err, domain.VenueNotSupportedError(""))
		})
	}
}

func (s *AdaptersTestSuite) TestExecuteSwap_NotSupported() {
	venueAdapters, err := adapters.NewDefaultAdapters(nil, defaultQuoteTTL, nil)
	s.Require().NoError(err)

	for _, adapter := range venueAdapters {
		_, err := adapter.ExecuteSwap(s.ctx, domain.Quote{}, "seed")
		s.Require().ErrorIs(err, domain.VenueNotSupportedError(""))

		status, err := adapter.GetSwapStatus(s.ctx, "tx")
		s.Require().NoError(err)
		s.Require().Equal(domain.SwapStatusPending, status)
	}
}

func (s *AdaptersTestSuite) TestHealthCheck() {
	tests := []struct {
		name     string
		adapter  domain.VenueAdapter
		expected bool
	}{
		{"xpmarket configured", s.newXPMarket(domain.XPMarketConfig{RPCURL: adapters.DefaultXRPLRPCURL}), true},
		{"xpmarket unconfigured", s.newXPMarket(domain.XPMarketConfig{}), false},
		{"uniswap unconfigured", adapters.NewUniswapAdapter(domain.UniswapConfig{}, neverReachable), true},
		{"uniswap configured", adapters.NewUniswapAdapter(domain.UniswapConfig{RPCURL: "http://localhost:8545"}, nil), true},
		{"uniswap unreachable", adapters.NewUniswapAdapter(domain.UniswapConfig{RPCURL: "http://localhost:8545"}, neverReachable), false},
		{"jupiter configured", adapters.NewJupiterAdapter(domain.JupiterConfig{APIURL: adapters.DefaultJupiterAPIURL}, alwaysReachable), true},
		{"jupiter unreachable", adapters.NewJupiterAdapter(domain.JupiterConfig{APIURL: adapters.DefaultJupiterAPIURL}, neverReachable), false},
		{"jupiter unconfigured", adapters.NewJupiterAdapter(domain.JupiterConfig{}, alwaysReachable), false},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Require().Equal(tt.expected, tt.adapter.HealthCheck(s.ctx))
		})
	}
}
