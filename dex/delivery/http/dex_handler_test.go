package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"

	"github.com/mangrove-one/MangroveMarkets/dex/adapters"
	dexdelivery "github.com/mangrove-one/MangroveMarkets/dex/delivery/http"
	dexrepo "github.com/mangrove-one/MangroveMarkets/dex/repository"
	"github.com/mangrove-one/MangroveMarkets/dex/usecase"
	"github.com/mangrove-one/MangroveMarkets/domain"
	"github.com/mangrove-one/MangroveMarkets/domain/mocks"
	"github.com/mangrove-one/MangroveMarkets/domain/mvc"
	"github.com/mangrove-one/MangroveMarkets/log"
)

type DexHandlerSuite struct {
	suite.Suite
}

func TestDexHandlerSuite(t *testing.T) {
	suite.Run(t, new(DexHandlerSuite))
}

var (
	defaultQuote = domain.Quote{
		QuoteID:            "xpmarket-abc",
		VenueID:            "xpmarket",
		InputToken:         "XRP",
		OutputToken:        "USDC",
		InputAmount:        decimal.NewFromInt(100),
		OutputAmount:       decimal.RequireFromString("49.95"),
		ExchangeRate:       decimal.RequireFromString("0.4995"),
		PriceImpactPercent: decimal.Zero,
		VenueFee:           decimal.RequireFromString("0.1"),
		PlatformFee:        decimal.RequireFromString("0.05"),
		TotalCost:          decimal.RequireFromString("100.15"),
	}

	defaultQuoteJSON = `{
		"quote_id": "xpmarket-abc",
		"venue_id": "xpmarket",
		"input_token": "XRP",
		"output_token": "USDC",
		"input_amount": 100,
		"output_amount": 49.95,
		"exchange_rate": 0.4995,
		"price_impact_percent": 0,
		"venue_fee": 0.1,
		"platform_fee": 0.05,
		"total_cost": 100.15,
		"expires_at": null
	}`
)

// newDefaultUsecase returns the usecase over the shipped adapters.
func (s *DexHandlerSuite) newDefaultUsecase() mvc.DexUsecase {
	venueAdapters, err := adapters.NewDefaultAdapters(nil, time.Minute, nil)
	s.Require().NoError(err)

	router, err := usecase.NewRouter(venueAdapters, usecase.DefaultPlatformFeeRate, time.Second, &log.NoOpLogger{})
	s.Require().NoError(err)

	return usecase.NewDexUsecase(router, dexrepo.New(10, time.Minute), &log.NoOpLogger{})
}

// serve registers the handlers on a fresh echo instance and serves a single request.
func serve(us mvc.DexUsecase, method, target, body string) *httptest.ResponseRecorder {
	e := echo.New()
	dexdelivery.NewDexHandler(e, us, &log.NoOpLogger{})
	dexdelivery.NewToolsHandler(e, us, &log.NoOpLogger{})

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func (s *DexHandlerSuite) TestGetQuote() {
	testcases := []struct {
		name               string
		target             string
		usecase            mvc.DexUsecase
		expectedStatusCode int
		expectedResponse   string
	}{
		{
			name:   "valid request",
			target: "/dex/quote?input_token=xrp&output_token=USDC&amount=100",
			usecase: &mocks.DexUsecaseMock{
				GetQuoteFunc: func(ctx context.Context, inputToken, outputToken string, amount decimal.Decimal, venueID string) (domain.Quote, error) {
					s.Require().Equal("XRP", inputToken)
					s.Require().Equal("USDC", outputToken)
					s.Require().Empty(venueID)
					return defaultQuote, nil
				},
			},
			expectedStatusCode: http.StatusOK,
			expectedResponse:   defaultQuoteJSON,
		},
		{
			name:               "missing amount",
			target:             "/dex/quote?input_token=XRP&output_token=USDC",
			usecase:            &mocks.DexUsecaseMock{},
			expectedStatusCode: http.StatusBadRequest,
			expectedResponse:   `{"error":true,"code":"INVALID_REQUEST","message":"amount is required","suggestion":"Check the request parameters"}`,
		},
		{
			name:               "negative amount",
			target:             "/dex/quote?input_token=XRP&output_token=USDC&amount=-1",
			usecase:            &mocks.DexUsecaseMock{},
			expectedStatusCode: http.StatusBadRequest,
			expectedResponse:   `{"error":true,"code":"INVALID_REQUEST","message":"amount is invalid - must be a positive decimal number","suggestion":"Check the request parameters"}`,
		},
		{
			name:   "unknown venue",
			target: "/dex/quote?input_token=XRP&output_token=USDC&amount=1&venue_id=nope",
			usecase: &mocks.DexUsecaseMock{
				GetQuoteFunc: func(ctx context.Context, inputToken, outputToken string, amount decimal.Decimal, venueID string) (domain.Quote, error) {
					return domain.Quote{}, domain.VenueNotFoundError(venueID)
				},
			},
			expectedStatusCode: http.StatusNotFound,
			expectedResponse:   `{"error":true,"code":"VENUE_NOT_FOUND","message":"Unknown venue_id 'nope'","suggestion":"Use dex_supported_venues to list options"}`,
		},
		{
			name:   "no quotes",
			target: "/dex/quote?input_token=DOGE&output_token=SHIB&amount=1",
			usecase: &mocks.DexUsecaseMock{
				GetQuoteFunc: func(ctx context.Context, inputToken, outputToken string, amount decimal.Decimal, venueID string) (domain.Quote, error) {
					return domain.Quote{}, domain.NoQuotesAvailableError(inputToken, outputToken)
				},
			},
			expectedStatusCode: http.StatusUnprocessableEntity,
			expectedResponse:   `{"error":true,"code":"NO_QUOTES_AVAILABLE","message":"No quotes available for DOGE->SHIB","suggestion":"Try a different pair or specify a venue"}`,
		},
	}

	for _, tc := range testcases {
		s.Run(tc.name, func() {
			rec := serve(tc.usecase, http.MethodGet, tc.target, "")

			s.Require().Equal(tc.expectedStatusCode, rec.Code)
			s.Require().JSONEq(tc.expectedResponse, rec.Body.String())
		})
	}
}

func (s *DexHandlerSuite) TestGetVenuesAndPairs() {
	us := s.newDefaultUsecase()

	rec := serve(us, http.MethodGet, "/dex/venues", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	venues := gjson.Get(rec.Body.String(), "venues")
	s.Require().Len(venues.Array(), 3)
	s.Require().Equal("xpmarket", venues.Get("0.id").String())
	s.Require().Equal("xrpl-testnet", venues.Get("0.chain").String())
	s.Require().Equal("active", venues.Get("0.status").String())
	s.Require().Equal(int64(2), venues.Get("0.supported_pairs_count").Int())
	s.Require().Equal(0.001, venues.Get("0.fee_percent").Float())
	s.Require().Equal("uniswap-v3", venues.Get("1.id").String())
	s.Require().Equal("jupiter", venues.Get("2.id").String())

	rec = serve(us, http.MethodGet, "/dex/venues/uniswap-v3/pairs", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	pairs := gjson.Get(rec.Body.String(), "pairs")
	s.Require().Len(pairs.Array(), 3)
	s.Require().Equal("ETH", pairs.Get("0.base_token").String())
	s.Require().Equal("USDC", pairs.Get("0.quote_token").String())

	rec = serve(us, http.MethodGet, "/dex/venues/nope/pairs", "")
	s.Require().Equal(http.StatusNotFound, rec.Code)
	s.Require().Equal("VENUE_NOT_FOUND", gjson.Get(rec.Body.String(), "code").String())
}

func (s *DexHandlerSuite) TestGetVenues_Empty() {
	us := &mocks.DexUsecaseMock{
		SupportedVenuesFunc: func(ctx context.Context) ([]domain.Venue, error) {
			return nil, nil
		},
	}

	rec := serve(us, http.MethodGet, "/dex/venues", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().JSONEq(`{"venues":[]}`, rec.Body.String())
}

// A quote issued by /dex/quote can be fetched by id.
func (s *DexHandlerSuite) TestQuoteLifecycle() {
	us := s.newDefaultUsecase()

	rec := serve(us, http.MethodGet, "/dex/quote?input_token=XRP&output_token=USDC&amount=100", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	quote := gjson.Parse(rec.Body.String())
	s.Require().Equal("xpmarket", quote.Get("venue_id").String())
	s.Require().Equal(0.05, quote.Get("platform_fee").Float())
	s.Require().Equal(100.15, quote.Get("total_cost").Float())
	s.Require().True(quote.Get("expires_at").Exists())

	quoteID := quote.Get("quote_id").String()
	rec = serve(us, http.MethodGet, "/dex/quotes/"+quoteID, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().Equal(quoteID, gjson.Get(rec.Body.String(), "quote_id").String())

	rec = serve(us, http.MethodGet, "/dex/quotes/xpmarket-unknown", "")
	s.Require().Equal(http.StatusNotFound, rec.Code)
	s.Require().Equal("QUOTE_NOT_FOUND", gjson.Get(rec.Body.String(), "code").String())
}

func (s *DexHandlerSuite) TestSwap() {
	us := s.newDefaultUsecase()

	rec := serve(us, http.MethodPost, "/dex/swap", `{"quote_id":"xpmarket-abc","wallet_seed":"sEd"}`)
	s.Require().Equal(http.StatusNotImplemented, rec.Code)
	s.Require().JSONEq(`{"error":true,"code":"NOT_IMPLEMENTED","message":"Swap execution not yet available","suggestion":"Coming soon"}`, rec.Body.String())

	rec = serve(us, http.MethodPost, "/dex/swap", `{"wallet_seed":"sEd"}`)
	s.Require().Equal(http.StatusBadRequest, rec.Code)
	s.Require().Equal("INVALID_REQUEST", gjson.Get(rec.Body.String(), "code").String())

	rec = serve(us, http.MethodGet, "/dex/swap/swap-1/status", "")
	s.Require().Equal(http.StatusNotImplemented, rec.Code)
	s.Require().JSONEq(`{"error":true,"code":"NOT_IMPLEMENTED","message":"Swap status not yet available","suggestion":"Coming soon"}`, rec.Body.String())
}

func (s *DexHandlerSuite) TestSwap_Success() {
	us := &mocks.DexUsecaseMock{
		SwapFunc: func(ctx context.Context, quoteID, credential string) (string, error) {
			s.Require().Equal("xpmarket-abc", quoteID)
			s.Require().Equal("sEd", credential)
			return "swap-1", nil
		},
		SwapStatusFunc: func(ctx context.Context, swapID string) (domain.SwapStatus, error) {
			return domain.SwapStatusSubmitted, nil
		},
	}

	rec := serve(us, http.MethodPost, "/dex/swap", `{"quote_id":"xpmarket-abc","wallet_seed":"sEd","slippage_percent":0.5}`)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().JSONEq(`{"swap_id":"swap-1"}`, rec.Body.String())

	rec = serve(us, http.MethodGet, "/dex/swap/swap-1/status", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().JSONEq(`{"status":"submitted"}`, rec.Body.String())
}
