package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	dexdelivery "github.com/mangrove-one/MangroveMarkets/dex/delivery/http"
	"github.com/mangrove-one/MangroveMarkets/domain"
	"github.com/mangrove-one/MangroveMarkets/domain/mocks"
	"github.com/mangrove-one/MangroveMarkets/log"
)

func (s *DexHandlerSuite) TestGetTools() {
	rec := serve(&mocks.DexUsecaseMock{}, http.MethodGet, "/tools", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	names := []string{}
	for _, tool := range gjson.Get(rec.Body.String(), "tools").Array() {
		names = append(names, tool.Get("name").String())
	}

	s.Require().Equal([]string{"dex_supported_venues", "dex_supported_pairs", "dex_get_quote", "dex_swap", "dex_swap_status"}, names)
	s.Require().Equal("venue_id", gjson.Get(rec.Body.String(), "tools.2.parameters.3.name").String())
	s.Require().False(gjson.Get(rec.Body.String(), "tools.2.parameters.3.required").Bool())
}

func (s *DexHandlerSuite) TestInvokeTool() {
	us := s.newDefaultUsecase()

	testcases := []struct {
		name               string
		tool               string
		args               string
		expectedStatusCode int
		validate           func(body gjson.Result)
	}{
		{
			name:               "supported venues without body",
			tool:               "dex_supported_venues",
			expectedStatusCode: http.StatusOK,
			validate: func(body gjson.Result) {
				s.Require().Len(body.Get("venues").Array(), 3)
			},
		},
		{
			name:               "supported pairs",
			tool:               "dex_supported_pairs",
			args:               `{"venue_id":"jupiter"}`,
			expectedStatusCode: http.StatusOK,
			validate: func(body gjson.Result) {
				s.Require().Equal("SOL", body.Get("pairs.0.base_token").String())
			},
		},
		{
			name:               "supported pairs without venue",
			tool:               "dex_supported_pairs",
			args:               `{}`,
			expectedStatusCode: http.StatusBadRequest,
			validate: func(body gjson.Result) {
				s.Require().Equal("INVALID_REQUEST", body.Get("code").String())
				s.Require().Equal("venue_id is required", body.Get("message").String())
			},
		},
		{
			name:               "get quote",
			tool:               "dex_get_quote",
			args:               `{"input_token":"XRP","output_token":"USDC","amount":100}`,
			expectedStatusCode: http.StatusOK,
			validate: func(body gjson.Result) {
				s.Require().Equal("xpmarket", body.Get("venue_id").String())
				s.Require().Equal(0.05, body.Get("platform_fee").Float())
			},
		},
		{
			name:               "get quote on unsupported venue",
			tool:               "dex_get_quote",
			args:               `{"input_token":"ETH","output_token":"USDC","amount":1,"venue_id":"uniswap-v3"}`,
			expectedStatusCode: http.StatusUnprocessableEntity,
			validate: func(body gjson.Result) {
				s.Require().True(body.Get("error").Bool())
				s.Require().Equal("VENUE_NOT_SUPPORTED", body.Get("code").String())
			},
		},
		{
			name:               "swap",
			tool:               "dex_swap",
			args:               `{"quote_id":"xpmarket-abc","wallet_seed":"sEd"}`,
			expectedStatusCode: http.StatusNotImplemented,
			validate: func(body gjson.Result) {
				s.Require().Equal("NOT_IMPLEMENTED", body.Get("code").String())
				s.Require().Equal("Coming soon", body.Get("suggestion").String())
			},
		},
		{
			name:               "swap status",
			tool:               "dex_swap_status",
			args:               `{"swap_id":"swap-1"}`,
			expectedStatusCode: http.StatusNotImplemented,
			validate: func(body gjson.Result) {
				s.Require().Equal("Swap status not yet available", body.Get("message").String())
			},
		},
		{
			name:               "unknown tool",
			tool:               "dex_withdraw",
			args:               `{}`,
			expectedStatusCode: http.StatusBadRequest,
			validate: func(body gjson.Result) {
				s.Require().Equal("Unknown tool 'dex_withdraw'", body.Get("message").String())
			},
		},
		{
			name:               "malformed arguments",
			tool:               "dex_get_quote",
			args:               `{"input_token":`,
			expectedStatusCode: http.StatusBadRequest,
			validate: func(body gjson.Result) {
				s.Require().Equal("arguments must be a JSON object", body.Get("message").String())
			},
		},
		{
			name:               "arguments not an object",
			tool:               "dex_get_quote",
			args:               `["XRP"]`,
			expectedStatusCode: http.StatusBadRequest,
			validate: func(body gjson.Result) {
				s.Require().Equal("INVALID_REQUEST", body.Get("code").String())
			},
		},
	}

	for _, tc := range testcases {
		s.Run(tc.name, func() {
			rec := serve(us, http.MethodPost, "/tools/"+tc.tool, tc.args)

			s.Require().Equal(tc.expectedStatusCode, rec.Code, rec.Body.String())
			tc.validate(gjson.Parse(rec.Body.String()))
		})
	}
}

// Calls the handler directly, as the transport would after routing.
func (s *DexHandlerSuite) TestInvokeTool_Direct() {
	handler := dexdelivery.NewToolsHandlerWithTools(&mocks.DexUsecaseMock{
		GetQuoteFunc: func(ctx context.Context, inputToken, outputToken string, amount decimal.Decimal, venueID string) (domain.Quote, error) {
			s.Require().True(decimal.RequireFromString("0.25").Equal(amount))
			s.Require().Equal("xpmarket", venueID)
			return defaultQuote, nil
		},
	}, &log.NoOpLogger{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"input_token":"xrp","output_token":"usdc","amount":"0.25","venue_id":"xpmarket"}`))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("name")
	c.SetParamValues("dex_get_quote")

	err := handler.InvokeTool(c)
	s.Require().NoError(err)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().JSONEq(defaultQuoteJSON, rec.Body.String())
}
