package types

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

var (
	// DefaultSlippagePercent applies when a swap request carries no slippage.
	DefaultSlippagePercent = decimal.NewFromInt(1)

	maxSlippagePercent = decimal.NewFromInt(100)
)

// SwapRequest represents the swap request for the /dex/swap endpoint and the dex_swap tool.
type SwapRequest struct {
	QuoteID         string          `json:"quote_id"`
	WalletSeed      string          `json:"wallet_seed"`
	SlippagePercent decimal.Decimal `json:"slippage_percent"`
}

// UnmarshalHTTPRequest unmarshals the JSON body into SwapRequest.
func (r *SwapRequest) UnmarshalHTTPRequest(c echo.Context) error {
	var body struct {
		QuoteID         string          `json:"quote_id"`
		WalletSeed      string          `json:"wallet_seed"`
		SlippagePercent json.RawMessage `json:"slippage_percent"`
	}
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return ErrArgumentsNotValid
	}

	return r.unmarshal(body.QuoteID, body.WalletSeed, strings.Trim(string(body.SlippagePercent), `"`))
}

// UnmarshalToolArguments unmarshals tool arguments into SwapRequest.
func (r *SwapRequest) UnmarshalToolArguments(args gjson.Result) error {
	return r.unmarshal(args.Get("quote_id").String(), args.Get("wallet_seed").String(), args.Get("slippage_percent").String())
}

func (r *SwapRequest) unmarshal(quoteID, walletSeed, slippagePercent string) error {
	r.QuoteID = strings.TrimSpace(quoteID)
	r.WalletSeed = walletSeed
	r.SlippagePercent = DefaultSlippagePercent

	if slippagePercent == "" || slippagePercent == "null" {
		return nil
	}

	var err error
	r.SlippagePercent, err = decimal.NewFromString(slippagePercent)
	if err != nil {
		return ErrSlippageNotValid
	}

	return nil
}

// Validate validates the SwapRequest.
func (r *SwapRequest) Validate() error {
	if r.QuoteID == "" {
		return ErrQuoteIDNotSpecified
	}

	if r.WalletSeed == "" {
		return ErrWalletSeedNotSpecified
	}

	if r.SlippagePercent.IsNegative() || r.SlippagePercent.GreaterThan(maxSlippagePercent) {
		return ErrSlippageNotValid
	}

	return nil
}

// SwapStatusRequest represents the request for the /dex/swap/:id/status endpoint and the dex_swap_status tool.
type SwapStatusRequest struct {
	SwapID string
}

// UnmarshalHTTPRequest unmarshals the path parameter into SwapStatusRequest.
func (r *SwapStatusRequest) UnmarshalHTTPRequest(c echo.Context) error {
	r.SwapID = strings.TrimSpace(c.Param("id"))
	return nil
}

// UnmarshalToolArguments unmarshals tool arguments into SwapStatusRequest.
func (r *SwapStatusRequest) UnmarshalToolArguments(args gjson.Result) error {
	r.SwapID = strings.TrimSpace(args.Get("swap_id").String())
	return nil
}

// Validate validates the SwapStatusRequest.
func (r *SwapStatusRequest) Validate() error {
	if r.SwapID == "" {
		return ErrSwapIDNotSpecified
	}
	return nil
}
