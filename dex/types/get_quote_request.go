package types

import (
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"github.com/mangrove-one/MangroveMarkets/domain"
)

// GetQuoteRequest represents the quote request for the /dex/quote endpoint and the dex_get_quote tool.
type GetQuoteRequest struct {
	InputToken  string
	OutputToken string
	Amount      decimal.Decimal
	// VenueID is optional. When empty, all venues are queried.
	VenueID string
}

// UnmarshalHTTPRequest unmarshals the query parameters into GetQuoteRequest.
func (r *GetQuoteRequest) UnmarshalHTTPRequest(c echo.Context) error {
	return r.unmarshal(c.QueryParam("input_token"), c.QueryParam("output_token"), c.QueryParam("amount"), c.QueryParam("venue_id"))
}

// UnmarshalToolArguments unmarshals tool arguments into GetQuoteRequest.
// The amount may be given either as a JSON number or as a string.
func (r *GetQuoteRequest) UnmarshalToolArguments(args gjson.Result) error {
	return r.unmarshal(args.Get("input_token").String(), args.Get("output_token").String(), args.Get("amount").String(), args.Get("venue_id").String())
}

func (r *GetQuoteRequest) unmarshal(inputToken, outputToken, amount, venueID string) error {
	r.InputToken = domain.NormalizeToken(inputToken)
	r.OutputToken = domain.NormalizeToken(outputToken)
	r.VenueID = venueID

	if amount == "" {
		return ErrAmountNotSpecified
	}

	var err error
	r.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return ErrAmountNotValid
	}

	return nil
}

// Validate validates the GetQuoteRequest.
func (r *GetQuoteRequest) Validate() error {
	if r.InputToken == "" {
		return ErrInputTokenNotSpecified
	}

	if r.OutputToken == "" {
		return ErrOutputTokenNotSpecified
	}

	if err := domain.ValidateInputTokens(r.InputToken, r.OutputToken); err != nil {
		return err
	}

	if !r.Amount.IsPositive() {
		return ErrAmountNotValid
	}

	return nil
}
