package types

import "errors"

var (
	ErrInputTokenNotSpecified  = errors.New("input_token is required")
	ErrOutputTokenNotSpecified = errors.New("output_token is required")
	ErrAmountNotSpecified      = errors.New("amount is required")
	ErrAmountNotValid          = errors.New("amount is invalid - must be a positive decimal number")
	ErrQuoteIDNotSpecified     = errors.New("quote_id is required")
	ErrWalletSeedNotSpecified  = errors.New("wallet_seed is required")
	ErrSlippageNotValid        = errors.New("slippage_percent is invalid - must be a decimal number within [0, 100]")
	ErrSwapIDNotSpecified      = errors.New("swap_id is required")
	ErrVenueIDNotSpecified     = errors.New("venue_id is required")
	ErrArgumentsNotValid       = errors.New("arguments must be a JSON object")
)
