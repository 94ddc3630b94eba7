package adapters

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mangrove-one/MangroveMarkets/domain"
)

// TokenPair is an ordered base/quote pair of token symbols.
type TokenPair struct {
	Base  string
	Quote string
}

func (p TokenPair) String() string {
	return p.Base + pairSeparator + p.Quote
}

const pairSeparator = "/"

// RateTable holds the number of quote tokens received per base token for a set of pairs.
type RateTable map[TokenPair]decimal.Decimal

// ParseRateTable parses a "BASE/QUOTE" -> rate map, as found in config.
// Errors if a key is malformed or a rate is not strictly positive.
func ParseRateTable(rates map[string]string) (RateTable, error) {
	table := make(RateTable, len(rates))
	for pairStr, rateStr := range rates {
		tokens := strings.Split(pairStr, pairSeparator)
		if len(tokens) != 2 || tokens[0] == "" || tokens[1] == "" {
			return nil, fmt.Errorf("invalid rate pair (%s), expected BASE/QUOTE", pairStr)
		}

		rate, err := decimal.NewFromString(rateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid rate (%s) for pair (%s): %w", rateStr, pairStr, err)
		}

		if !rate.IsPositive() {
			return nil, fmt.Errorf("rate (%s) for pair (%s) must be positive", rateStr, pairStr)
		}

		table[TokenPair{Base: domain.NormalizeToken(tokens[0]), Quote: domain.NormalizeToken(tokens[1])}] = rate
	}
	return table, nil
}

// Rate returns the rate for converting inputToken into outputToken.
// The direct pair takes precedence; otherwise the reverse pair is inverted.
// Returns false if neither direction is priced.
func (t RateTable) Rate(inputToken, outputToken string) (decimal.Decimal, bool) {
	if rate, ok := t[TokenPair{Base: inputToken, Quote: outputToken}]; ok {
		return rate, true
	}

	if reverseRate, ok := t[TokenPair{Base: outputToken, Quote: inputToken}]; ok && !reverseRate.IsZero() {
		return decimal.NewFromInt(1).Div(reverseRate), true
	}

	return decimal.Decimal{}, false
}

// sortedPairs returns the pairs of the table ordered by their "BASE/QUOTE" form.
func sortedPairs(t RateTable) []TokenPair {
	pairs := make([]TokenPair, 0, len(t))
	for pair := range t {
		pairs = append(pairs, pair)
	}
	slices.SortFunc(pairs, func(a, b TokenPair) int {
		return strings.Compare(a.String(), b.String())
	})
	return pairs
}

// PricedAmounts is the outcome of pricing an input amount against a rate.
type PricedAmounts struct {
	VenueFee     decimal.Decimal
	OutputAmount decimal.Decimal
	ExchangeRate decimal.Decimal
}

// PriceWithInputFee applies an input-side venue fee and converts the remainder at rate:
//
//	venue_fee     = amount * feePercent
//	output_amount = (amount - venue_fee) * rate
//	exchange_rate = output_amount / amount, or 0 if amount is 0
func PriceWithInputFee(amount, feePercent, rate decimal.Decimal) PricedAmounts {
	venueFee := amount.Mul(feePercent)
	outputAmount := amount.Sub(venueFee).Mul(rate)

	exchangeRate := decimal.Zero
	if !amount.IsZero() {
		exchangeRate = outputAmount.Div(amount)
	}

	return PricedAmounts{
		VenueFee:     venueFee,
		OutputAmount: outputAmount,
		ExchangeRate: exchangeRate,
	}
}
