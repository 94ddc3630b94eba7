package domain

import (
	"fmt"
	"strings"
)

// NormalizeToken upper-cases and trims a token symbol.
func NormalizeToken(token string) string {
	return strings.ToUpper(strings.TrimSpace(token))
}

// ValidateInputTokens returns nil if the two token symbols are valid for a quote, otherwise an error.
// Token in must not equal token out.
func ValidateInputTokens(inputToken, outputToken string) error {
	if inputToken == "" || outputToken == "" {
		return fmt.Errorf("input_token and output_token are required")
	}

	if inputToken == outputToken {
		return fmt.Errorf("two input tokens are equal (%s), must not be the same", inputToken)
	}

	return nil
}
