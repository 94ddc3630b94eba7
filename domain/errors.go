package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes communicated to callers.
const (
	CodeVenueNotSupported = "VENUE_NOT_SUPPORTED"
	CodeVenueNotFound     = "VENUE_NOT_FOUND"
	CodeNoQuotesAvailable = "NO_QUOTES_AVAILABLE"
	CodeNotImplemented    = "NOT_IMPLEMENTED"
	CodeVenueUnavailable  = "VENUE_UNAVAILABLE"
	CodeQuoteNotFound     = "QUOTE_NOT_FOUND"
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeRateLimited       = "RATE_LIMITED"
	CodeInternalError     = "INTERNAL_ERROR"
)

// DexError is the unit of failure communicated to callers.
// The triple (Code, Message, Suggestion) is the complete error contract.
type DexError struct {
	Code       string
	Message    string
	Suggestion string

	// cause is the underlying non-domain error, if any. Never exposed to callers.
	cause error
}

// NewDexError returns a domain error with the given code, message and suggestion.
func NewDexError(code, message, suggestion string) *DexError {
	return &DexError{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

func (e *DexError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped cause.
func (e *DexError) Unwrap() error {
	return e.cause
}

// Is matches any DexError carrying the same code.
func (e *DexError) Is(target error) bool {
	t, ok := target.(*DexError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// VenueNotSupportedError is returned when a venue exists but cannot serve the operation.
// Retryable by trying another venue.
func VenueNotSupportedError(message string) *DexError {
	if message == "" {
		message = "Venue does not yet support this operation"
	}
	return NewDexError(CodeVenueNotSupported, message, "Try another venue or check back later")
}

// VenueNotFoundError is returned when a caller supplied an unknown venue id.
func VenueNotFoundError(venueID string) *DexError {
	return NewDexError(CodeVenueNotFound, fmt.Sprintf("Unknown venue_id '%s'", venueID), "Use dex_supported_venues to list options")
}

// NoQuotesAvailableError is returned when no venue could price the pair.
func NoQuotesAvailableError(inputToken, outputToken string) *DexError {
	return NewDexError(CodeNoQuotesAvailable, fmt.Sprintf("No quotes available for %s->%s", inputToken, outputToken), "Try a different pair or specify a venue")
}

// NotImplementedError marks a feature boundary.
func NotImplementedError(message string) *DexError {
	return NewDexError(CodeNotImplemented, message, "Coming soon")
}

// VenueUnavailableError wraps a non-domain failure raised while talking to a venue.
func VenueUnavailableError(venueID string, cause error) *DexError {
	return &DexError{
		Code:       CodeVenueUnavailable,
		Message:    fmt.Sprintf("Venue '%s' is unavailable", venueID),
		Suggestion: "Retry later or try another venue",
		cause:      cause,
	}
}

// QuoteNotFoundError is returned when a quote id is unknown or has expired.
func QuoteNotFoundError(quoteID string) *DexError {
	return NewDexError(CodeQuoteNotFound, fmt.Sprintf("Unknown or expired quote_id '%s'", quoteID), "Request a new quote with dex_get_quote")
}

// InvalidRequestError is returned when caller input fails validation.
func InvalidRequestError(err error) *DexError {
	return &DexError{
		Code:       CodeInvalidRequest,
		Message:    err.Error(),
		Suggestion: "Check the request parameters",
		cause:      err,
	}
}

// RateLimitedError is returned when a client exceeds its request rate.
func RateLimitedError() *DexError {
	return NewDexError(CodeRateLimited, "Too many requests", "Slow down and retry shortly")
}

// AsDexError converts err into a domain error. Non-domain errors become INTERNAL_ERROR.
func AsDexError(err error) *DexError {
	if err == nil {
		return nil
	}

	var dexErr *DexError
	if errors.As(err, &dexErr) {
		return dexErr
	}

	return &DexError{
		Code:       CodeInternalError,
		Message:    "Internal error",
		Suggestion: "Retry later",
		cause:      err,
	}
}

// ErrorResponse is the caller-facing failure payload.
type ErrorResponse struct {
	Error      bool   `json:"error"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion"`
}

// NewErrorResponse converts err into the failure payload.
func NewErrorResponse(err error) ErrorResponse {
	dexErr := AsDexError(err)
	return ErrorResponse{
		Error:      true,
		Code:       dexErr.Code,
		Message:    dexErr.Message,
		Suggestion: dexErr.Suggestion,
	}
}

// GetStatusCode returns the HTTP status code for err.
func GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch AsDexError(err).Code {
	case CodeVenueNotFound, CodeQuoteNotFound:
		return http.StatusNotFound
	case CodeInvalidRequest:
		return http.StatusBadRequest
	case CodeVenueNotSupported, CodeNoQuotesAvailable:
		return http.StatusUnprocessableEntity
	case CodeNotImplemented:
		return http.StatusNotImplemented
	case CodeVenueUnavailable:
		return http.StatusServiceUnavailable
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
