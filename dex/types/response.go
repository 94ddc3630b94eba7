package types

import "github.com/mangrove-one/MangroveMarkets/domain"

// GetVenuesResponse is the response of the venue listing.
type GetVenuesResponse struct {
	Venues []domain.Venue `json:"venues"`
}

// GetPairsResponse is the response of the pair listing.
type GetPairsResponse struct {
	Pairs []domain.TradingPair `json:"pairs"`
}

// SwapResponse is the response of a swap request.
type SwapResponse struct {
	SwapID string `json:"swap_id"`
}

// SwapStatusResponse is the response of a swap status request.
type SwapStatusResponse struct {
	Status domain.SwapStatus `json:"status"`
}

// NewGetVenuesResponse returns the venue listing response.
// An empty listing is encoded as an empty array instead of null.
func NewGetVenuesResponse(venues []domain.Venue) GetVenuesResponse {
	if venues == nil {
		venues = []domain.Venue{}
	}
	return GetVenuesResponse{Venues: venues}
}

// NewGetPairsResponse returns the pair listing response.
// An empty listing is encoded as an empty array instead of null.
func NewGetPairsResponse(pairs []domain.TradingPair) GetPairsResponse {
	if pairs == nil {
		pairs = []domain.TradingPair{}
	}
	return GetPairsResponse{Pairs: pairs}
}
