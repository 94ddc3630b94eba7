package types

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/tidwall/gjson"
)

// GetPairsRequest represents the request for the /dex/venues/:id/pairs endpoint and the dex_supported_pairs tool.
type GetPairsRequest struct {
	VenueID string
}

// UnmarshalHTTPRequest unmarshals the path parameter into GetPairsRequest.
func (r *GetPairsRequest) UnmarshalHTTPRequest(c echo.Context) error {
	r.VenueID = strings.TrimSpace(c.Param("id"))
	return nil
}

// UnmarshalToolArguments unmarshals tool arguments into GetPairsRequest.
func (r *GetPairsRequest) UnmarshalToolArguments(args gjson.Result) error {
	r.VenueID = strings.TrimSpace(args.Get("venue_id").String())
	return nil
}

// Validate validates the GetPairsRequest.
func (r *GetPairsRequest) Validate() error {
	if r.VenueID == "" {
		return ErrVenueIDNotSpecified
	}
	return nil
}
