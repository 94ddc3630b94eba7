package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	deliveryhttp "github.com/mangrove-one/MangroveMarkets/delivery/http"
	"github.com/mangrove-one/MangroveMarkets/dex/types"
	"github.com/mangrove-one/MangroveMarkets/domain"
	"github.com/mangrove-one/MangroveMarkets/domain/mvc"
	"github.com/mangrove-one/MangroveMarkets/log"
)

// DexHandler represent the httphandler for the DEX aggregator
type DexHandler struct {
	DUsecase mvc.DexUsecase
	logger   log.Logger
}

const resourcePrefix = "/dex"

func formatDexResource(resource string) string {
	return resourcePrefix + resource
}

// NewDexHandler will initialize the /dex resources endpoint
func NewDexHandler(e *echo.Echo, us mvc.DexUsecase, logger log.Logger) {
	handler := &DexHandler{
		DUsecase: us,
		logger:   logger,
	}

	e.GET(formatDexResource("/venues"), handler.GetVenues)
	e.GET(formatDexResource("/venues/:id/pairs"), handler.GetPairs)
	e.GET(formatDexResource("/quote"), handler.GetQuote)
	e.GET(formatDexResource("/quotes/:id"), handler.GetIssuedQuote)
	e.POST(formatDexResource("/swap"), handler.Swap)
	e.GET(formatDexResource("/swap/:id/status"), handler.GetSwapStatus)
}

// @Summary Supported venues
// @Description returns every venue the aggregator routes to, in routing order.
// @ID get-dex-venues
// @Produce  json
// @Success 200  {object}  types.GetVenuesResponse  "The supported venues"
// @Router /dex/venues [get]
func (h *DexHandler) GetVenues(c echo.Context) error {
	ctx, span := deliveryhttp.Span(c)

	venues, err := h.DUsecase.SupportedVenues(ctx)
	if err != nil {
		deliveryhttp.RecordSpanError(span, err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, types.NewGetVenuesResponse(venues))
}

// @Summary Supported pairs
// @Description returns the trading pairs listed by a venue.
// @ID get-dex-venue-pairs
// @Produce  json
// @Param  id  path  string  true  "Venue identifier, e.g. xpmarket"
// @Success 200  {object}  types.GetPairsResponse  "The pairs listed by the venue"
// @Failure 404  {object}  domain.ErrorResponse  "Unknown venue"
// @Router /dex/venues/{id}/pairs [get]
func (h *DexHandler) GetPairs(c echo.Context) error {
	ctx, span := deliveryhttp.Span(c)

	var req types.GetPairsRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return respondError(c, domain.InvalidRequestError(err))
	}

	pairs, err := h.DUsecase.SupportedPairs(ctx, req.VenueID)
	if err != nil {
		deliveryhttp.RecordSpanError(span, err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, types.NewGetPairsResponse(pairs))
}

// @Summary Best quote
// @Description returns the best quote across all venues, or the quote of a single venue if venue_id is given.
// Platform fee and total cost are always computed by the aggregator.
// @ID get-dex-quote
// @Produce  json
// @Param  input_token  query  string  true  "Symbol of the token to sell, e.g. XRP"
// @Param  output_token  query  string  true  "Symbol of the token to buy, e.g. USDC"
// @Param  amount  query  string  true  "Positive decimal amount of input_token"
// @Param  venue_id  query  string  false  "Venue to quote on. All venues are queried if omitted."
// @Success 200  {object}  domain.Quote  "The best quote"
// @Failure 400  {object}  domain.ErrorResponse  "Invalid request"
// @Failure 404  {object}  domain.ErrorResponse  "Unknown venue"
// @Failure 422  {object}  domain.ErrorResponse  "No venue can quote the pair"
// @Router /dex/quote [get]
func (h *DexHandler) GetQuote(c echo.Context) error {
	ctx, span := deliveryhttp.Span(c)

	var req types.GetQuoteRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return respondError(c, domain.InvalidRequestError(err))
	}

	quote, err := h.DUsecase.GetQuote(ctx, req.InputToken, req.OutputToken, req.Amount, req.VenueID)
	if err != nil {
		deliveryhttp.RecordSpanError(span, err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, quote)
}

// @Summary Issued quote
// @Description returns a quote previously issued by /dex/quote while it has not expired.
// @ID get-dex-issued-quote
// @Produce  json
// @Param  id  path  string  true  "Quote identifier"
// @Success 200  {object}  domain.Quote  "The issued quote"
// @Failure 404  {object}  domain.ErrorResponse  "Unknown or expired quote"
// @Router /dex/quotes/{id} [get]
func (h *DexHandler) GetIssuedQuote(c echo.Context) error {
	ctx, span := deliveryhttp.Span(c)

	quote, err := h.DUsecase.GetIssuedQuote(ctx, c.Param("id"))
	if err != nil {
		deliveryhttp.RecordSpanError(span, err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, quote)
}

// @Summary Swap
// @Description executes a swap against an issued quote. Not available yet.
// @ID post-dex-swap
// @Accept  json
// @Produce  json
// @Param  request  body  types.SwapRequest  true  "Swap request"
// @Success 200  {object}  types.SwapResponse  "The swap id"
// @Failure 501  {object}  domain.ErrorResponse  "Swap execution not yet available"
// @Router /dex/swap [post]
func (h *DexHandler) Swap(c echo.Context) error {
	ctx, span := deliveryhttp.Span(c)

	var req types.SwapRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return respondError(c, domain.InvalidRequestError(err))
	}

	swapID, err := h.DUsecase.Swap(ctx, req.QuoteID, req.WalletSeed)
	if err != nil {
		deliveryhttp.RecordSpanError(span, err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, types.SwapResponse{SwapID: swapID})
}

// @Summary Swap status
// @Description returns the status of a swap. Not available yet.
// @ID get-dex-swap-status
// @Produce  json
// @Param  id  path  string  true  "Swap identifier"
// @Success 200  {object}  types.SwapStatusResponse  "The swap status"
// @Failure 501  {object}  domain.ErrorResponse  "Swap status not yet available"
// @Router /dex/swap/{id}/status [get]
func (h *DexHandler) GetSwapStatus(c echo.Context) error {
	ctx, span := deliveryhttp.Span(c)

	var req types.SwapStatusRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return respondError(c, domain.InvalidRequestError(err))
	}

	status, err := h.DUsecase.SwapStatus(ctx, req.SwapID)
	if err != nil {
		deliveryhttp.RecordSpanError(span, err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, types.SwapStatusResponse{Status: status})
}

// respondError writes the failure payload for err with the matching status code.
func respondError(c echo.Context, err error) error {
	return c.JSON(domain.GetStatusCode(err), domain.NewErrorResponse(err))
}
