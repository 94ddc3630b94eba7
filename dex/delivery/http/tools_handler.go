package http

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	deliveryhttp "github.com/mangrove-one/MangroveMarkets/delivery/http"
	"github.com/mangrove-one/MangroveMarkets/dex/types"
	"github.com/mangrove-one/MangroveMarkets/domain"
	"github.com/mangrove-one/MangroveMarkets/domain/mvc"
	"github.com/mangrove-one/MangroveMarkets/log"
)

// ToolParameter describes a single argument of a tool.
type ToolParameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Tool describes an invocable tool.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ToolParameter `json:"parameters"`
}

// ToolsResponse is the response of the tool listing.
type ToolsResponse struct {
	Tools []Tool `json:"tools"`
}

// ToolArgumentsUnmarshaler is any request type that can be read from tool arguments.
type ToolArgumentsUnmarshaler interface {
	UnmarshalToolArguments(args gjson.Result) error
}

// toolFunc executes a tool with parsed arguments and returns its success payload.
type toolFunc func(ctx context.Context, args gjson.Result) (any, error)

// ToolsHandler represent the httphandler for tool invocation
type ToolsHandler struct {
	DUsecase mvc.DexUsecase
	logger   log.Logger

	tools map[string]toolFunc
}

const (
	toolsResource = "/tools"

	ToolSupportedVenues = "dex_supported_venues"
	ToolSupportedPairs  = "dex_supported_pairs"
	ToolGetQuote        = "dex_get_quote"
	ToolSwap            = "dex_swap"
	ToolSwapStatus      = "dex_swap_status"
)

// Tools lists the tools in the order they are advertised.
var Tools = []Tool{
	{
		Name:        ToolSupportedVenues,
		Description: "List all supported DEX venues and their status.",
		Parameters:  []ToolParameter{},
	},
	{
		Name:        ToolSupportedPairs,
		Description: "List tradeable pairs for a specific DEX venue.",
		Parameters: []ToolParameter{
			{Name: "venue_id", Type: "string", Description: "Venue identifier", Required: true},
		},
	},
	{
		Name:        ToolGetQuote,
		Description: "Get the best swap quote across all venues.",
		Parameters: []ToolParameter{
			{Name: "input_token", Type: "string", Description: "Symbol of the token to sell", Required: true},
			{Name: "output_token", Type: "string", Description: "Symbol of the token to buy", Required: true},
			{Name: "amount", Type: "number", Description: "Amount of input_token to sell", Required: true},
			{Name: "venue_id", Type: "string", Description: "Venue to quote on; all venues if omitted"},
		},
	},
	{
		Name:        ToolSwap,
		Description: "Execute a swap using a previously obtained quote.",
		Parameters: []ToolParameter{
			{Name: "quote_id", Type: "string", Description: "Identifier of the quote to execute", Required: true},
			{Name: "wallet_seed", Type: "string", Description: "Wallet credential used to sign", Required: true},
			{Name: "slippage_percent", Type: "number", Description: "Maximum accepted slippage, 1.0 by default"},
		},
	},
	{
		Name:        ToolSwapStatus,
		Description: "Check the status of a submitted swap.",
		Parameters: []ToolParameter{
			{Name: "swap_id", Type: "string", Description: "Identifier of the swap", Required: true},
		},
	},
}

// NewToolsHandler will initialize the /tools resources endpoint
func NewToolsHandler(e *echo.Echo, us mvc.DexUsecase, logger log.Logger) {
	handler := newToolsHandler(us, logger)

	e.GET(toolsResource, handler.GetTools)
	e.POST(toolsResource+"/:name", handler.InvokeTool)
}

func newToolsHandler(us mvc.DexUsecase, logger log.Logger) *ToolsHandler {
	handler := &ToolsHandler{
		DUsecase: us,
		logger:   logger,
	}

	handler.tools = map[string]toolFunc{
		ToolSupportedVenues: handler.supportedVenues,
		ToolSupportedPairs:  handler.supportedPairs,
		ToolGetQuote:        handler.getQuote,
		ToolSwap:            handler.swap,
		ToolSwapStatus:      handler.swapStatus,
	}

	return handler
}

// @Summary Tools
// @Description lists the invocable tools and their arguments.
// @ID get-tools
// @Produce  json
// @Success 200  {object}  ToolsResponse  "The tools"
// @Router /tools [get]
func (h *ToolsHandler) GetTools(c echo.Context) error {
	return c.JSON(http.StatusOK, ToolsResponse{Tools: Tools})
}

// @Summary Invoke tool
// @Description invokes a tool with a JSON object of arguments.
// @ID post-tool
// @Accept  json
// @Produce  json
// @Param  name  path  string  true  "Tool name, e.g. dex_get_quote"
// @Success 200  {object}  object  "The tool result"
// @Failure 400  {object}  domain.ErrorResponse  "Unknown tool or invalid arguments"
// @Router /tools/{name} [post]
func (h *ToolsHandler) InvokeTool(c echo.Context) error {
	ctx, span := deliveryhttp.Span(c)

	name := c.Param("name")
	tool, ok := h.tools[name]
	if !ok {
		return respondError(c, domain.NewDexError(domain.CodeInvalidRequest, fmt.Sprintf("Unknown tool '%s'", name), "Use GET /tools to list options"))
	}

	args, err := readToolArguments(c)
	if err != nil {
		return respondError(c, domain.InvalidRequestError(err))
	}

	result, err := tool(ctx, args)
	if err != nil {
		deliveryhttp.RecordSpanError(span, err)
		h.logger.Debug("tool failed", zap.String("tool", name), zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// readToolArguments reads the request body as a JSON object. An empty body means no arguments.
func readToolArguments(c echo.Context) (gjson.Result, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return gjson.Result{}, err
	}

	if len(body) == 0 {
		return gjson.Parse("{}"), nil
	}

	if !gjson.ValidBytes(body) {
		return gjson.Result{}, types.ErrArgumentsNotValid
	}

	args := gjson.ParseBytes(body)
	if !args.IsObject() {
		return gjson.Result{}, types.ErrArgumentsNotValid
	}

	return args, nil
}

// parseToolArguments unmarshals args into req and validates it if it implements deliveryhttp.Validator.
func parseToolArguments(args gjson.Result, req ToolArgumentsUnmarshaler) error {
	if err := req.UnmarshalToolArguments(args); err != nil {
		return domain.InvalidRequestError(err)
	}

	if v, ok := req.(deliveryhttp.Validator); ok {
		if err := v.Validate(); err != nil {
			return domain.InvalidRequestError(err)
		}
	}

	return nil
}

func (h *ToolsHandler) supportedVenues(ctx context.Context, args gjson.Result) (any, error) {
	venues, err := h.DUsecase.SupportedVenues(ctx)
	if err != nil {
		return nil, err
	}
	return types.NewGetVenuesResponse(venues), nil
}

func (h *ToolsHandler) supportedPairs(ctx context.Context, args gjson.Result) (any, error) {
	var req types.GetPairsRequest
	if err := parseToolArguments(args, &req); err != nil {
		return nil, err
	}

	pairs, err := h.DUsecase.SupportedPairs(ctx, req.VenueID)
	if err != nil {
		return nil, err
	}
	return types.NewGetPairsResponse(pairs), nil
}

func (h *ToolsHandler) getQuote(ctx context.Context, args gjson.Result) (any, error) {
	var req types.GetQuoteRequest
	if err := parseToolArguments(args, &req); err != nil {
		return nil, err
	}

	return h.DUsecase.GetQuote(ctx, req.InputToken, req.OutputToken, req.Amount, req.VenueID)
}

func (h *ToolsHandler) swap(ctx context.Context, args gjson.Result) (any, error) {
	var req types.SwapRequest
	if err := parseToolArguments(args, &req); err != nil {
		return nil, err
	}

	swapID, err := h.DUsecase.Swap(ctx, req.QuoteID, req.WalletSeed)
	if err != nil {
		return nil, err
	}
	return types.SwapResponse{SwapID: swapID}, nil
}

func (h *ToolsHandler) swapStatus(ctx context.Context, args gjson.Result) (any, error) {
	var req types.SwapStatusRequest
	if err := parseToolArguments(args, &req); err != nil {
		return nil, err
	}

	status, err := h.DUsecase.SwapStatus(ctx, req.SwapID)
	if err != nil {
		return nil, err
	}
	return types.SwapStatusResponse{Status: status}, nil
}
