package http

import (
	"github.com/mangrove-one/MangroveMarkets/domain/mvc"
	"github.com/mangrove-one/MangroveMarkets/log"
)

func NewToolsHandlerWithTools(us mvc.DexUsecase, logger log.Logger) *ToolsHandler {
	return newToolsHandler(us, logger)
}
