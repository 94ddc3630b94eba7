package domain

import (
	"context"
	"net/url"

	"github.com/labstack/echo/v4"
)

// RequestPathKeyType is a custom type for request path key.
type RequestPathKeyType string

const (
	// RequestPathCtxKey is the key used to store the request path in the request context
	RequestPathCtxKey RequestPathKeyType = "request_path"
)

// ParseURLPath returns the matched route template (e.g. /dex/quotes/:id) if the
// request was routed, otherwise the path of the request URI.
func ParseURLPath(c echo.Context) (string, error) {
	if routePath := c.Path(); routePath != "" {
		return routePath, nil
	}

	parsedURL, err := url.Parse(c.Request().RequestURI)
	if err != nil {
		return "", err
	}

	return parsedURL.Path, nil
}

// GetURLPathFromContext returns the request path from the context.
// Returns "unknown" if the path was never set.
func GetURLPathFromContext(ctx context.Context) string {
	requestPath, ok := ctx.Value(RequestPathCtxKey).(string)
	if !ok || len(requestPath) == 0 {
		return "unknown"
	}
	return requestPath
}
