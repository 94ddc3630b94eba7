package http

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/trace"
)

// Span returns the request context and the span it carries.
func Span(c echo.Context) (context.Context, trace.Span) {
	ctx := c.Request().Context()
	return ctx, trace.SpanFromContext(ctx)
}

// RecordSpanError records err on span, if any.
// The span is ended by the tracing middleware, not here.
func RecordSpanError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
	}
}
