package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/spread-pickem/internal/domain/game"
)

var apiTracer = otel.Tracer("spread-pickem/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

// startSpan opens a handler span under the request span started by
// RequestTracing. Untraced requests such as /healthz get a no-op span.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() || !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}

func scopeAttrs(scope game.Scope) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int("pickem.season", scope.Season),
		attribute.String("pickem.week_type", string(scope.WeekType)),
		attribute.Int("pickem.week", scope.Week),
	}
}
