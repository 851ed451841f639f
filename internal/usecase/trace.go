package usecase

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/spread-pickem/internal/domain/game"
)

var usecaseTracer = otel.Tracer("spread-pickem/internal/usecase")
var usecaseNoopSpan = trace.SpanFromContext(context.Background())

// startUsecaseSpan only creates child spans; background work without an
// active request span is not traced.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if strings.TrimSpace(name) == "" {
		return ctx, usecaseNoopSpan
	}
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, usecaseNoopSpan
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func scopeAttr(scope game.Scope) attribute.KeyValue {
	return attribute.String("pickem.scope", scope.Key())
}

func gameAttr(gameID string) attribute.KeyValue {
	return attribute.String("pickem.game_id", gameID)
}
