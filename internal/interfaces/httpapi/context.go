package httpapi

import (
	"context"

	"github.com/riskibarqy/spread-pickem/internal/domain/participant"
)

type contextKey string

const principalContextKey contextKey = "auth_principal"

func withPrincipal(ctx context.Context, p participant.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (participant.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(participant.Principal)
	return p, ok
}
