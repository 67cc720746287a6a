package httpapi

import (
	"context"

	"github.com/riskibarqy/pl-predictor/internal/infrastructure/session"
)

type contextKey string

const (
	principalContextKey contextKey = "session_principal"
	requestIDContextKey contextKey = "request_id"
)

func withPrincipal(ctx context.Context, p session.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (session.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(session.Principal)
	return p, ok
}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, id)
}

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey).(string)
	return id
}
