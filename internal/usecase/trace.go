package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("pl-predictor/internal/usecase")

// startUsecaseSpan returns the caller's span unchanged when there is no
// active trace, so background work does not start orphan root spans.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, parent
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func gameweekAttr(gameweek int) attribute.KeyValue {
	return attribute.Int("gameweek", gameweek)
}
