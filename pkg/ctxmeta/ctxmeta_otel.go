//go:build otel && !gopls

package ctxmeta

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Сборка с тегом `otel`: идентификаторы трейса берутся из активного спана,
// а метаданные вызова (handler, correlation_id, caller) дублируются в его атрибуты.

func spanContext(ctx context.Context) (trace.SpanContext, bool) {
	sc := trace.SpanContextFromContext(ctx)
	return sc, sc.IsValid()
}

func TraceIDFromContext(ctx context.Context) (string, bool) {
	if sc, ok := spanContext(ctx); ok {
		return sc.TraceID().String(), true
	}
	return "", false
}

func SpanIDFromContext(ctx context.Context) (string, bool) {
	if sc, ok := spanContext(ctx); ok {
		return sc.SpanID().String(), true
	}
	return "", false
}

// annotateSpan — атрибут orders.<key> на записываемом спане запроса.
func annotateSpan(ctx context.Context, key ctxKey, v string) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(attribute.String("orders."+string(key), v))
}
