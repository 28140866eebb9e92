//go:build !otel

package ctxmeta_test

import (
	"context"
	"testing"

	"github.com/Gunvolt24/xacc_orders/pkg/ctxmeta"
)

func TestTraceAndSpanIDs_NoOtelBuild_AlwaysEmpty(t *testing.T) {
	ctxs := map[string]context.Context{
		"background":  context.Background(),
		"correlation": ctxmeta.WithCorrelationID(context.Background(), "corr-1"),
	}
	for name, ctx := range ctxs {
		if id, ok := ctxmeta.TraceIDFromContext(ctx); ok || id != "" {
			t.Fatalf("%s: TraceIDFromContext => %q,%v; want \"\", false", name, id, ok)
		}
		if id, ok := ctxmeta.SpanIDFromContext(ctx); ok || id != "" {
			t.Fatalf("%s: SpanIDFromContext => %q,%v; want \"\", false", name, id, ok)
		}
	}
}
