//go:build !otel || gopls

package ctxmeta

import "context"

// Без тега `otel` трейса нет: идентификаторы пустые, атрибуты спана не пишутся.

func TraceIDFromContext(context.Context) (string, bool) { return "", false }

func SpanIDFromContext(context.Context) (string, bool) { return "", false }

func annotateSpan(context.Context, ctxKey, string) {}
