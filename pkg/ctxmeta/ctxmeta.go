// Пакет ctxmeta — нейтральный слой для метаданных вызова, которые
// прокидываются через context.Context (correlation_id, trace_id и т.д.).
// HTTP-слой и логгер зависят от этого пакета, но не друг от друга.
package ctxmeta

import "context"

type ctxKey string

const (
	// KeyCorrelationID — ключ идентификатора корреляции одного вызова.
	KeyCorrelationID ctxKey = "correlation_id"
	// KeyHandler — ключ имени обработчика (для префикса логов).
	KeyHandler ctxKey = "handler"
	// KeyCaller — ключ проверенной личности вызывающего (ARN или аккаунт).
	KeyCaller ctxKey = "caller"
)

// WithCorrelationID кладёт correlation_id в контекст (если пусто — ничего не делает).
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return withString(ctx, KeyCorrelationID, correlationID)
}

// CorrelationIDFromContext достаёт correlation_id из контекста.
func CorrelationIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeyCorrelationID)
}

// WithHandler кладёт имя обработчика (например, create-order.handler).
func WithHandler(ctx context.Context, handler string) context.Context {
	return withString(ctx, KeyHandler, handler)
}

// HandlerFromContext достаёт имя обработчика.
func HandlerFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeyHandler)
}

// WithCaller кладёт личность вызывающего, установленную границей авторизации.
func WithCaller(ctx context.Context, caller string) context.Context {
	return withString(ctx, KeyCaller, caller)
}

// CallerFromContext достаёт личность вызывающего.
func CallerFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeyCaller)
}

func withString(ctx context.Context, key ctxKey, v string) context.Context {
	if ctx == nil || v == "" {
		return ctx
	}
	annotateSpan(ctx, key, v)
	return context.WithValue(ctx, key, v)
}

func stringFrom(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
