package logger

import (
	"context"

	"github.com/Gunvolt24/xacc_orders/pkg/ctxmeta"
	"go.uber.org/zap"
)

// ZapLogger — реализация ports.Logger поверх zap.
// Метаданные вызова (correlation_id, handler, trace/span) берутся из ctx и пишутся полями.
type ZapLogger struct {
	base   *zap.Logger
	sugar  *zap.SugaredLogger
	isProd bool
}

// NewZapLogger — prod: JSON в stderr (забирает лог-поток платформы), иначе — dev-консоль.
func NewZapLogger(isProd bool) (*ZapLogger, func() error, error) {
	var (
		logger *zap.Logger
		err    error
	)

	if isProd {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, nil, err
	}

	loggerWrap := FromZap(logger)
	loggerWrap.isProd = isProd

	cleanup := func() error { return loggerWrap.base.Sync() }
	return loggerWrap, cleanup, nil
}

// FromZap — обёртка над готовым *zap.Logger (удобно для тестов с zaptest/observer).
func FromZap(l *zap.Logger) *ZapLogger {
	return &ZapLogger{base: l, sugar: l.Sugar()}
}

func (z *ZapLogger) Infof(ctx context.Context, format string, args ...any) {
	z.with(ctx).Infof(format, args...)
}
func (z *ZapLogger) Warnf(ctx context.Context, format string, args ...any) {
	z.with(ctx).Warnf(format, args...)
}
func (z *ZapLogger) Errorf(ctx context.Context, format string, args ...any) {
	z.with(ctx).Errorf(format, args...)
}

func (z *ZapLogger) Base() *zap.Logger           { return z.base }
func (z *ZapLogger) Sugared() *zap.SugaredLogger { return z.sugar }

// with — добавляет к записи поля из контекста; без метаданных возвращает базовый логгер.
func (z *ZapLogger) with(ctx context.Context) *zap.SugaredLogger {
	if ctx == nil {
		return z.sugar
	}
	var fields []any
	if id, ok := ctxmeta.CorrelationIDFromContext(ctx); ok {
		fields = append(fields, "correlation_id", id)
	}
	if h, ok := ctxmeta.HandlerFromContext(ctx); ok {
		fields = append(fields, "handler", h)
	}
	if c, ok := ctxmeta.CallerFromContext(ctx); ok {
		fields = append(fields, "caller_identity", c)
	}
	if tr, ok := ctxmeta.TraceIDFromContext(ctx); ok {
		fields = append(fields, "trace_id", tr)
	}
	if sp, ok := ctxmeta.SpanIDFromContext(ctx); ok {
		fields = append(fields, "span_id", sp)
	}
	if len(fields) == 0 {
		return z.sugar
	}
	return z.sugar.With(fields...)
}
