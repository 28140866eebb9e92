// Package telemetry — опциональный экспорт трейсов по OTLP/HTTP.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Shutdown — завершение провайдера (сброс буфера спанов).
type Shutdown func(context.Context) error

// Options — параметры трейсинга одного обработчика.
type Options struct {
	Enabled     bool
	ServiceName string
	Handler     string // external-orders | internal-orders
	Endpoint    string
	SampleRatio float64
}

func noopShutdown(context.Context) error { return nil }

// SetupTracing настраивает OTLP/HTTP экспорт и семплинг.
// При Enabled=false ничего не регистрирует и возвращает пустой Shutdown.
func SetupTracing(ctx context.Context, opts Options) (Shutdown, error) {
	if !opts.Enabled {
		return noopShutdown, nil
	}

	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = "localhost:4318"
	}
	ratio := clampRatio(opts.SampleRatio)

	// Экспортёр OTLP/HTTP без TLS (коллектор-сайдкар).
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(opts.ServiceName),
			attribute.String("orders.handler", opts.Handler),
		)),
	)

	// Пропагатор нужен только для входящих запросов: исходящий вызов
	// во внутренний API трейс-заголовков не несёт.
	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return traceProvider.Shutdown, nil
}

func clampRatio(r float64) float64 {
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	default:
		return r
	}
}
