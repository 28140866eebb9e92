package metrics

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	OrdersCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Number of orders created by handler",
		},
		[]string{"handler"}, // edge|domain
	)
	OrdersFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_failed_total",
			Help: "Number of invocations answered with the generic 500",
		},
		[]string{"handler"},
	)
)

var (
	DownstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "downstream_requests_total",
			Help: "Forwarded requests to the internal API by response code",
		},
		[]string{"code"}, // http status или "error" для сетевых ошибок
	)
	DownstreamDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "downstream_request_duration_seconds",
			Help:    "Round trip of the signed call to the internal API",
			Buckets: prometheus.DefBuckets,
		},
	)
	SigningFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "signing_failures_total",
			Help: "Requests that could not be signed",
		},
	)
	BoundaryDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boundary_decisions_total",
			Help: "Decisions of the local authorization boundary",
		},
		[]string{"decision"}, // allow|deny|unauthenticated
	)
)

var registerOnce sync.Once

// MustRegister — регистрирует коллекторы в глобальном реестре; повторный вызов безопасен.
func MustRegister() {
	registerOnce.Do(func() {
		for _, c := range []prometheus.Collector{
			OrdersCreated, OrdersFailed,
			DownstreamRequests, DownstreamDuration,
			SigningFailures, BoundaryDecisions,
		} {
			if err := prometheus.Register(c); err != nil {
				var are prometheus.AlreadyRegisteredError
				if !errors.As(err, &are) {
					panic(err)
				}
			}
		}
	})
}
