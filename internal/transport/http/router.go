package rest

import (
	"net/http"
	"strings"

	"github.com/Gunvolt24/xacc_orders/internal/domain"
	"github.com/Gunvolt24/xacc_orders/internal/ports"
	"github.com/Gunvolt24/xacc_orders/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Имена обработчиков: префикс логов и метка метрик.
const (
	EdgeHandlerName   = "create-order.handler"
	DomainHandlerName = "create-order-internal.handler"
)

// RouterOptions — общие настройки роутеров обоих API.
// OTelServiceName пустой — трейсинг не подключается.
// BasePath — префикс стейджа ("/prod") в режиме http; за API Gateway пустой.
// Guard — локальная граница авторизации перед маршрутами API (только в режиме http).
// CorrelationSource nil — httpx.NewCorrelationID.
type RouterOptions struct {
	OTelServiceName   string
	BasePath          string
	Guard             gin.HandlerFunc
	CorrelationSource httpx.CorrelationSource
}

// NewEdgeRouter — роутер внешнего API.
func NewEdgeRouter(h *EdgeHandler, opts RouterOptions) *gin.Engine {
	r := newEngine(EdgeHandlerName, h.log, opts)
	registerOrders(r, opts, h.createOrder)
	return r
}

// NewDomainRouter — роутер внутреннего API.
func NewDomainRouter(h *DomainHandler, opts RouterOptions) *gin.Engine {
	r := newEngine(DomainHandlerName, h.log, opts)
	registerOrders(r, opts, h.createOrder)
	return r
}

func newEngine(handler string, log ports.Logger, opts RouterOptions) *gin.Engine {
	r := gin.New()
	// редирект на "/orders/" за API Gateway потерял бы стейдж
	r.RedirectTrailingSlash = false
	if opts.OTelServiceName != "" {
		r.Use(otelgin.Middleware(opts.OTelServiceName))
	}
	r.Use(gin.CustomRecovery(func(c *gin.Context, rec any) {
		log.Errorf(c.Request.Context(), "panic recovered: %v", rec)
		writeFailure(c, metricLabel(handler))
	}))
	r.Use(httpx.CorrelationMiddleware(handler, opts.CorrelationSource, func(c *gin.Context, err error) {
		log.Errorf(c.Request.Context(), "generate correlation id: %v", err)
		writeFailure(c, metricLabel(handler))
	}))
	r.Use(httpx.RequestLogger(log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Неизвестный маршрут за границей отклоняется ею же, как это делает API Gateway.
	if opts.Guard != nil {
		r.NoRoute(opts.Guard, func(c *gin.Context) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
		})
	}
	return r
}

// registerOrders — POST на /orders/ и /orders: API Gateway принимает обе формы.
func registerOrders(r *gin.Engine, opts RouterOptions, h gin.HandlerFunc) {
	g := r.Group(opts.BasePath)
	handlers := chain(opts.Guard, h)
	g.POST(domain.OrdersPath, handlers...)
	g.POST(strings.TrimSuffix(domain.OrdersPath, "/"), handlers...)
}

func chain(guard, h gin.HandlerFunc) []gin.HandlerFunc {
	if guard == nil {
		return []gin.HandlerFunc{h}
	}
	return []gin.HandlerFunc{guard, h}
}

func metricLabel(handler string) string {
	if handler == DomainHandlerName {
		return "domain"
	}
	return "edge"
}
