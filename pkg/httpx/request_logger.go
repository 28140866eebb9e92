package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/Gunvolt24/xacc_orders/internal/ports"
	"github.com/Gunvolt24/xacc_orders/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
)

// RequestLogger — итоговая строка на каждый вызов API.
// Уровень по статусу: 5xx — error, 4xx (отказ границы, неизвестный маршрут) — warn.
// correlation_id, handler и trace_id логгер добавляет полями из контекста.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		switch route {
		case "/metrics", "/ping":
			return
		case "":
			route = c.Request.URL.Path
		}

		// контекст после цепочки: граница кладёт в него вызывающего
		ctx := c.Request.Context()
		caller, ok := ctxmeta.CallerFromContext(ctx)
		if !ok {
			caller = "-"
		}

		status := c.Writer.Status()
		logf := levelFor(log, status)
		logf(ctx,
			"request method=%s route=%s status=%d caller=%s duration=%s size=%d",
			c.Request.Method, route, status, caller, time.Since(start), c.Writer.Size(),
		)
	}
}

func levelFor(log ports.Logger, status int) func(context.Context, string, ...any) {
	switch {
	case status >= http.StatusInternalServerError:
		return log.Errorf
	case status >= http.StatusBadRequest:
		return log.Warnf
	default:
		return log.Infof
	}
}
