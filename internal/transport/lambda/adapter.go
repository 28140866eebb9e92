// Package lambda — запуск gin-роутера за API Gateway REST (proxy integration).
package lambda

import (
	"context"
	"net/http"

	"github.com/Gunvolt24/xacc_orders/pkg/ctxmeta"
	"github.com/aws/aws-lambda-go/events"
	"github.com/awslabs/aws-lambda-go-api-proxy/core"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
)

// Handler — сигнатура Lambda-обработчика API Gateway proxy-событий.
type Handler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// NewHandler — событие API Gateway → http.Request → h.
// Личность вызывающего, проверенная платформой, попадает в контекст запроса.
func NewHandler(h http.Handler) Handler {
	return httpadapter.New(withGatewayCaller(h)).ProxyWithContext
}

func withGatewayCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if caller := CallerFromGateway(r.Context()); caller != "" {
			r = r.WithContext(ctxmeta.WithCaller(r.Context(), caller))
		}
		next.ServeHTTP(w, r)
	})
}

// CallerFromGateway — ARN (или аккаунт) вызывающего из requestContext.identity.
func CallerFromGateway(ctx context.Context) string {
	gw, ok := core.GetAPIGatewayContextFromContext(ctx)
	if !ok {
		return ""
	}
	switch {
	case gw.Identity.UserArn != "":
		return gw.Identity.UserArn
	case gw.Identity.Caller != "":
		return gw.Identity.Caller
	default:
		return gw.Identity.AccountID
	}
}
