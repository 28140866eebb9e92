package lambda_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/Gunvolt24/xacc_orders/internal/transport/lambda"
	"github.com/Gunvolt24/xacc_orders/pkg/ctxmeta"
	"github.com/aws/aws-lambda-go/events"
)

func TestNewHandler_ProxiesEventAndCaller(t *testing.T) {
	var gotPath, gotCaller, gotConsumer string

	h := lambda.NewHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCaller, _ = ctxmeta.CallerFromContext(r.Context())
		gotConsumer = r.Header.Get("x-consumer-id")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"1","status":"OrderSubmitted Internal"}`))
	}))

	resp, err := h(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/orders/",
		Headers:    map[string]string{"x-consumer-id": "website-bff"},
		RequestContext: events.APIGatewayProxyRequestContext{
			Stage: "prod",
			Identity: events.APIGatewayRequestIdentity{
				AccountID: "111111111111",
				UserArn:   "arn:aws:sts::111111111111:assumed-role/edge/fn",
			},
		},
	})
	if err != nil {
		t.Fatalf("proxy: %v", err)
	}
	if resp.StatusCode != http.StatusCreated || resp.Body != `{"id":"1","status":"OrderSubmitted Internal"}` {
		t.Fatalf("unexpected response %d %q", resp.StatusCode, resp.Body)
	}
	if gotPath != "/orders/" {
		t.Fatalf("path: %q", gotPath)
	}
	if gotCaller != "arn:aws:sts::111111111111:assumed-role/edge/fn" {
		t.Fatalf("caller: %q", gotCaller)
	}
	if gotConsumer != "website-bff" {
		t.Fatalf("x-consumer-id: %q", gotConsumer)
	}
}

func TestCallerFromGateway_NoContext(t *testing.T) {
	if got := lambda.CallerFromGateway(context.Background()); got != "" {
		t.Fatalf("want empty caller, got %q", got)
	}
}
