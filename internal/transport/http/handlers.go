package rest

import (
	"encoding/json"
	"net/http"

	"github.com/Gunvolt24/xacc_orders/internal/forwarder"
	"github.com/Gunvolt24/xacc_orders/internal/ports"
	"github.com/Gunvolt24/xacc_orders/pkg/ctxmeta"
	"github.com/Gunvolt24/xacc_orders/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// failureBody — единственное, что вызывающий видит при любой ошибке.
const failureBody = "An error occurred"

// EdgeHandler — HTTP-слой внешнего API.
type EdgeHandler struct {
	service ports.OrderSubmitter
	log     ports.Logger
}

func NewEdgeHandler(service ports.OrderSubmitter, log ports.Logger) *EdgeHandler {
	return &EdgeHandler{service: service, log: log}
}

// createOrder — ответ внутреннего API отдаётся как есть (код и тело).
func (h *EdgeHandler) createOrder(c *gin.Context) {
	relay, err := h.service.Submit(c.Request.Context())
	if err != nil {
		h.log.Errorf(c.Request.Context(), "create order failed err=%v", err)
		writeFailure(c, "edge")
		return
	}
	c.Data(relay.StatusCode, "application/json", relay.Body)
}

// DomainHandler — HTTP-слой внутреннего API.
type DomainHandler struct {
	service ports.OrderCreator
	log     ports.Logger
}

func NewDomainHandler(service ports.OrderCreator, log ports.Logger) *DomainHandler {
	return &DomainHandler{service: service, log: log}
}

// createOrder — тело запроса не читается; заказ создаётся заново.
func (h *DomainHandler) createOrder(c *gin.Context) {
	ctx := c.Request.Context()

	caller, ok := ctxmeta.CallerFromContext(ctx)
	if !ok {
		caller = "unknown"
	}
	h.log.Infof(ctx, "inbound order request caller=%s consumer=%s",
		caller, c.GetHeader(forwarder.HeaderConsumerID))

	order, err := h.service.Create(ctx)
	if err != nil {
		h.log.Errorf(ctx, "create order failed err=%v", err)
		writeFailure(c, "domain")
		return
	}

	body, err := json.Marshal(order)
	if err != nil {
		h.log.Errorf(ctx, "encode order failed order_id=%s err=%v", order.ID, err)
		writeFailure(c, "domain")
		return
	}
	c.Data(http.StatusCreated, "application/json", body)
}

// writeFailure — все ошибки приводятся к 500 с фиксированным текстом.
func writeFailure(c *gin.Context, handler string) {
	metrics.OrdersFailed.WithLabelValues(handler).Inc()
	c.Data(http.StatusInternalServerError, "text/plain", []byte(failureBody))
	c.Abort()
}
