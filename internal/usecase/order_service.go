package usecase

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/xacc_orders/internal/domain"
	"github.com/Gunvolt24/xacc_orders/internal/ports"
	"github.com/Gunvolt24/xacc_orders/pkg/metrics"
)

var (
	_ ports.OrderSubmitter = (*EdgeOrderService)(nil)
	_ ports.OrderCreator   = (*DomainOrderService)(nil)
)

// EdgeOrderService — сценарий внешнего API (без знаний о транспорте):
// создать заказ и переслать его во внутренний API.
type EdgeOrderService struct {
	ids       ports.IDGenerator    // источник идентификаторов
	validator ports.OrderValidator // проверка заказа перед отправкой
	forwarder ports.OrderForwarder // подписанная пересылка во внутренний API
	log       ports.Logger
}

// NewEdgeOrderService — DI-конструктор.
func NewEdgeOrderService(
	ids ports.IDGenerator,
	validator ports.OrderValidator,
	forwarder ports.OrderForwarder,
	log ports.Logger,
) *EdgeOrderService {
	return &EdgeOrderService{ids: ids, validator: validator, forwarder: forwarder, log: log}
}

// Submit — новый заказ со статусом OrderSubmitted уходит во внутренний API;
// при успехе возвращается его ответ без изменений.
func (s *EdgeOrderService) Submit(ctx context.Context) (*domain.Relay, error) {
	id, err := s.ids.NewID()
	if err != nil {
		s.log.Errorf(ctx, "order id generation failed err=%v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrOrderID, err)
	}
	order := domain.NewOrder(id, domain.OrderStatusSubmitted)
	if err := s.validator.Validate(ctx, order); err != nil {
		s.log.Errorf(ctx, "order validation failed order_id=%s err=%v", order.ID, err)
		return nil, err
	}

	relay, err := s.forwarder.Forward(ctx, order)
	if err != nil {
		s.log.Errorf(ctx, "forward failed order_id=%s err=%v", order.ID, err)
		return nil, err
	}

	metrics.OrdersCreated.WithLabelValues("edge").Inc()
	s.log.Infof(ctx, "order forwarded order_id=%s downstream_status=%d", order.ID, relay.StatusCode)
	return relay, nil
}

// DomainOrderService — сценарий внутреннего API: заказ создаётся здесь,
// тело входящего запроса не используется.
type DomainOrderService struct {
	ids       ports.IDGenerator
	validator ports.OrderValidator
	log       ports.Logger
}

// NewDomainOrderService — DI-конструктор.
func NewDomainOrderService(ids ports.IDGenerator, validator ports.OrderValidator, log ports.Logger) *DomainOrderService {
	return &DomainOrderService{ids: ids, validator: validator, log: log}
}

// Create — заказ со статусом "OrderSubmitted Internal" и новым идентификатором.
func (s *DomainOrderService) Create(ctx context.Context) (*domain.Order, error) {
	id, err := s.ids.NewID()
	if err != nil {
		s.log.Errorf(ctx, "order id generation failed err=%v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrOrderID, err)
	}

	order := domain.NewOrder(id, domain.OrderStatusSubmittedInternal)
	if err := s.validator.Validate(ctx, order); err != nil {
		s.log.Errorf(ctx, "order validation failed order_id=%s err=%v", order.ID, err)
		return nil, err
	}

	metrics.OrdersCreated.WithLabelValues("domain").Inc()
	s.log.Infof(ctx, "order created order_id=%s", order.ID)
	return order, nil
}
