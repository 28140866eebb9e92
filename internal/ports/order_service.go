package ports

import (
	"context"

	"github.com/Gunvolt24/xacc_orders/internal/domain"
)

// OrderSubmitter — сценарий edge API: создать заказ и переслать его во внутренний API.
type OrderSubmitter interface {
	Submit(ctx context.Context) (*domain.Relay, error)
}

// OrderCreator — сценарий внутреннего API: создать заказ.
type OrderCreator interface {
	Create(ctx context.Context) (*domain.Order, error)
}
