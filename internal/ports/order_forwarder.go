package ports

import (
	"context"

	"github.com/Gunvolt24/xacc_orders/internal/domain"
)

// OrderForwarder — пересылка заказа во внутренний API.
// Ровно одна попытка; ответ возвращается только для 2xx с JSON-телом.
type OrderForwarder interface {
	Forward(ctx context.Context, order *domain.Order) (*domain.Relay, error)
}
