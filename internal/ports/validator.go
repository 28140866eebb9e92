package ports

import (
	"context"

	"github.com/Gunvolt24/xacc_orders/internal/domain"
)

// OrderValidator — проверка заказа, созданного обработчиком.
type OrderValidator interface {
	Validate(ctx context.Context, order *domain.Order) error
}
