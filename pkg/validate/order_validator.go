package validate

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/xacc_orders/internal/domain"
	"github.com/Gunvolt24/xacc_orders/internal/ports"
	"github.com/google/uuid"
)

// Проверка, что OrderValidator удовлетворяет интерфейсу OrderValidator.
var _ ports.OrderValidator = (*OrderValidator)(nil)

// ErrInvalidOrder — базовая (sentinel error) ошибка валидации.
var ErrInvalidOrder = errors.New("order validation failed")

// OrderValidator — проверка заказа перед тем, как он покинет обработчик.
type OrderValidator struct{}

// NewOrderValidator — конструктор OrderValidator.
// Возвращает ErrInvalidOrder (с обёрнутой причиной) при любой проблеме.
func NewOrderValidator() *OrderValidator { return &OrderValidator{} }

// Validate — id в каноническом виде UUID, статус из известного набора.
func (v *OrderValidator) Validate(_ context.Context, order *domain.Order) error {
	if order == nil {
		return fmt.Errorf("%w: заказ не может быть nil", ErrInvalidOrder)
	}
	if err := validateID(order.ID); err != nil {
		return err
	}
	switch order.Status {
	case domain.OrderStatusSubmitted, domain.OrderStatusSubmittedInternal:
		return nil
	default:
		return fmt.Errorf("%w: неизвестный статус %q", ErrInvalidOrder, order.Status)
	}
}

func validateID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: id обязателен", ErrInvalidOrder)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: id не UUID: %v", ErrInvalidOrder, err)
	}
	// uuid.Parse принимает и urn:uuid:/{...}; в теле заказа нужен канонический вид
	if parsed.String() != id {
		return fmt.Errorf("%w: id не в каноническом виде", ErrInvalidOrder)
	}
	return nil
}
