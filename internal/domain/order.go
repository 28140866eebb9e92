package domain

// OrderStatus — метка состояния заказа.
type OrderStatus string

const (
	// OrderStatusSubmitted — заказ принят внешним (edge) API.
	OrderStatusSubmitted OrderStatus = "OrderSubmitted"
	// OrderStatusSubmittedInternal — заказ создан внутренним (domain) API.
	OrderStatusSubmittedInternal OrderStatus = "OrderSubmitted Internal"
)

// OrdersPath — маршрут создания заказа в обоих API.
const OrdersPath = "/orders/"

// Order — заказ, живущий в пределах одного вызова (без хранения, обновления и удаления).
type Order struct {
	ID     string      `json:"id"`
	Status OrderStatus `json:"status"`
}

// NewOrder — конструктор заказа с заданным идентификатором и статусом.
func NewOrder(id string, status OrderStatus) *Order {
	return &Order{ID: id, Status: status}
}

// Relay — ответ внутреннего API, который edge возвращает вызывающему без изменений.
type Relay struct {
	StatusCode int
	Body       []byte
}
