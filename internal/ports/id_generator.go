package ports

// IDGenerator — источник уникальных идентификаторов (заказов, корреляции).
type IDGenerator interface {
	NewID() (string, error)
}
