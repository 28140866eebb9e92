package idgen

import (
	"fmt"

	"github.com/Gunvolt24/xacc_orders/internal/ports"
	"github.com/google/uuid"
)

// Проверка, что UUIDGenerator удовлетворяет интерфейсу IDGenerator.
var _ ports.IDGenerator = (*UUIDGenerator)(nil)

// UUIDGenerator — 128-битные идентификаторы: v4 (случайный) или v7 (упорядоченный по времени).
type UUIDGenerator struct {
	newUUID func() (uuid.UUID, error)
}

// New — конструктор по версии из конфигурации ("v4" | "v7").
func New(version string) (*UUIDGenerator, error) {
	switch version {
	case "", "v4":
		return &UUIDGenerator{newUUID: uuid.NewRandom}, nil
	case "v7":
		return &UUIDGenerator{newUUID: uuid.NewV7}, nil
	default:
		return nil, fmt.Errorf("unsupported uuid version %q", version)
	}
}

// NewID — новый идентификатор в каноническом виде (xxxxxxxx-xxxx-...).
// Ошибка источника случайности возвращается, а не превращается в панику.
func (g *UUIDGenerator) NewID() (string, error) {
	id, err := g.newUUID()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
