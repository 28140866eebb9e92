package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/Gunvolt24/xacc_orders/internal/domain"
)

func TestOrder_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(domain.NewOrder("abc", domain.OrderStatusSubmittedInternal))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(data); got != `{"id":"abc","status":"OrderSubmitted Internal"}` {
		t.Fatalf("unexpected wire form %s", got)
	}
}
