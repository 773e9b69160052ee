package tools

import (
	"fmt"
	"strings"

	"github.com/carecrew/server/internal/agent/model"
)

// MockOrders is the order table keyed by order number.
var MockOrders = map[string]model.OrderRecord{
	"12345": {
		Number:   "12345",
		Status:   "Shipped",
		Tracking: "TRK123456789",
		ETA:      "Jan 31, 2026",
	},
	"67890": {
		Number: "67890",
		Status: "Processing",
		ETA:    "Feb 2, 2026",
	},
}

// NoOrderNumber is handed to the order stage when the message carries no order number.
const NoOrderNumber = "No order number was found in the message. Ask the customer for their 5-digit order number."

// OrderNotFound formats the sentinel for an unknown order number.
func OrderNotFound(orderNumber string) string {
	return fmt.Sprintf("Order #%s not found in system. Please verify the order number or suggest customer contact support.", orderNumber)
}

// FindOrder is an exact-key lookup.
func (s *KnowledgeStore) FindOrder(orderNumber string) (model.OrderRecord, bool) {
	o, ok := s.orders[strings.TrimSpace(orderNumber)]
	return o, ok
}

// LookupOrder renders the order status line, or the not-found sentinel.
func (s *KnowledgeStore) LookupOrder(orderNumber string) string {
	o, ok := s.FindOrder(orderNumber)
	if !ok {
		return OrderNotFound(orderNumber)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Order #%s - Status: %s, ETA: %s", o.Number, o.Status, o.ETA)
	if o.HasTracking() {
		fmt.Fprintf(&b, ", Tracking: %s", o.Tracking)
	}
	return b.String()
}
