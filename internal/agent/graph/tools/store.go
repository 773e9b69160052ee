package tools

import (
	"maps"
	"slices"

	"github.com/carecrew/server/internal/agent/model"
)

// KnowledgeStore serves the read-only FAQ and order tables and forwards
// resolver actions to an ActionSink.
type KnowledgeStore struct {
	faqs   []model.FAQEntry
	orders map[string]model.OrderRecord
	sink   ActionSink
}

// NewKnowledgeStore builds a store over the mock tables. A nil sink logs actions.
func NewKnowledgeStore(sink ActionSink) *KnowledgeStore {
	return NewKnowledgeStoreWith(MockFAQs, MockOrders, sink)
}

func NewKnowledgeStoreWith(faqs []model.FAQEntry, orders map[string]model.OrderRecord, sink ActionSink) *KnowledgeStore {
	if sink == nil {
		sink = LogActionSink{}
	}
	return &KnowledgeStore{
		faqs:   slices.Clone(faqs),
		orders: maps.Clone(orders),
		sink:   sink,
	}
}
