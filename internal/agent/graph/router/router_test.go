package router

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carecrew/server/internal/agent/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    model.Category
	}{
		{"order number", "Where is 12345?", model.CategoryOrder},
		{"order word", "I have a question about my ORDER", model.CategoryOrder},
		{"order beats faq keyword", "What is the return policy for order 67890?", model.CategoryOrder},
		{"number beats shipping", "shipping status 54321 please", model.CategoryOrder},
		{"ordering substring", "Reordering is confusing", model.CategoryOrder},
		{"shipping", "How long does Shipping take?", model.CategoryFAQ},
		{"return", "can I return this", model.CategoryFAQ},
		{"payment", "PAYMENT methods?", model.CategoryFAQ},
		{"track", "track my parcel", model.CategoryFAQ},
		{"policy", "your policy on gifts", model.CategoryFAQ},
		{"refund", "I want a refund", model.CategoryFAQ},
		{"six digits is not an order number", "my code is 123456", model.CategoryFAQ},
		{"four digits", "room 1234", model.CategoryFAQ},
		{"default", "hello there", model.CategoryFAQ},
		{"empty", "", model.CategoryFAQ},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.message))
		})
	}
}

func TestClassifyOrderSignalAlwaysWins(t *testing.T) {
	for _, kw := range faqKeywords {
		for _, signal := range []string{"12345", "order", "Order", "ORDER"} {
			msg := strings.ToUpper(kw) + " question " + signal
			assert.Equal(t, model.CategoryOrder, Classify(msg), msg)
		}
	}
}

func TestExtractOrderNumber(t *testing.T) {
	n, ok := ExtractOrderNumber("Status of order 67890 and 12345?")
	assert.True(t, ok)
	assert.Equal(t, "67890", n)

	_, ok = ExtractOrderNumber("order 123456")
	assert.False(t, ok)

	_, ok = ExtractOrderNumber("")
	assert.False(t, ok)
}

func TestDetectAction(t *testing.T) {
	tests := []struct {
		message string
		kind    string
		ok      bool
	}{
		{"I want a REFUND for 12345", ActionRefund, true},
		{"please cancel my order", ActionCancellation, true},
		{"let me talk to a manager", ActionEscalation, true},
		{"I need a human", ActionEscalation, true},
		{"can you call me tomorrow", ActionCallback, true},
		{"where is my parcel", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			kind, ok := DetectAction(tt.message)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.kind, kind)
		})
	}
}
