package tools

import (
	"strings"

	"github.com/carecrew/server/internal/agent/model"
)

// NoFAQMatch is returned by LookupFAQ when no topic keyword matches.
const NoFAQMatch = "No FAQ match found. This may require further research or escalation."

const returnsTopic = "returns"

// MockFAQs is the FAQ table in lookup order.
var MockFAQs = []model.FAQEntry{
	{Topic: "shipping", Answer: "Standard shipping takes 3-5 business days. Express shipping takes 1-2 business days."},
	{Topic: returnsTopic, Answer: "You can return items within 30 days of purchase. Items must be unused and in original packaging."},
	{Topic: "payment", Answer: "We accept credit cards, debit cards, and PayPal."},
	{Topic: "tracking", Answer: "You can track your order using the tracking number sent to your email."},
}

// LookupFAQ answers query from the FAQ table. Anything mentioning "return"
// gets the returns answer verbatim; otherwise the first topic keyword
// contained in the query wins.
func (s *KnowledgeStore) LookupFAQ(query string) string {
	q := strings.ToLower(query)

	if strings.Contains(q, "return") {
		if e, ok := s.faq(returnsTopic); ok {
			return e.Answer
		}
	}

	for _, e := range s.faqs {
		if strings.Contains(q, e.Topic) {
			return "FAQ Answer: " + e.Answer
		}
	}

	return NoFAQMatch
}

func (s *KnowledgeStore) faq(topic string) (model.FAQEntry, bool) {
	for _, e := range s.faqs {
		if e.Topic == topic {
			return e, true
		}
	}
	return model.FAQEntry{}, false
}
