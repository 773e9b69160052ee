// Package router holds the rule based decisions taken before any completion
// call: inquiry classification, order number extraction and the resolver's
// action trigger.
package router

import (
	"regexp"
	"strings"

	"github.com/carecrew/server/internal/agent/model"
)

var orderNumberPattern = regexp.MustCompile(`\b\d{5}\b`)

// faqKeywords route an inquiry to the FAQ path when no order signal is present.
var faqKeywords = []string{"shipping", "return", "payment", "track", "policy", "refund"}

// Classify maps a raw message to a category. Order signals take precedence
// over FAQ keywords and everything else defaults to FAQ.
func Classify(message string) model.Category {
	lower := strings.ToLower(message)
	if orderNumberPattern.MatchString(message) || strings.Contains(lower, "order") {
		return model.CategoryOrder
	}
	for _, kw := range faqKeywords {
		if strings.Contains(lower, kw) {
			return model.CategoryFAQ
		}
	}
	return model.CategoryFAQ
}

// ExtractOrderNumber returns the first standalone 5-digit token in message.
func ExtractOrderNumber(message string) (string, bool) {
	n := orderNumberPattern.FindString(message)
	return n, n != ""
}

// Action kinds logged by the resolver stage.
const (
	ActionRefund       = "refund"
	ActionCancellation = "cancellation"
	ActionEscalation   = "escalation"
	ActionCallback     = "callback"
)

// actionTriggers is checked in order; the first matching keyword decides the kind.
var actionTriggers = []struct {
	keyword string
	kind    string
}{
	{"refund", ActionRefund},
	{"cancel", ActionCancellation},
	{"escalate", ActionEscalation},
	{"manager", ActionEscalation},
	{"human", ActionEscalation},
	{"complain", ActionEscalation},
	{"callback", ActionCallback},
	{"call me", ActionCallback},
	{"call back", ActionCallback},
}

// DetectAction decides whether the resolver should log an action for message.
func DetectAction(message string) (kind string, ok bool) {
	lower := strings.ToLower(message)
	for _, t := range actionTriggers {
		if strings.Contains(lower, t.keyword) {
			return t.kind, true
		}
	}
	return "", false
}
