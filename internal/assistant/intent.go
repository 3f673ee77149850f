package assistant

import (
	"regexp"
	"strings"
)

// OrderIntentDetector flags customer messages that ask to place an order.
type OrderIntentDetector interface {
	IsOrderRequest(message string) bool
}

// KeywordIntent is a lightweight detector: an ordering verb together with a
// quantity or a buying phrase.
type KeywordIntent struct{}

var (
	orderPhrase   = regexp.MustCompile(`(?i)\b(i want to (order|buy)|i'd like to (order|buy)|place an? order|can i (order|buy)|send me)\b`)
	orderVerb     = regexp.MustCompile(`(?i)\b(order|buy|purchase|need)\b`)
	orderQuantity = regexp.MustCompile(`(?i)\b\d+\s*(x|pcs|pieces|units?|cartons?|box(es)?|bags?|crates?|packs?|kg|bottles?)\b`)
)

// IsOrderRequest implements OrderIntentDetector.
func (KeywordIntent) IsOrderRequest(message string) bool {
	msg := strings.TrimSpace(message)
	if msg == "" {
		return false
	}

	if orderPhrase.MatchString(msg) {
		return true
	}

	return orderVerb.MatchString(msg) && orderQuantity.MatchString(msg)
}
