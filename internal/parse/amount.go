package parse

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount patterns for credit card spend messages. Order matters: the
// currency-marker-first form is tried before the marker-after form, and the
// leftmost match within a pattern wins.
var amountPatterns = []*regexp.Regexp{
	// Rs. 1,234.50 / INR 500 / ₹99
	regexp.MustCompile(`(?i)(?:Rs\.?|INR|₹)\s*(\d[\d,]{0,11}(?:\.\d{1,2})?)`),
	// 1,234.50 Rs / 500 INR
	regexp.MustCompile(`(?i)(\d[\d,]{0,11}(?:\.\d{1,2})?)\s*(?:Rs\.?|INR|₹)`),
}

// Amount extracts the first positive monetary value from body.
// Thousands separators are stripped before parsing. Returns false when no
// pattern yields a positive amount.
func Amount(body string) (decimal.Decimal, bool) {
	return firstAmount(amountPatterns, body)
}

func firstAmount(patterns []*regexp.Regexp, body string) (decimal.Decimal, bool) {
	for _, p := range patterns {
		m := p.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		amount, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
		if err != nil {
			continue
		}
		if amount.IsPositive() {
			return amount, true
		}
	}
	return decimal.Decimal{}, false
}
