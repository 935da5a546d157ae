package parse

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Debit amount patterns require transfer context around the number, unlike
// the spend amount patterns which match any currency-marked number. The two
// lists look similar but are deliberately independent.
var debitAmountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:debited|sent|paid|transferred).{0,30}?(?:Rs\.?|INR|₹)\s*([\d,]+(?:\.\d{1,2})?)`),
	regexp.MustCompile(`(?i)(?:Rs\.?|INR|₹)\s*([\d,]+(?:\.\d{1,2})?).{0,30}?(?:debited|sent|paid|transferred)`),
	regexp.MustCompile(`(?i)(?:Rs\.?|INR|₹)\s*([\d,]+(?:\.\d{1,2})?).{0,20}?(?:from|to).{0,30}?(?:UPI|IMPS|NEFT)`),
}

// Transfer-rail and wallet-app words that mark a message as a UPI/bank
// transfer confirmation.
var upiKeywords = []string{
	"upi", "imps", "neft", "gpay", "phonepe", "paytm", "bhim",
	"sent to", "paid to", "transferred",
}

// IsUpiDebit reports whether the message confirms an outgoing UPI/bank
// transfer. Credit card messages are excluded here even when they mention a
// transfer rail; those route through the spend path instead.
func IsUpiDebit(sender, body string) bool {
	lower := strings.ToLower(body)

	if !containsAny(lower, upiKeywords) {
		return false
	}

	hasDebit := strings.Contains(lower, "debit") || strings.Contains(lower, "sent") ||
		strings.Contains(lower, "paid") || strings.Contains(lower, "transfer")
	if !hasDebit {
		return false
	}

	hasAmount := false
	for _, p := range debitAmountPatterns {
		if p.MatchString(body) {
			hasAmount = true
			break
		}
	}
	if !hasAmount {
		return false
	}

	if strings.Contains(lower, "credit card") || strings.Contains(lower, "creditcard") {
		return false
	}
	return true
}

// DebitAmount extracts the debited amount from a transfer confirmation.
func DebitAmount(body string) (decimal.Decimal, bool) {
	return firstAmount(debitAmountPatterns, body)
}
