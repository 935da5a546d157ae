package parse

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	maxSenderLen   = 20
	maxBodyLen     = 500
	maxMerchantLen = 30
	maxRawLen      = 200

	// UnknownCardLast4 is the sentinel stored when the card digits cannot be
	// extracted.
	UnknownCardLast4 = "****"
	// UnknownMerchant is the sentinel stored when no merchant name is found.
	UnknownMerchant = "Unknown"
)

// Amounts above this are treated as misparses, not purchases.
var maxSpendAmount = decimal.NewFromInt(10_000_000)

// Phrases that identify a message as concerning a credit card. At least one
// must be present.
var creditCardIndicators = []string{
	"credit card", "creditcard", "cc ", " cc", "cr card",
	"rupay credit", "visa credit", "mastercard", "credit a/c",
}

// Action words a spend message carries.
var spendKeywords = []string{"spent", "debited", "charged", "purchase", "transaction", "txn"}

// Phrases that disqualify a message outright, even when the indicators above
// are present: OTPs, statements, offers, EMI notices, and anything about
// debit cards or deposit accounts.
var excludeKeywords = []string{
	"otp", "cvv", "pin", "password", "limit increased", "due date",
	"bill generated", "emi", "reward", "cashback", "offer", "apply",
	"debit card", "debitcard", "savings", "current a/c",
}

var cardLast4Patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:credit\s*card|card).{0,20}?[xX*]{2,12}(\d{4})`),
	regexp.MustCompile(`(?i)(?:credit\s*card|card).{0,20}?(?:ending|ends)\s*(?:with\s+)?(\d{4})`),
}

// maskedLast4Pattern needs card context somewhere after the match; regexp
// lacks lookahead, so the context check happens in ExtractCardLast4.
var maskedLast4Pattern = regexp.MustCompile(`(?i)[xX*]{4,12}(\d{4})`)

// cardLast4Fallback catches any masking run followed by four digits; tried
// last.
var cardLast4Fallback = regexp.MustCompile(`[xX*]{2,12}(\d{4})`)

var merchantPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:at|@)\s+([A-Za-z0-9\s&'._-]{2,35})(?:\s+on|\s+for|\s+via|\.|,|$)`),
	regexp.MustCompile(`(?i)(?:to|towards)\s+([A-Za-z0-9\s&'._-]{2,35})(?:\s+on|\s+Ref|\.|,|$)`),
}

// SpendMessage is a credit card spend extracted from a notification message.
type SpendMessage struct {
	Amount     decimal.Decimal
	Merchant   string
	CardLast4  string
	Bank       string
	RawMessage string
}

// IsCreditCardSpend reports whether the message describes a credit card
// purchase. All of the following must hold: the inputs fit the upstream
// truncation contract, a credit card indicator is present, no exclusion
// phrase is present, a spend action word is present, and a positive amount
// can be extracted.
func IsCreditCardSpend(sender, body string) bool {
	if utf8.RuneCountInString(sender) > maxSenderLen || utf8.RuneCountInString(body) > maxBodyLen {
		return false
	}

	lower := strings.ToLower(body)

	if !containsAny(lower, creditCardIndicators) {
		return false
	}
	if containsAny(lower, excludeKeywords) {
		return false
	}
	if !containsAny(lower, spendKeywords) {
		return false
	}

	_, ok := Amount(body)
	return ok
}

// Spend classifies and extracts a spend transaction from the message.
// Returns false for anything that is not a plausible credit card purchase;
// merchant and card digits fall back to sentinels when absent.
func Spend(sender, body string) (*SpendMessage, bool) {
	if !IsCreditCardSpend(sender, body) {
		return nil, false
	}

	amount, ok := Amount(body)
	if !ok || amount.GreaterThan(maxSpendAmount) {
		return nil, false
	}

	cardLast4, ok := ExtractCardLast4(body)
	if !ok {
		cardLast4 = UnknownCardLast4
	}
	merchant, ok := ExtractMerchant(body)
	if !ok {
		merchant = UnknownMerchant
	}

	return &SpendMessage{
		Amount:     amount,
		Merchant:   truncate(strings.TrimSpace(merchant), maxMerchantLen),
		CardLast4:  cardLast4,
		Bank:       DetectBank(sender, body),
		RawMessage: truncate(body, maxRawLen),
	}, true
}

// ExtractCardLast4 returns the last four digits of the card mentioned in the
// body, trying card-anchored patterns first and an unanchored masked-digit
// run last.
func ExtractCardLast4(body string) (string, bool) {
	for _, p := range cardLast4Patterns {
		if m := p.FindStringSubmatch(body); m != nil {
			return m[1], true
		}
	}

	// Masked run counts only when credit/card context follows it.
	if loc := maskedLast4Pattern.FindStringSubmatchIndex(body); loc != nil {
		rest := strings.ToLower(body[loc[1]:])
		if strings.Contains(rest, "credit") || strings.Contains(rest, "card") {
			return body[loc[2]:loc[3]], true
		}
	}

	if m := cardLast4Fallback.FindStringSubmatch(body); m != nil {
		return m[1], true
	}
	return "", false
}

// ExtractMerchant returns the merchant name from "at NAME"/"to NAME" style
// phrasing. Purely numeric captures are rejected so masked account numbers
// never pass as merchants.
func ExtractMerchant(body string) (string, bool) {
	for _, p := range merchantPatterns {
		m := p.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		merchant := strings.TrimSpace(m[1])
		if len(merchant) > 2 && !allDigits(merchant) {
			return merchant, true
		}
	}
	return "", false
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// truncate caps s at n characters, never splitting a multi-byte rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
