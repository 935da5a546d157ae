package parse

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsCreditCardSpend(t *testing.T) {
	tests := []struct {
		name     string
		sender   string
		body     string
		expected bool
	}{
		{
			"typical hdfc spend",
			"HDFCBK",
			"Rs.1,234.50 spent on your HDFC Credit Card at AMAZON on 12-01-24",
			true,
		},
		{
			"otp excluded despite credit card phrasing",
			"HDFCBK",
			"Your OTP for credit card transaction is 123456",
			false,
		},
		{
			"no credit card indicator",
			"HDFCBK",
			"Rs.500 spent at AMAZON on 12-01-24",
			false,
		},
		{
			"debit card excluded",
			"SBIBNK",
			"Rs.900 spent on your debit card at STORE",
			false,
		},
		{
			"emi notice excluded",
			"AXISBK",
			"EMI of Rs.2,000 charged on your credit card",
			false,
		},
		{
			"no spend action word",
			"ICICIB",
			"Your credit card statement of Rs.5,000 is ready",
			false,
		},
		{
			"no amount",
			"ICICIB",
			"transaction on your credit card at STORE",
			false,
		},
		{
			"sender too long",
			"A-VERY-LONG-SENDER-ADDRESS",
			"Rs.100 spent on credit card at STORE",
			false,
		},
		{
			"body too long",
			"HDFCBK",
			"Rs.100 spent on credit card " + strings.Repeat("x", 500),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsCreditCardSpend(tt.sender, tt.body))
		})
	}
}

func TestIsCreditCardSpend_ExclusionDominates(t *testing.T) {
	// Every exclusion phrase forces a negative even with indicators, a spend
	// word, and an amount all present.
	for _, excl := range excludeKeywords {
		body := "Rs.500 spent on your credit card, " + excl
		assert.False(t, IsCreditCardSpend("HDFCBK", body), "exclusion %q", excl)
	}
}

func TestSpend_FullExtraction(t *testing.T) {
	msg, ok := Spend("HDFCBK", "Rs.1,234.50 spent on your HDFC Credit Card at AMAZON on 12-01-24")
	assert.True(t, ok)
	assert.True(t, msg.Amount.Equal(decimal.RequireFromString("1234.50")))
	assert.Equal(t, "HDFC", msg.Bank)
	assert.Contains(t, msg.Merchant, "AMAZON")
	assert.Equal(t, UnknownCardLast4, msg.CardLast4)
}

func TestSpend_SentinelsOnMissingOptionalFields(t *testing.T) {
	msg, ok := Spend("CITIBK", "Rs.750 spent on your credit card txn")
	assert.True(t, ok)
	assert.Equal(t, UnknownMerchant, msg.Merchant)
	assert.Equal(t, UnknownCardLast4, msg.CardLast4)
	assert.Equal(t, "Citi", msg.Bank)
}

func TestSpend_RejectsImplausibleAmount(t *testing.T) {
	_, ok := Spend("HDFCBK", "Rs.99,999,999 spent on your credit card at STORE")
	assert.False(t, ok)
}

func TestSpend_CapsMerchantAndRaw(t *testing.T) {
	body := "Rs.100 spent on credit card at SOME EXTREMELY LONG MERCHANT NAME X on 01-01"
	msg, ok := Spend("HDFCBK", body)
	assert.True(t, ok)
	assert.LessOrEqual(t, len(msg.Merchant), 30)
	assert.LessOrEqual(t, len(msg.RawMessage), 200)
}

func TestSpend_TruncatesRawOnRuneBoundary(t *testing.T) {
	// 300 rupee signs keep the body under the 500-character cap while pushing
	// it well past 200 and 500 bytes.
	body := "Rs.100 spent on credit card at STORE " + strings.Repeat("₹", 300)

	msg, ok := Spend("HDFCBK", body)
	assert.True(t, ok)
	assert.True(t, utf8.ValidString(msg.RawMessage))
	assert.Equal(t, 200, utf8.RuneCountInString(msg.RawMessage))
}

func TestIsCreditCardSpend_LengthGuardCountsCharacters(t *testing.T) {
	// 500 characters exactly, far more than 500 bytes.
	body := "Rs.100 spent on credit card " + strings.Repeat("₹", 472)
	assert.True(t, IsCreditCardSpend("HDFCBK", body))

	assert.False(t, IsCreditCardSpend("HDFCBK", body+"x"))
}

func TestExtractCardLast4(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
		ok       bool
	}{
		{"masked after card", "spent on Card XX1234 at STORE", "1234", true},
		{"ending phrasing", "credit card ending 5678 charged", "5678", true},
		{"ending with phrasing", "card ends with 4321", "4321", true},
		{"masked run before card context", "A/c ****9876 credit card spend", "9876", true},
		{"bare fallback", "txn on **0001 confirmed", "0001", true},
		{"no digits", "spent on your credit card", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractCardLast4(tt.body)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExtractMerchant(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
		ok       bool
	}{
		// The name class admits spaces and digits, so a short remainder is
		// swallowed whole; callers only rely on the merchant being contained.
		{"at phrasing", "spent at AMAZON on 12-01-24", "AMAZON on 12-01-24", true},
		{"to phrasing stops at comma", "paid to Big Bazaar, Ref 9", "Big Bazaar", true},
		{"purely numeric rejected", "spent at 12345", "", false},
		{"absent", "Rs.100 spent", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractMerchant(tt.body)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDetectBank(t *testing.T) {
	tests := []struct {
		sender   string
		body     string
		expected string
	}{
		{"HDFCBK", "spent on card", "HDFC"},
		{"VM-ICICI", "spent on card", "ICICI"},
		{"CP-SBI", "spent on card", "SBI"},
		{"AX-TXN", "Axis Bank card spend", "Axis"},
		{"NOBANK", "spent on card", DefaultBank},
	}

	for _, tt := range tests {
		t.Run(tt.sender, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectBank(tt.sender, tt.body))
		})
	}
}
