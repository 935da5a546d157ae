// Package upi builds upi://pay payment request URIs.
package upi

import (
	"errors"
	"net/url"
	"regexp"

	"github.com/shopspring/decimal"
)

const (
	maxPayeeNameLen = 50
	maxNoteLen      = 100
	currency        = "INR"
)

// Single payments above this are refused.
var maxPaymentAmount = decimal.NewFromInt(100_000)

var (
	upiIDPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+$`)
	unsafeRunes  = regexp.MustCompile(`[^a-zA-Z0-9@._\s-]`)
	errInvalidID = errors.New("upi: invalid UPI id")
	errBadAmount = errors.New("upi: amount out of range")
)

// sanitize caps the input and strips anything outside the allowed set before
// it reaches the URI.
func sanitize(input string) string {
	if len(input) > 100 {
		input = input[:100]
	}
	return unsafeRunes.ReplaceAllString(input, "")
}

func validID(id string) bool {
	return len(id) >= 3 && len(id) <= 50 && upiIDPattern.MatchString(id)
}

// PaymentURI builds a upi://pay request URI for the given payee and amount.
// Inputs are sanitized first; an invalid UPI id or out-of-range amount yields
// an error and no URI.
func PaymentURI(upiID, payeeName string, amount decimal.Decimal, note string) (string, error) {
	id := sanitize(upiID)
	name := sanitize(payeeName)
	cleanNote := sanitize(note)

	if !validID(id) {
		return "", errInvalidID
	}
	if !amount.IsPositive() || amount.GreaterThan(maxPaymentAmount) {
		return "", errBadAmount
	}

	if len(name) > maxPayeeNameLen {
		name = name[:maxPayeeNameLen]
	}
	if len(cleanNote) > maxNoteLen {
		cleanNote = cleanNote[:maxNoteLen]
	}

	q := url.Values{}
	q.Set("pa", id)
	q.Set("pn", name)
	q.Set("am", amount.StringFixed(2))
	q.Set("cu", currency)
	q.Set("tn", cleanNote)

	u := url.URL{
		Scheme:   "upi",
		Host:     "pay",
		RawQuery: q.Encode(),
	}
	return u.String(), nil
}
