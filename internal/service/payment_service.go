package service

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/creditguard/ledger-server/internal/reconcile"
	"github.com/creditguard/ledger-server/internal/upi"
)

const defaultPaymentNote = "credit card repayment"

var errNoTransactions = errors.New("payment: no transactions to settle")

// PaymentService arms the reconciliation matcher when the user initiates a
// repayment and exposes the one-shot match outcome for the UI.
type PaymentService struct {
	matcher    *reconcile.Matcher
	vaultUpiID string
	vaultName  string
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(matcher *reconcile.Matcher, vaultUpiID, vaultName string) *PaymentService {
	return &PaymentService{
		matcher:    matcher,
		vaultUpiID: vaultUpiID,
		vaultName:  vaultName,
	}
}

// InitiatePayment validates the request, builds the upi://pay URI, and arms
// the matcher with the expectation. The matcher is only armed when the URI
// could actually be built; a failed validation leaves any prior expectation
// untouched.
func (s *PaymentService) InitiatePayment(_ context.Context, amount decimal.Decimal, txIDs []uuid.UUID, note string) (string, error) {
	if len(txIDs) == 0 {
		return "", errNoTransactions
	}
	if note == "" {
		note = defaultPaymentNote
	}

	uri, err := upi.PaymentURI(s.vaultUpiID, s.vaultName, amount, note)
	if err != nil {
		return "", err
	}

	s.matcher.SetPending(amount, txIDs)
	return uri, nil
}

// Status returns the last reconciliation outcome exactly once.
func (s *PaymentService) Status() (reconcile.Outcome, bool) {
	return s.matcher.GetAndClearSuccess()
}
