// Package reconcile tracks an in-flight payment expectation and matches it
// against a later debit confirmation.
package reconcile

import (
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// DefaultTimeout bounds how long a pending payment stays matchable.
const DefaultTimeout = 5 * time.Minute

// Debited amounts within one rupee of the expectation still match; bank
// reported amounts can carry rounding or fee noise.
var amountTolerance = decimal.NewFromInt(1)

// Outcome is the result of a successful match, held for one-shot retrieval.
type Outcome struct {
	Amount decimal.Decimal
	Count  int
}

// Matcher holds at most one pending payment expectation. All methods are safe
// for concurrent use; the whole record is guarded by a single mutex so every
// operation is atomic relative to the others.
type Matcher struct {
	mu      sync.Mutex
	now     func() time.Time
	timeout time.Duration

	armed  bool
	amount decimal.Decimal
	setAt  time.Time
	txIDs  []uuid.UUID

	success *Outcome
}

// NewMatcher creates a Matcher with the default timeout.
func NewMatcher() *Matcher {
	return &Matcher{
		now:     time.Now,
		timeout: DefaultTimeout,
	}
}

// NewMatcherWithClock creates a Matcher with an injected clock and timeout,
// for tests.
func NewMatcherWithClock(now func() time.Time, timeout time.Duration) *Matcher {
	return &Matcher{now: now, timeout: timeout}
}

// SetPending arms the matcher with a payment expectation. Any previous
// expectation is discarded; last write wins.
func (m *Matcher) SetPending(amount decimal.Decimal, txIDs []uuid.UUID) {
	ids := make([]uuid.UUID, len(txIDs))
	copy(ids, txIDs)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.armed = true
	m.amount = amount
	m.setAt = m.now()
	m.txIDs = ids
}

// CheckAndMatch compares a confirmed debit against the pending expectation.
// On a match it clears the expectation, records the outcome for
// GetAndClearSuccess, and returns the transaction ids to mark paid. An
// expired expectation is cleared and never matches. An amount mismatch leaves
// the expectation armed so a later, unrelated debit cannot consume it.
func (m *Matcher) CheckAndMatch(debited decimal.Decimal) ([]uuid.UUID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.armed {
		return nil, false
	}
	if m.now().Sub(m.setAt) > m.timeout {
		m.clearLocked()
		return nil, false
	}
	if m.amount.Sub(debited).Abs().GreaterThan(amountTolerance) {
		return nil, false
	}
	if len(m.txIDs) == 0 {
		return nil, false
	}

	ids := m.txIDs
	m.success = &Outcome{Amount: debited, Count: len(ids)}
	m.clearLocked()
	return ids, true
}

// GetAndClearSuccess returns the last recorded outcome exactly once.
func (m *Matcher) GetAndClearSuccess() (Outcome, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.success == nil {
		return Outcome{}, false
	}
	out := *m.success
	m.success = nil
	return out, true
}

// Clear drops any pending expectation without recording an outcome.
func (m *Matcher) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
}

func (m *Matcher) clearLocked() {
	m.armed = false
	m.amount = decimal.Decimal{}
	m.setAt = time.Time{}
	m.txIDs = nil
}
