package reconcile

import (
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestMatcher() (*Matcher, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)}
	return NewMatcherWithClock(clock.Now, DefaultTimeout), clock
}

func someIDs(n int) []uuid.UUID {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.Must(uuid.NewV4())
	}
	return ids
}

func TestCheckAndMatch_ImmediateMatch(t *testing.T) {
	m, _ := newTestMatcher()
	ids := someIDs(3)
	amount := decimal.RequireFromString("2500.00")

	m.SetPending(amount, ids)

	matched, ok := m.CheckAndMatch(amount)
	assert.True(t, ok)
	assert.Equal(t, ids, matched)

	// State cleared: a second identical debit does not match.
	_, ok = m.CheckAndMatch(amount)
	assert.False(t, ok)
}

func TestCheckAndMatch_Empty(t *testing.T) {
	m, _ := newTestMatcher()

	matched, ok := m.CheckAndMatch(decimal.NewFromInt(100))
	assert.False(t, ok)
	assert.Nil(t, matched)
}

func TestCheckAndMatch_WithinTolerance(t *testing.T) {
	m, _ := newTestMatcher()
	m.SetPending(decimal.NewFromInt(500), someIDs(1))

	_, ok := m.CheckAndMatch(decimal.RequireFromString("500.99"))
	assert.True(t, ok)
}

func TestCheckAndMatch_MismatchLeavesArmed(t *testing.T) {
	m, _ := newTestMatcher()
	ids := someIDs(2)
	m.SetPending(decimal.NewFromInt(500), ids)

	// An unrelated debit misses without consuming the expectation.
	_, ok := m.CheckAndMatch(decimal.NewFromInt(750))
	assert.False(t, ok)

	// The real debit still matches afterwards.
	matched, ok := m.CheckAndMatch(decimal.NewFromInt(500))
	assert.True(t, ok)
	assert.Equal(t, ids, matched)
}

func TestCheckAndMatch_Expired(t *testing.T) {
	m, clock := newTestMatcher()
	amount := decimal.NewFromInt(500)
	m.SetPending(amount, someIDs(1))

	clock.Advance(DefaultTimeout + time.Second)

	_, ok := m.CheckAndMatch(amount)
	assert.False(t, ok, "expired expectation must not match even on exact amount")

	// Expiry clears the record entirely.
	clock.Advance(-DefaultTimeout)
	_, ok = m.CheckAndMatch(amount)
	assert.False(t, ok)
}

func TestCheckAndMatch_JustInsideWindow(t *testing.T) {
	m, clock := newTestMatcher()
	amount := decimal.NewFromInt(500)
	m.SetPending(amount, someIDs(1))

	clock.Advance(DefaultTimeout)

	_, ok := m.CheckAndMatch(amount)
	assert.True(t, ok, "exactly at the window boundary still matches")
}

func TestCheckAndMatch_NoIDsNeverMatches(t *testing.T) {
	m, _ := newTestMatcher()
	m.SetPending(decimal.NewFromInt(500), nil)

	_, ok := m.CheckAndMatch(decimal.NewFromInt(500))
	assert.False(t, ok)
}

func TestSetPending_LastWriteWins(t *testing.T) {
	m, _ := newTestMatcher()
	m.SetPending(decimal.NewFromInt(100), someIDs(1))

	replacement := someIDs(2)
	m.SetPending(decimal.NewFromInt(200), replacement)

	_, ok := m.CheckAndMatch(decimal.NewFromInt(100))
	assert.False(t, ok, "overwritten expectation is gone")

	matched, ok := m.CheckAndMatch(decimal.NewFromInt(200))
	assert.True(t, ok)
	assert.Equal(t, replacement, matched)
}

func TestGetAndClearSuccess_OneShot(t *testing.T) {
	m, _ := newTestMatcher()
	amount := decimal.RequireFromString("499.50")
	m.SetPending(decimal.NewFromInt(500), someIDs(3))

	_, ok := m.CheckAndMatch(amount)
	assert.True(t, ok)

	out, ok := m.GetAndClearSuccess()
	assert.True(t, ok)
	assert.True(t, out.Amount.Equal(amount), "outcome carries the debited amount, not the expected one")
	assert.Equal(t, 3, out.Count)

	_, ok = m.GetAndClearSuccess()
	assert.False(t, ok, "second read returns nothing")
}

func TestGetAndClearSuccess_EmptyWithoutMatch(t *testing.T) {
	m, _ := newTestMatcher()
	_, ok := m.GetAndClearSuccess()
	assert.False(t, ok)
}

func TestMatcher_ConcurrentAccess(t *testing.T) {
	m, _ := newTestMatcher()
	amount := decimal.NewFromInt(500)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.SetPending(amount, someIDs(1))
			m.CheckAndMatch(amount)
			m.GetAndClearSuccess()
		}()
	}
	wg.Wait()
}
