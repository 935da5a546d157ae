package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/creditguard/ledger-server/internal/operator/actions"
	"github.com/creditguard/ledger-server/internal/reconcile"
)

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) TransactionCaptured(ctx context.Context, tx Transaction) {
	m.Called(ctx, tx)
}

func newTestIngestService(t *testing.T) (*IngestService, *reconcile.Matcher, *mockProcessor, *mockNotifier) {
	t.Helper()
	matcher := reconcile.NewMatcher()
	processor := new(mockProcessor)
	notifier := new(mockNotifier)
	svc := NewIngestService(matcher, processor, notifier)
	return svc, matcher, processor, notifier
}

func TestProcessMessage_SpendCreatesTransaction(t *testing.T) {
	svc, _, processor, notifier := newTestIngestService(t)

	txID := uuid.Must(uuid.NewV4())
	receivedAt := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	processor.On("Process", mock.Anything, mock.MatchedBy(func(a actions.IAction) bool {
		insert, ok := a.(*actions.InsertTransaction)
		return ok &&
			insert.Create.Amount.Equal(decimal.RequireFromString("1234.50")) &&
			insert.Create.Bank == "HDFC" &&
			insert.Create.CardLast4 == "****" &&
			insert.Create.OccurredAt.Equal(receivedAt)
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*actions.InsertTransaction).ID = txID
	}).Return(nil)

	notifier.On("TransactionCaptured", mock.Anything, mock.MatchedBy(func(tx Transaction) bool {
		return tx.ID == txID && tx.Bank == "HDFC"
	})).Return()

	result, err := svc.ProcessMessage(context.Background(), "HDFCBK",
		"Rs.1,234.50 spent on your HDFC Credit Card at AMAZON on 12-01-24", receivedAt)

	assert.NoError(t, err)
	assert.Equal(t, OutcomeTransactionCreated, result.Outcome)
	assert.Equal(t, txID, result.TransactionID)
	assert.True(t, result.Amount.Equal(decimal.RequireFromString("1234.50")))
	processor.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestProcessMessage_ClassificationMissIgnored(t *testing.T) {
	svc, _, processor, notifier := newTestIngestService(t)

	result, err := svc.ProcessMessage(context.Background(), "HDFCBK",
		"Your OTP for credit card transaction is 123456", time.Now())

	assert.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, result.Outcome)
	processor.AssertNotCalled(t, "Process")
	notifier.AssertNotCalled(t, "TransactionCaptured")
}

func TestProcessMessage_BlankInputsIgnored(t *testing.T) {
	svc, _, processor, _ := newTestIngestService(t)

	result, err := svc.ProcessMessage(context.Background(), "   ", "Rs.100 spent on credit card", time.Now())
	assert.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, result.Outcome)

	result, err = svc.ProcessMessage(context.Background(), "HDFCBK", "", time.Now())
	assert.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, result.Outcome)

	processor.AssertNotCalled(t, "Process")
}

func TestProcessMessage_TruncatesLongBodyOnRuneBoundary(t *testing.T) {
	svc, _, processor, notifier := newTestIngestService(t)

	processor.On("Process", mock.Anything, mock.MatchedBy(func(a actions.IAction) bool {
		insert, ok := a.(*actions.InsertTransaction)
		return ok && utf8.ValidString(insert.Create.RawMessage)
	})).Return(nil)
	notifier.On("TransactionCaptured", mock.Anything, mock.Anything).Return()

	// Multi-byte padding pushes the body past the 500-character cap; the cut
	// must land on a character boundary, not a byte offset.
	body := "Rs.100 spent on credit card at STORE " + strings.Repeat("₹", 600)
	result, err := svc.ProcessMessage(context.Background(), "HDFCBK", body, time.Now())

	assert.NoError(t, err)
	assert.Equal(t, OutcomeTransactionCreated, result.Outcome)
	processor.AssertExpectations(t)
}

func TestProcessMessage_StorageErrorSurfaces(t *testing.T) {
	svc, _, processor, notifier := newTestIngestService(t)

	processor.On("Process", mock.Anything, mock.Anything).
		Return(errors.New("database unavailable"))

	result, err := svc.ProcessMessage(context.Background(), "HDFCBK",
		"Rs.100 spent on your credit card at STORE X", time.Now())

	assert.Error(t, err)
	assert.Nil(t, result)
	notifier.AssertNotCalled(t, "TransactionCaptured")
}

func TestProcessMessage_DebitSettlesPendingPayment(t *testing.T) {
	svc, matcher, processor, _ := newTestIngestService(t)

	txID := uuid.Must(uuid.NewV4())
	matcher.SetPending(decimal.NewFromInt(500), []uuid.UUID{txID})

	settled := make(chan *actions.MarkTransactionsPaid, 1)
	processor.On("Process", mock.Anything, mock.MatchedBy(func(a actions.IAction) bool {
		_, ok := a.(*actions.MarkTransactionsPaid)
		return ok
	})).Run(func(args mock.Arguments) {
		settled <- args.Get(1).(*actions.MarkTransactionsPaid)
	}).Return(nil)

	result, err := svc.ProcessMessage(context.Background(), "BANKSMS",
		"Rs.500 debited via UPI to merchant@upi", time.Now())

	assert.NoError(t, err)
	assert.Equal(t, OutcomePaymentMatched, result.Outcome)
	assert.True(t, result.Amount.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, 1, result.MatchedCount)

	// Persistence is dispatched asynchronously after the match is decided.
	select {
	case action := <-settled:
		assert.Equal(t, []uuid.UUID{txID}, action.IDs)
	case <-time.After(time.Second):
		t.Fatal("mark paid action was never dispatched")
	}

	// The matcher recorded the outcome for the one-shot status read.
	outcome, ok := matcher.GetAndClearSuccess()
	assert.True(t, ok)
	assert.True(t, outcome.Amount.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, 1, outcome.Count)
}

func TestProcessMessage_DebitWithoutPendingIgnored(t *testing.T) {
	svc, _, processor, _ := newTestIngestService(t)

	result, err := svc.ProcessMessage(context.Background(), "BANKSMS",
		"Rs.500 debited via UPI to merchant@upi", time.Now())

	assert.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, result.Outcome)
	processor.AssertNotCalled(t, "Process")
}

func TestProcessMessage_DebitAmountMismatchKeepsPending(t *testing.T) {
	svc, matcher, processor, _ := newTestIngestService(t)

	txID := uuid.Must(uuid.NewV4())
	matcher.SetPending(decimal.NewFromInt(500), []uuid.UUID{txID})

	result, err := svc.ProcessMessage(context.Background(), "BANKSMS",
		"Rs.950 debited via UPI to someone@upi", time.Now())

	assert.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, result.Outcome)
	processor.AssertNotCalled(t, "Process")

	// The unrelated debit did not consume the expectation.
	ids, ok := matcher.CheckAndMatch(decimal.NewFromInt(500))
	assert.True(t, ok)
	assert.Equal(t, []uuid.UUID{txID}, ids)
}

func TestLogNotifier_DoesNotPanic(t *testing.T) {
	n := &LogNotifier{Logger: logrus.New()}
	n.TransactionCaptured(context.Background(), Transaction{
		ID:     uuid.Must(uuid.NewV4()),
		Amount: decimal.NewFromInt(100),
	})
}
