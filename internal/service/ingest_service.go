package service

import (
	"context"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/creditguard/ledger-server/internal/operator/actions"
	"github.com/creditguard/ledger-server/internal/parse"
	"github.com/creditguard/ledger-server/internal/reconcile"
	"github.com/creditguard/ledger-server/internal/storage/sqlconfig"
)

const (
	maxSenderLen = 20
	maxBodyLen   = 500
)

// IngestOutcome names what the pipeline did with a message.
type IngestOutcome string

const (
	// OutcomeIgnored: the message matched no classifier, or a debit arrived
	// with nothing pending. Not an error.
	OutcomeIgnored IngestOutcome = "ignored"
	// OutcomeTransactionCreated: a credit card spend was extracted and stored.
	OutcomeTransactionCreated IngestOutcome = "transaction_created"
	// OutcomePaymentMatched: a debit confirmation settled the pending payment.
	OutcomePaymentMatched IngestOutcome = "payment_matched"
)

// IngestResult reports the pipeline outcome for one message.
type IngestResult struct {
	Outcome       IngestOutcome
	TransactionID uuid.UUID
	Amount        decimal.Decimal
	MatchedCount  int
}

// Notifier is told about each stored transaction so the user can be shown a
// capture notice. Implementations must not block message processing.
type Notifier interface {
	TransactionCaptured(ctx context.Context, tx Transaction)
}

// LogNotifier is the default Notifier; it only writes a log line. Push
// delivery belongs to the host integration, not this service.
type LogNotifier struct {
	Logger *logrus.Logger
}

func (n *LogNotifier) TransactionCaptured(_ context.Context, tx Transaction) {
	n.Logger.WithFields(logrus.Fields{
		"transactionID": tx.ID,
		"amount":        tx.Amount,
		"merchant":      tx.Merchant,
		"bank":          tx.Bank,
	}).Info("IngestService.TransactionCaptured")
}

// IngestService routes a raw notification message through the classification
// pipeline: debit confirmations reconcile against the pending payment, spend
// messages become stored transactions, everything else is dropped.
type IngestService struct {
	matcher  *reconcile.Matcher
	operator actionProcessor
	notifier Notifier
}

// NewIngestService creates a new IngestService.
func NewIngestService(matcher *reconcile.Matcher, op actionProcessor, notifier Notifier) *IngestService {
	return &IngestService{
		matcher:  matcher,
		operator: op,
		notifier: notifier,
	}
}

// ProcessMessage runs one message through the pipeline. Classification misses
// are not errors; only storage failures surface as errors.
func (s *IngestService) ProcessMessage(ctx context.Context, sender, body string, receivedAt time.Time) (*IngestResult, error) {
	// Character-based caps; a byte slice here could split a rupee sign.
	if runes := []rune(sender); len(runes) > maxSenderLen {
		sender = string(runes[:maxSenderLen])
	}
	if runes := []rune(body); len(runes) > maxBodyLen {
		body = string(runes[:maxBodyLen])
	}
	if strings.TrimSpace(sender) == "" || strings.TrimSpace(body) == "" {
		return &IngestResult{Outcome: OutcomeIgnored}, nil
	}

	// Debit confirmations are checked first; a message never takes both paths.
	if parse.IsUpiDebit(sender, body) {
		return s.processDebit(ctx, body), nil
	}

	msg, ok := parse.Spend(sender, body)
	if !ok {
		return &IngestResult{Outcome: OutcomeIgnored}, nil
	}
	return s.processSpend(ctx, msg, receivedAt)
}

func (s *IngestService) processDebit(ctx context.Context, body string) *IngestResult {
	amount, ok := parse.DebitAmount(body)
	if !ok {
		return &IngestResult{Outcome: OutcomeIgnored}
	}

	ids, matched := s.matcher.CheckAndMatch(amount)
	if !matched {
		return &IngestResult{Outcome: OutcomeIgnored}
	}

	// Persisting the settle is fire and forget: the match outcome is already
	// decided and the store owns its own durability.
	settleCtx := context.WithoutCancel(ctx)
	go func() {
		action := &actions.MarkTransactionsPaid{IDs: ids}
		if err := s.operator.Process(settleCtx, action); err != nil {
			logrus.WithError(err).WithField("count", len(ids)).
				Error("IngestService.processDebit.markPaid")
		}
	}()

	return &IngestResult{
		Outcome:      OutcomePaymentMatched,
		Amount:       amount,
		MatchedCount: len(ids),
	}
}

func (s *IngestService) processSpend(ctx context.Context, msg *parse.SpendMessage, receivedAt time.Time) (*IngestResult, error) {
	action := &actions.InsertTransaction{
		Create: &sqlconfig.TransactionCreate{
			Amount:     msg.Amount,
			Merchant:   msg.Merchant,
			CardLast4:  msg.CardLast4,
			Bank:       msg.Bank,
			OccurredAt: receivedAt,
			RawMessage: msg.RawMessage,
		},
	}

	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	tx := Transaction{
		ID:         action.ID,
		Amount:     msg.Amount,
		Merchant:   msg.Merchant,
		CardLast4:  msg.CardLast4,
		Bank:       msg.Bank,
		OccurredAt: receivedAt,
		RawMessage: msg.RawMessage,
	}
	s.notifier.TransactionCaptured(ctx, tx)

	return &IngestResult{
		Outcome:       OutcomeTransactionCreated,
		TransactionID: action.ID,
		Amount:        msg.Amount,
	}, nil
}
