package service

import (
	"context"

	"github.com/creditguard/ledger-server/internal/config"
	"github.com/creditguard/ledger-server/internal/operator/actions"
	"github.com/creditguard/ledger-server/internal/reconcile"
	"github.com/creditguard/ledger-server/internal/storage"
)

// actionProcessor enqueues a write action and waits for the worker pool to
// apply it. Satisfied by *operator.OperatorDelegator.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Ingest      *IngestService
	Transaction *TransactionService
	Payment     *PaymentService
}

// NewService creates a new Service with the given collaborators.
func NewService(store *storage.Storage, matcher *reconcile.Matcher, op actionProcessor, notifier Notifier, env *config.Config) *Service {
	return &Service{
		Ingest:      NewIngestService(matcher, op, notifier),
		Transaction: NewTransactionService(store),
		Payment:     NewPaymentService(matcher, env.VaultUpiID, env.VaultName),
	}
}
