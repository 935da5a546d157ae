package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/creditguard/ledger-server/internal/storage"
)

// MarkTransactionsPaid settles a batch of transactions in one database
// transaction, so a reconciliation outcome is applied all or nothing.
type MarkTransactionsPaid struct {
	IDs []uuid.UUID

	IAction
}

func (a *MarkTransactionsPaid) Perform(ctx context.Context, writer *storage.Writer) error {
	for _, id := range a.IDs {
		if err := writer.Transactions.MarkPaid(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// MarkAllPaid settles every unpaid transaction. Count is written back after
// the update runs.
type MarkAllPaid struct {
	Count int64

	IAction
}

func (a *MarkAllPaid) Perform(ctx context.Context, writer *storage.Writer) error {
	count, err := writer.Transactions.MarkAllPaid(ctx)
	if err != nil {
		return err
	}

	a.Count = count
	return nil
}
