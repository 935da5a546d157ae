package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/creditguard/ledger-server/internal/storage"
	"github.com/creditguard/ledger-server/internal/storage/sqlconfig"
)

// InsertTransaction records a parsed spend. The generated ID is written back
// onto the action so the enqueuer can read it after Process returns.
type InsertTransaction struct {
	Create *sqlconfig.TransactionCreate
	ID     uuid.UUID

	IAction
}

func (a *InsertTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	id, err := writer.Transactions.Insert(ctx, a.Create)
	if err != nil {
		return err
	}

	a.ID = id
	return nil
}
