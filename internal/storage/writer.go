package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/creditguard/ledger-server/internal/storage/sqlconfig"
)

type Writer struct {
	tx           bob.Tx
	Transactions sqlconfig.ITransactionTable
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx:           tx,
		Transactions: sqlconfig.NewTransactionsTableExec(tx),
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
