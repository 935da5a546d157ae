package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Transaction represents a captured credit card spend.
type Transaction struct {
	ID         uuid.UUID       `db:"id"`
	Amount     decimal.Decimal `db:"amount"`
	Merchant   string          `db:"merchant"`
	CardLast4  string          `db:"card_last4"`
	Bank       string          `db:"bank"`
	OccurredAt time.Time       `db:"occurred_at"`
	Paid       bool            `db:"paid"`
	RawMessage string          `db:"raw_message"`
	CreatedAt  time.Time       `db:"created_at"`
}

// TransactionCreate is the input for recording a new transaction.
type TransactionCreate struct {
	Amount     decimal.Decimal
	Merchant   string
	CardLast4  string
	Bank       string
	OccurredAt time.Time // defaults to now if zero
	RawMessage string
}

// TransactionFilter specifies filters for listing transactions.
type TransactionFilter struct {
	UnpaidOnly      bool
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}

// ITransactionTable defines the interface for transaction storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
type ITransactionTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
	MarkPaid(ctx context.Context, id uuid.UUID) error
	MarkAllPaid(ctx context.Context) (int64, error)
	SumUnpaid(ctx context.Context) (decimal.Decimal, error)
	SumSpentSince(ctx context.Context, since time.Time) (decimal.Decimal, error)
}
