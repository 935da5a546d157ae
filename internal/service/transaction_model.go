package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/creditguard/ledger-server/internal/storage/sqlconfig"
)

// Transaction represents a captured spend in the service layer.
type Transaction struct {
	ID         uuid.UUID
	Amount     decimal.Decimal
	Merchant   string
	CardLast4  string
	Bank       string
	OccurredAt time.Time
	Paid       bool
	RawMessage string
	CreatedAt  time.Time
}

// TransactionCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

// SpendSummary aggregates the ledger for the dashboard.
type SpendSummary struct {
	TotalUnpaid     decimal.Decimal
	TotalSpentSince decimal.Decimal
	Since           time.Time
}

func transactionFromStorage(row *sqlconfig.Transaction) Transaction {
	return Transaction{
		ID:         row.ID,
		Amount:     row.Amount,
		Merchant:   row.Merchant,
		CardLast4:  row.CardLast4,
		Bank:       row.Bank,
		OccurredAt: row.OccurredAt,
		Paid:       row.Paid,
		RawMessage: row.RawMessage,
		CreatedAt:  row.CreatedAt,
	}
}
