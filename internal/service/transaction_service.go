package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/creditguard/ledger-server/internal/storage"
	"github.com/creditguard/ledger-server/internal/storage/sqlconfig"
)

const defaultLimit = 20

// TransactionService handles transaction reads: listing and totals. Writes go
// through the operator worker pool instead.
type TransactionService struct {
	storage *storage.Storage
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage) *TransactionService {
	return &TransactionService{storage: store}
}

// GetTransaction fetches a single transaction by id.
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	row, err := s.storage.Transactions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tx := transactionFromStorage(row)
	return &tx, nil
}

// ListTransactions returns a page of transactions using cursor-based pagination.
func (s *TransactionService) ListTransactions(ctx context.Context, cursor *TransactionCursor, unpaidOnly bool) ([]Transaction, *TransactionCursor, error) {
	limit := defaultLimit
	offset := 0
	var maxCreationTime *time.Time
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
		maxCreationTime = &cursor.MaxCreationTime
	}

	filter := &sqlconfig.TransactionFilter{
		UnpaidOnly:      unpaidOnly,
		Limit:           limit,
		Offset:          offset,
		MaxCreationTime: maxCreationTime,
	}

	rows, err := s.storage.Transactions.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]

		cursorMaxCreationTime := rows[0].CreatedAt
		if maxCreationTime != nil {
			cursorMaxCreationTime = *maxCreationTime
		}

		nextCursor = &TransactionCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: cursorMaxCreationTime,
		}
	}

	converted := make([]Transaction, len(rows))
	for i, row := range rows {
		converted[i] = transactionFromStorage(row)
	}

	return converted, nextCursor, nil
}

// Summary returns the outstanding card balance and total spend since the
// given time.
func (s *TransactionService) Summary(ctx context.Context, since time.Time) (*SpendSummary, error) {
	totalUnpaid, err := s.storage.Transactions.SumUnpaid(ctx)
	if err != nil {
		return nil, err
	}

	totalSince, err := s.storage.Transactions.SumSpentSince(ctx, since)
	if err != nil {
		return nil, err
	}

	return &SpendSummary{
		TotalUnpaid:     totalUnpaid,
		TotalSpentSince: totalSince,
		Since:           since,
	}, nil
}
