package sqlconfig

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

var _ ITransactionTable = (*TransactionsTable)(nil)

const transactionsName = "transactions"

var transactionColumns = []string{
	"id", "amount", "merchant", "card_last4", "bank",
	"occurred_at", "paid", "raw_message", "created_at",
}

type TransactionsTable struct {
	exec bob.Executor
}

func NewTransactionsTable(db *sql.DB) *TransactionsTable {
	return &TransactionsTable{exec: bob.NewDB(db)}
}

// NewTransactionsTableExec binds the table to an arbitrary executor,
// typically a transaction held by the storage writer.
func NewTransactionsTableExec(exec bob.Executor) *TransactionsTable {
	return &TransactionsTable{exec: exec}
}

// FindByID retrieves a transaction by primary key.
func (t *TransactionsTable) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	q := psql.Select(
		sm.Columns(columnExprs()...),
		sm.From(transactionsName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	return bob.One(ctx, t.exec, q, scan.StructMapper[*Transaction]())
}

// Insert records a new transaction and returns its generated ID.
func (t *TransactionsTable) Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error) {
	occurredAt := create.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	q := psql.Insert(
		im.Into(transactionsName, "amount", "merchant", "card_last4", "bank", "occurred_at", "raw_message"),
		im.Values(psql.Arg(
			create.Amount,
			create.Merchant,
			create.CardLast4,
			create.Bank,
			occurredAt,
			create.RawMessage,
		)),
		im.Returning("id"),
	)
	return bob.One(ctx, t.exec, q, scan.SingleColumnMapper[uuid.UUID])
}

// List returns transactions matching the filter, newest first. Callers ask
// for limit+1 rows to detect a next page; this method passes the limit
// through untouched.
func (t *TransactionsTable) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columnExprs()...),
		sm.From(transactionsName),
	}
	if filter != nil {
		if filter.UnpaidOnly {
			queryMods = append(queryMods, sm.Where(psql.Quote("paid").EQ(psql.Arg(false))))
		}
		if filter.MaxCreationTime != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("created_at").LTE(psql.Arg(*filter.MaxCreationTime))))
		}
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit+1))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("created_at")).Desc(),
		sm.OrderBy(psql.Quote("id")).Desc(),
	)

	q := psql.Select(queryMods...)
	return bob.All(ctx, t.exec, q, scan.StructMapper[*Transaction]())
}

// MarkPaid flips the paid flag on a single transaction.
func (t *TransactionsTable) MarkPaid(ctx context.Context, id uuid.UUID) error {
	q := psql.Update(
		um.Table(transactionsName),
		um.SetCol("paid").ToArg(true),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return err
}

// MarkAllPaid flips the paid flag on every unpaid transaction and reports how
// many rows changed.
func (t *TransactionsTable) MarkAllPaid(ctx context.Context) (int64, error) {
	q := psql.Update(
		um.Table(transactionsName),
		um.SetCol("paid").ToArg(true),
		um.Where(psql.Quote("paid").EQ(psql.Arg(false))),
	)
	result, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// SumUnpaid returns the total amount still owed on card.
func (t *TransactionsTable) SumUnpaid(ctx context.Context) (decimal.Decimal, error) {
	q := psql.Select(
		sm.Columns(psql.Raw("COALESCE(SUM(amount), 0)")),
		sm.From(transactionsName),
		sm.Where(psql.Quote("paid").EQ(psql.Arg(false))),
	)
	return bob.One(ctx, t.exec, q, scan.SingleColumnMapper[decimal.Decimal])
}

// SumSpentSince returns the total spent on or after the given time,
// regardless of paid status.
func (t *TransactionsTable) SumSpentSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	q := psql.Select(
		sm.Columns(psql.Raw("COALESCE(SUM(amount), 0)")),
		sm.From(transactionsName),
		sm.Where(psql.Quote("occurred_at").GTE(psql.Arg(since))),
	)
	return bob.One(ctx, t.exec, q, scan.SingleColumnMapper[decimal.Decimal])
}

func columnExprs() []any {
	exprs := make([]any, len(transactionColumns))
	for i, c := range transactionColumns {
		exprs[i] = psql.Quote(c)
	}
	return exprs
}
