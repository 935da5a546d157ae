package transaction

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/creditguard/ledger-server/internal/operator/actions"
	"github.com/creditguard/ledger-server/internal/service"
)

// transactionGetter is the interface for fetching a single transaction.
type transactionGetter interface {
	GetTransaction(ctx context.Context, id uuid.UUID) (*service.Transaction, error)
}

// MarkPaidInput is the Huma input for settling a single transaction.
type MarkPaidInput struct {
	ID string `path:"id" doc:"Transaction UUID"`
}

// MarkPaidOutput is the Huma output for settling a single transaction.
type MarkPaidOutput struct {
	Status int `json:"status" doc:"HTTP status"`
}

// MarkPaidHandler handles POST /v1/transaction/{id}/paid.
type MarkPaidHandler struct {
	TransactionService transactionGetter
	Operator           actionProcessor
}

// NewMarkPaidHandler creates a new MarkPaidHandler.
func NewMarkPaidHandler(svc transactionGetter, op actionProcessor) *MarkPaidHandler {
	return &MarkPaidHandler{TransactionService: svc, Operator: op}
}

// Register registers the mark paid endpoint with the Huma API.
func (h *MarkPaidHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "mark-transaction-paid",
		Method:      http.MethodPost,
		Path:        "/v1/transaction/{id}/paid",
		Summary:     "Mark transaction paid",
		Description: "Marks a single transaction as settled.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *MarkPaidHandler) handle(ctx context.Context, input *MarkPaidInput) (*MarkPaidOutput, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid transaction id", err)
	}

	if _, err := h.TransactionService.GetTransaction(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, huma.NewError(http.StatusNotFound, "transaction not found", err)
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to load transaction", err)
	}

	action := &actions.MarkTransactionsPaid{IDs: []uuid.UUID{id}}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to mark transaction paid", err)
	}

	return &MarkPaidOutput{Status: http.StatusOK}, nil
}

// MarkAllPaidInput is the Huma input for settling every unpaid transaction.
type MarkAllPaidInput struct{}

// MarkAllPaidResponseBody reports how many transactions were settled.
type MarkAllPaidResponseBody struct {
	Marked int64 `json:"marked" doc:"Number of transactions settled"`
}

// MarkAllPaidOutput is the Huma output for settling every unpaid transaction.
type MarkAllPaidOutput struct {
	Body MarkAllPaidResponseBody
}

// MarkAllPaidHandler handles POST /v1/transaction/paid.
type MarkAllPaidHandler struct {
	Operator actionProcessor
}

// NewMarkAllPaidHandler creates a new MarkAllPaidHandler.
func NewMarkAllPaidHandler(op actionProcessor) *MarkAllPaidHandler {
	return &MarkAllPaidHandler{Operator: op}
}

// Register registers the mark all paid endpoint with the Huma API.
func (h *MarkAllPaidHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "mark-all-transactions-paid",
		Method:      http.MethodPost,
		Path:        "/v1/transaction/paid",
		Summary:     "Mark all transactions paid",
		Description: "Marks every unpaid transaction as settled.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *MarkAllPaidHandler) handle(ctx context.Context, _ *MarkAllPaidInput) (*MarkAllPaidOutput, error) {
	action := &actions.MarkAllPaid{}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to mark transactions paid", err)
	}

	return &MarkAllPaidOutput{Body: MarkAllPaidResponseBody{Marked: action.Count}}, nil
}
