package transaction

import (
	"context"

	"github.com/creditguard/ledger-server/internal/operator/actions"
)

// Transaction is the API response model for a captured spend.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID         string `json:"id" doc:"Transaction UUID"`
	Amount     string `json:"amount" doc:"Decimal amount in rupees"`
	Merchant   string `json:"merchant" doc:"Merchant name, Unknown when not extracted"`
	CardLast4  string `json:"cardLast4" doc:"Last four card digits, **** when not extracted"`
	Bank       string `json:"bank" doc:"Issuing bank keyword"`
	OccurredAt string `json:"occurredAt" doc:"RFC3339 spend time"`
	Paid       bool   `json:"paid" doc:"Whether the spend has been settled"`
	CreatedAt  string `json:"createdAt" doc:"RFC3339 row creation time"`
}

// actionProcessor enqueues a write action and waits for it to be applied.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}
