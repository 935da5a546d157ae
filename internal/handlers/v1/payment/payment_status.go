package payment

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/creditguard/ledger-server/internal/reconcile"
)

// PaymentStatusInput is the Huma input for polling the reconciliation outcome.
type PaymentStatusInput struct{}

// PaymentStatusResponseBody reports whether a pending payment has settled.
// The matched flag is consumed by the read: a second poll reports false.
type PaymentStatusResponseBody struct {
	Matched      bool   `json:"matched" doc:"Whether a debit confirmation settled the pending payment"`
	Amount       string `json:"amount,omitempty" doc:"Debited decimal amount, when matched"`
	MatchedCount int    `json:"matchedCount,omitempty" doc:"Transactions settled, when matched"`
}

// PaymentStatusOutput is the Huma output for polling the reconciliation outcome.
type PaymentStatusOutput struct {
	Body PaymentStatusResponseBody
}

// statusReader is the interface for the one-shot reconciliation outcome.
type statusReader interface {
	Status() (reconcile.Outcome, bool)
}

// PaymentStatusHandler handles GET /v1/payment/status.
type PaymentStatusHandler struct {
	PaymentService statusReader
}

// NewPaymentStatusHandler creates a new PaymentStatusHandler.
func NewPaymentStatusHandler(svc statusReader) *PaymentStatusHandler {
	return &PaymentStatusHandler{PaymentService: svc}
}

// Register registers the payment status endpoint with the Huma API.
func (h *PaymentStatusHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "payment-status",
		Method:      http.MethodGet,
		Path:        "/v1/payment/status",
		Summary:     "Payment status",
		Description: "Returns the last reconciliation outcome exactly once.",
		Tags:        []string{"Payments"},
	}, h.handle)
}

func (h *PaymentStatusHandler) handle(_ context.Context, _ *PaymentStatusInput) (*PaymentStatusOutput, error) {
	outcome, ok := h.PaymentService.Status()
	if !ok {
		return &PaymentStatusOutput{Body: PaymentStatusResponseBody{Matched: false}}, nil
	}

	return &PaymentStatusOutput{Body: PaymentStatusResponseBody{
		Matched:      true,
		Amount:       outcome.Amount.String(),
		MatchedCount: outcome.Count,
	}}, nil
}
