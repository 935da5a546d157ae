package payment

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/creditguard/ledger-server/internal/logging"
)

// InitiatePaymentBody is the request body for initiating a repayment.
type InitiatePaymentBody struct {
	Amount         string   `json:"amount" required:"true" doc:"Decimal repayment amount in rupees"`
	TransactionIDs []string `json:"transactionIDs" required:"true" doc:"UUIDs of the transactions this repayment covers"`
	Note           string   `json:"note" doc:"UPI transaction note, defaults to a repayment note"`
}

// InitiatePaymentInput is the Huma input for initiating a repayment.
type InitiatePaymentInput struct {
	Body InitiatePaymentBody
}

// InitiatePaymentResponseBody carries the payment URI for the client to open.
type InitiatePaymentResponseBody struct {
	PaymentURI string `json:"paymentURI" doc:"upi://pay deep link"`
}

// InitiatePaymentOutput is the Huma output for initiating a repayment.
type InitiatePaymentOutput struct {
	Body InitiatePaymentResponseBody
}

// paymentInitiator is the interface for building the payment URI and arming
// the reconciliation matcher.
type paymentInitiator interface {
	InitiatePayment(ctx context.Context, amount decimal.Decimal, txIDs []uuid.UUID, note string) (string, error)
}

// InitiatePaymentHandler handles POST /v1/payment.
type InitiatePaymentHandler struct {
	PaymentService paymentInitiator
}

// NewInitiatePaymentHandler creates a new InitiatePaymentHandler.
func NewInitiatePaymentHandler(svc paymentInitiator) *InitiatePaymentHandler {
	return &InitiatePaymentHandler{PaymentService: svc}
}

// Register registers the initiate payment endpoint with the Huma API.
func (h *InitiatePaymentHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "initiate-payment",
		Method:      http.MethodPost,
		Path:        "/v1/payment",
		Summary:     "Initiate payment",
		Description: "Builds a upi://pay URI for the repayment and arms the reconciliation matcher.",
		Tags:        []string{"Payments"},
	}, h.handle)
}

func (h *InitiatePaymentHandler) handle(ctx context.Context, input *InitiatePaymentInput) (*InitiatePaymentOutput, error) {
	logData := logging.GetLogData(ctx)

	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	txIDs := make([]uuid.UUID, len(input.Body.TransactionIDs))
	for i, raw := range input.Body.TransactionIDs {
		id, err := uuid.FromString(raw)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid transaction id", err)
		}
		txIDs[i] = id
	}

	uri, err := h.PaymentService.InitiatePayment(ctx, amount, txIDs, input.Body.Note)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "failed to initiate payment", err)
	}

	if logData != nil {
		logData.AddData("transactionCount", len(txIDs))
	}

	return &InitiatePaymentOutput{Body: InitiatePaymentResponseBody{PaymentURI: uri}}, nil
}
