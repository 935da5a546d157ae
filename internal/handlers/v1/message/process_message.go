package message

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/creditguard/ledger-server/internal/logging"
	"github.com/creditguard/ledger-server/internal/service"
)

// ProcessMessageBody is the request body for submitting a notification message.
type ProcessMessageBody struct {
	Sender     string `json:"sender" required:"true" doc:"SMS sender identifier"`
	Body       string `json:"body" required:"true" doc:"Raw message text"`
	ReceivedAt string `json:"receivedAt" doc:"RFC3339 receive time, defaults to now"`
}

// ProcessMessageInput is the Huma input for submitting a message.
type ProcessMessageInput struct {
	Body ProcessMessageBody
}

// ProcessMessageResponseBody reports what the pipeline did with the message.
type ProcessMessageResponseBody struct {
	Outcome       string `json:"outcome" doc:"One of ignored, transaction_created, payment_matched"`
	TransactionID string `json:"transactionID,omitempty" doc:"UUID of the stored transaction, when one was created"`
	Amount        string `json:"amount,omitempty" doc:"Extracted decimal amount"`
	MatchedCount  int    `json:"matchedCount,omitempty" doc:"Transactions settled by a matched debit"`
}

// ProcessMessageOutput is the Huma output for submitting a message.
type ProcessMessageOutput struct {
	Body ProcessMessageResponseBody
}

// messageProcessor is the interface for running a message through the pipeline.
type messageProcessor interface {
	ProcessMessage(ctx context.Context, sender, body string, receivedAt time.Time) (*service.IngestResult, error)
}

// ProcessMessageHandler handles POST /v1/message.
type ProcessMessageHandler struct {
	IngestService messageProcessor
}

// NewProcessMessageHandler creates a new ProcessMessageHandler.
func NewProcessMessageHandler(svc messageProcessor) *ProcessMessageHandler {
	return &ProcessMessageHandler{IngestService: svc}
}

// Register registers the message endpoint with the Huma API.
func (h *ProcessMessageHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "process-message",
		Method:      http.MethodPost,
		Path:        "/v1/message",
		Summary:     "Process message",
		Description: "Runs a bank notification message through the extraction pipeline.",
		Tags:        []string{"Messages"},
	}, h.handle)
}

func (h *ProcessMessageHandler) handle(ctx context.Context, input *ProcessMessageInput) (*ProcessMessageOutput, error) {
	logData := logging.GetLogData(ctx)

	receivedAt := time.Now()
	if input.Body.ReceivedAt != "" {
		parsed, err := time.Parse(time.RFC3339, input.Body.ReceivedAt)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid receivedAt", err)
		}
		receivedAt = parsed
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("processMessageMs")
	}
	result, err := h.IngestService.ProcessMessage(ctx, input.Body.Sender, input.Body.Body, receivedAt)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to process message", err)
	}

	if logData != nil {
		logData.AddData("outcome", string(result.Outcome))
	}

	resp := ProcessMessageResponseBody{
		Outcome:      string(result.Outcome),
		MatchedCount: result.MatchedCount,
	}
	if !result.TransactionID.IsNil() {
		resp.TransactionID = result.TransactionID.String()
	}
	if result.Outcome != service.OutcomeIgnored {
		resp.Amount = result.Amount.String()
	}

	return &ProcessMessageOutput{Body: resp}, nil
}
