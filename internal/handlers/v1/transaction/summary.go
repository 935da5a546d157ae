package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/creditguard/ledger-server/internal/logging"
	"github.com/creditguard/ledger-server/internal/service"
)

// SummaryInput is the Huma input for the spend summary.
type SummaryInput struct {
	Since string `query:"since" doc:"RFC3339 lower bound for the spend total, defaults to the start of the current month"`
}

// SummaryResponseBody aggregates the ledger for the dashboard.
type SummaryResponseBody struct {
	TotalUnpaid     string `json:"totalUnpaid" doc:"Outstanding unpaid balance"`
	TotalSpentSince string `json:"totalSpentSince" doc:"Total spend since the given time"`
	Since           string `json:"since" doc:"RFC3339 lower bound the spend total covers"`
}

// SummaryOutput is the Huma output for the spend summary.
type SummaryOutput struct {
	Body SummaryResponseBody
}

// summarizer is the interface for aggregating the ledger.
type summarizer interface {
	Summary(ctx context.Context, since time.Time) (*service.SpendSummary, error)
}

// SummaryHandler handles GET /v1/transaction/summary.
type SummaryHandler struct {
	TransactionService summarizer
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(svc summarizer) *SummaryHandler {
	return &SummaryHandler{TransactionService: svc}
}

// Register registers the summary endpoint with the Huma API.
func (h *SummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "transaction-summary",
		Method:      http.MethodGet,
		Path:        "/v1/transaction/summary",
		Summary:     "Spend summary",
		Description: "Returns the outstanding balance and recent spend total.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *SummaryHandler) handle(ctx context.Context, input *SummaryInput) (*SummaryOutput, error) {
	logData := logging.GetLogData(ctx)

	now := time.Now()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if input.Since != "" {
		parsed, err := time.Parse(time.RFC3339, input.Since)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid since", err)
		}
		since = parsed
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("summaryMs")
	}
	summary, err := h.TransactionService.Summary(ctx, since)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to compute summary", err)
	}

	return &SummaryOutput{Body: SummaryResponseBody{
		TotalUnpaid:     summary.TotalUnpaid.String(),
		TotalSpentSince: summary.TotalSpentSince.String(),
		Since:           summary.Since.Format(time.RFC3339),
	}}, nil
}
