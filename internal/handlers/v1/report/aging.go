package report

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ledgerline/books-server/internal/model"
	"github.com/ledgerline/books-server/internal/report"
)

// AgingInput selects which ledger to bucket.
type AgingInput struct {
	Type string `query:"type" enum:"client,supplier" required:"true" doc:"Ledger to bucket: client receivables or supplier payables"`
}

// AgingOutput is the Huma output for the aging report.
type AgingOutput struct {
	Body report.AgingReport
}

// AgingHandler handles GET /v1/reports/aging.
type AgingHandler struct {
	Service reportService
}

// NewAgingHandler creates a new AgingHandler.
func NewAgingHandler(svc reportService) *AgingHandler {
	return &AgingHandler{Service: svc}
}

// Register registers the aging report endpoint with the Huma API.
func (h *AgingHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "aging-report",
		Method:      http.MethodGet,
		Path:        "/v1/reports/aging",
		Summary:     "Aging report",
		Description: "Buckets outstanding balances by days past due as of today.",
		Tags:        []string{"Reports"},
	}, h.handle)
}

func (h *AgingHandler) handle(_ context.Context, input *AgingInput) (*AgingOutput, error) {
	typ := model.TransactionType(input.Type)
	if !typ.Valid() {
		return nil, huma.NewError(http.StatusBadRequest, "unknown transaction type")
	}
	return &AgingOutput{Body: h.Service.Aging(typ, time.Now())}, nil
}
