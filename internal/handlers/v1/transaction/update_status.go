package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ledgerline/books-server/internal/handlers/v1/httperr"
	"github.com/ledgerline/books-server/internal/model"
)

// UpdateStatusInput moves a transaction to a new workflow status.
type UpdateStatusInput struct {
	Type string `path:"type" enum:"client,supplier" doc:"Transaction ledger"`
	ID   int64  `path:"id" doc:"Transaction id"`
	Body struct {
		Status string `json:"status" required:"true" enum:"not_started,invoice,paused,paid,done" doc:"New status"`
	}
}

// UpdateStatusOutput is the Huma output for a status update.
type UpdateStatusOutput struct {
	Status int
}

// UpdateStatusHandler handles PUT /v1/transactions/{type}/{id}/status.
type UpdateStatusHandler struct {
	Service transactionService
}

// NewUpdateStatusHandler creates a new UpdateStatusHandler.
func NewUpdateStatusHandler(svc transactionService) *UpdateStatusHandler {
	return &UpdateStatusHandler{Service: svc}
}

// Register registers the status update endpoint with the Huma API.
func (h *UpdateStatusHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "update-transaction-status",
		Method:        http.MethodPut,
		Path:          "/v1/transactions/{type}/{id}/status",
		Summary:       "Update transaction status",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *UpdateStatusHandler) handle(ctx context.Context, input *UpdateStatusInput) (*UpdateStatusOutput, error) {
	err := h.Service.SetStatus(ctx,
		model.TransactionType(input.Type), input.ID,
		model.TransactionStatus(input.Body.Status))
	if err != nil {
		return nil, httperr.Map(err, "failed to update status")
	}
	return &UpdateStatusOutput{Status: http.StatusNoContent}, nil
}
