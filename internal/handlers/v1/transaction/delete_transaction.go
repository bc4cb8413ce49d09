package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ledgerline/books-server/internal/handlers/v1/httperr"
	"github.com/ledgerline/books-server/internal/model"
)

// DeleteTransactionInput identifies the transaction by ledger and id.
type DeleteTransactionInput struct {
	Type string `path:"type" enum:"client,supplier" doc:"Transaction ledger"`
	ID   int64  `path:"id" doc:"Transaction id"`
}

// DeleteTransactionOutput is the Huma output for deleting a transaction.
type DeleteTransactionOutput struct {
	Status int
}

// DeleteTransactionHandler handles DELETE /v1/transactions/{type}/{id}.
type DeleteTransactionHandler struct {
	Service transactionService
}

// NewDeleteTransactionHandler creates a new DeleteTransactionHandler.
func NewDeleteTransactionHandler(svc transactionService) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{Service: svc}
}

// Register registers the delete transaction endpoint with the Huma API.
func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-transaction",
		Method:        http.MethodDelete,
		Path:          "/v1/transactions/{type}/{id}",
		Summary:       "Delete transaction",
		Description:   "Deletes a transaction and its payments, payments first.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	err := h.Service.Delete(ctx, model.TransactionType(input.Type), input.ID)
	if err != nil {
		return nil, httperr.Map(err, "failed to delete transaction")
	}
	return &DeleteTransactionOutput{Status: http.StatusNoContent}, nil
}
