package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ledgerline/books-server/internal/model"
)

// ListTransactionsInput selects which ledger to list.
type ListTransactionsInput struct {
	Type string `query:"type" enum:"client,supplier" default:"client" doc:"Transaction ledger"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body struct {
		Transactions []model.Transaction `json:"transactions"`
	}
}

// ListTransactionsHandler handles GET /v1/transactions. It serves straight
// from the cache; the change stream keeps the cache current.
type ListTransactionsHandler struct {
	Service transactionService
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionService) *ListTransactionsHandler {
	return &ListTransactionsHandler{Service: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/transactions",
		Summary:     "List transactions",
		Description: "Lists the cached transactions of one ledger, newest first.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *ListTransactionsHandler) handle(_ context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	out := &ListTransactionsOutput{}
	out.Body.Transactions = h.Service.List(model.TransactionType(input.Type))
	return out, nil
}
