package payment

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ledgerline/books-server/internal/handlers/v1/httperr"
)

// DeletePaymentInput identifies the payment to delete.
type DeletePaymentInput struct {
	ID int64 `path:"id" doc:"Payment id"`
}

// DeletePaymentOutput is the Huma output for deleting a payment.
type DeletePaymentOutput struct {
	Status int
}

// DeletePaymentHandler handles DELETE /v1/payments/{id}.
type DeletePaymentHandler struct {
	Service paymentService
}

// NewDeletePaymentHandler creates a new DeletePaymentHandler.
func NewDeletePaymentHandler(svc paymentService) *DeletePaymentHandler {
	return &DeletePaymentHandler{Service: svc}
}

// Register registers the delete payment endpoint with the Huma API.
func (h *DeletePaymentHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-payment",
		Method:        http.MethodDelete,
		Path:          "/v1/payments/{id}",
		Summary:       "Delete payment",
		Description:   "Deletes a payment and subtracts its amount from the parent transaction, flooring paid at zero.",
		Tags:          []string{"Payments"},
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *DeletePaymentHandler) handle(ctx context.Context, input *DeletePaymentInput) (*DeletePaymentOutput, error) {
	if err := h.Service.Delete(ctx, input.ID); err != nil {
		return nil, httperr.Map(err, "failed to delete payment")
	}
	return &DeletePaymentOutput{Status: http.StatusNoContent}, nil
}
