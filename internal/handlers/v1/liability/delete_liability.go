package liability

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ledgerline/books-server/internal/handlers/v1/httperr"
)

// DeleteLiabilityInput identifies the liability to delete.
type DeleteLiabilityInput struct {
	ID int64 `path:"id" doc:"Liability id"`
}

// DeleteLiabilityOutput is the Huma output for deleting a liability.
type DeleteLiabilityOutput struct {
	Status int
}

// DeleteLiabilityHandler handles DELETE /v1/liabilities/{id}.
type DeleteLiabilityHandler struct {
	Service liabilityService
}

// NewDeleteLiabilityHandler creates a new DeleteLiabilityHandler.
func NewDeleteLiabilityHandler(svc liabilityService) *DeleteLiabilityHandler {
	return &DeleteLiabilityHandler{Service: svc}
}

// Register registers the delete liability endpoint with the Huma API.
func (h *DeleteLiabilityHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-liability",
		Method:        http.MethodDelete,
		Path:          "/v1/liabilities/{id}",
		Summary:       "Delete liability",
		Description:   "Deletes a liability and its payments, payments first.",
		Tags:          []string{"Liabilities"},
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *DeleteLiabilityHandler) handle(ctx context.Context, input *DeleteLiabilityInput) (*DeleteLiabilityOutput, error) {
	if err := h.Service.Delete(ctx, input.ID); err != nil {
		return nil, httperr.Map(err, "failed to delete liability")
	}
	return &DeleteLiabilityOutput{Status: http.StatusNoContent}, nil
}

// DeleteLiabilityPaymentInput identifies the liability payment to delete.
type DeleteLiabilityPaymentInput struct {
	ID int64 `path:"id" doc:"Liability payment id"`
}

// DeleteLiabilityPaymentOutput is the Huma output for deleting a liability payment.
type DeleteLiabilityPaymentOutput struct {
	Status int
}

// DeleteLiabilityPaymentHandler handles DELETE /v1/liability-payments/{id}.
type DeleteLiabilityPaymentHandler struct {
	Service liabilityService
}

// NewDeleteLiabilityPaymentHandler creates a new DeleteLiabilityPaymentHandler.
func NewDeleteLiabilityPaymentHandler(svc liabilityService) *DeleteLiabilityPaymentHandler {
	return &DeleteLiabilityPaymentHandler{Service: svc}
}

// Register registers the delete liability payment endpoint with the Huma API.
func (h *DeleteLiabilityPaymentHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-liability-payment",
		Method:        http.MethodDelete,
		Path:          "/v1/liability-payments/{id}",
		Summary:       "Delete liability payment",
		Tags:          []string{"Liabilities"},
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *DeleteLiabilityPaymentHandler) handle(ctx context.Context, input *DeleteLiabilityPaymentInput) (*DeleteLiabilityPaymentOutput, error) {
	if err := h.Service.DeletePayment(ctx, input.ID); err != nil {
		return nil, httperr.Map(err, "failed to delete liability payment")
	}
	return &DeleteLiabilityPaymentOutput{Status: http.StatusNoContent}, nil
}
