package report

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ledgerline/books-server/internal/report"
)

// InventoryOutput is the Huma output for the inventory report.
type InventoryOutput struct {
	Body struct {
		Positions []report.InventoryPosition `json:"positions"`
	}
}

// InventoryHandler handles GET /v1/reports/inventory.
type InventoryHandler struct {
	Service reportService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(svc reportService) *InventoryHandler {
	return &InventoryHandler{Service: svc}
}

// Register registers the inventory report endpoint with the Huma API.
func (h *InventoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "inventory-report",
		Method:      http.MethodGet,
		Path:        "/v1/reports/inventory",
		Summary:     "Inventory positions",
		Description: "Per-product stock and weighted average prices derived from both ledgers.",
		Tags:        []string{"Reports"},
	}, h.handle)
}

func (h *InventoryHandler) handle(_ context.Context, _ *struct{}) (*InventoryOutput, error) {
	out := &InventoryOutput{}
	out.Body.Positions = h.Service.Inventory()
	return out, nil
}
