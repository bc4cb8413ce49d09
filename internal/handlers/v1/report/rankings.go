package report

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ledgerline/books-server/internal/model"
	"github.com/ledgerline/books-server/internal/report"
)

// RankingInput selects which ledger to rank over.
type RankingInput struct {
	Type string `query:"type" enum:"client,supplier" required:"true" doc:"Ledger to rank over"`
}

// RankingOutput is the Huma output for the ranking reports.
type RankingOutput struct {
	Body struct {
		Entries []report.RankedEntry `json:"entries"`
	}
}

// TopCounterpartsHandler handles GET /v1/reports/top-counterparts.
type TopCounterpartsHandler struct {
	Service reportService
}

// NewTopCounterpartsHandler creates a new TopCounterpartsHandler.
func NewTopCounterpartsHandler(svc reportService) *TopCounterpartsHandler {
	return &TopCounterpartsHandler{Service: svc}
}

// Register registers the top counterparts endpoint with the Huma API.
func (h *TopCounterpartsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "top-counterparts-report",
		Method:      http.MethodGet,
		Path:        "/v1/reports/top-counterparts",
		Summary:     "Top counterparts by volume",
		Tags:        []string{"Reports"},
	}, h.handle)
}

func (h *TopCounterpartsHandler) handle(_ context.Context, input *RankingInput) (*RankingOutput, error) {
	typ := model.TransactionType(input.Type)
	if !typ.Valid() {
		return nil, huma.NewError(http.StatusBadRequest, "unknown transaction type")
	}
	out := &RankingOutput{}
	out.Body.Entries = h.Service.TopCounterparts(typ)
	return out, nil
}

// TopProductsHandler handles GET /v1/reports/top-products.
type TopProductsHandler struct {
	Service reportService
}

// NewTopProductsHandler creates a new TopProductsHandler.
func NewTopProductsHandler(svc reportService) *TopProductsHandler {
	return &TopProductsHandler{Service: svc}
}

// Register registers the top products endpoint with the Huma API.
func (h *TopProductsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "top-products-report",
		Method:      http.MethodGet,
		Path:        "/v1/reports/top-products",
		Summary:     "Top products by volume",
		Tags:        []string{"Reports"},
	}, h.handle)
}

func (h *TopProductsHandler) handle(_ context.Context, input *RankingInput) (*RankingOutput, error) {
	typ := model.TransactionType(input.Type)
	if !typ.Valid() {
		return nil, huma.NewError(http.StatusBadRequest, "unknown transaction type")
	}
	out := &RankingOutput{}
	out.Body.Entries = h.Service.TopProducts(typ)
	return out, nil
}
