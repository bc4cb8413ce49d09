package liability

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ledgerline/books-server/internal/model"
)

// ListLiabilitiesOutput is the Huma output for listing liabilities.
type ListLiabilitiesOutput struct {
	Body struct {
		Liabilities []model.Liability `json:"liabilities"`
	}
}

// ListLiabilitiesHandler handles GET /v1/liabilities.
type ListLiabilitiesHandler struct {
	Service liabilityService
}

// NewListLiabilitiesHandler creates a new ListLiabilitiesHandler.
func NewListLiabilitiesHandler(svc liabilityService) *ListLiabilitiesHandler {
	return &ListLiabilitiesHandler{Service: svc}
}

// Register registers the list liabilities endpoint with the Huma API.
func (h *ListLiabilitiesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-liabilities",
		Method:      http.MethodGet,
		Path:        "/v1/liabilities",
		Summary:     "List liabilities",
		Tags:        []string{"Liabilities"},
	}, h.handle)
}

func (h *ListLiabilitiesHandler) handle(_ context.Context, _ *struct{}) (*ListLiabilitiesOutput, error) {
	out := &ListLiabilitiesOutput{}
	out.Body.Liabilities = h.Service.List()
	return out, nil
}
