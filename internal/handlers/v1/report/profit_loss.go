package report

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ledgerline/books-server/internal/report"
)

// ProfitLossInput selects the grouping and, for custom granularity, the range.
type ProfitLossInput struct {
	Granularity string `query:"granularity" enum:"monthly,quarterly,yearly,custom" default:"monthly" doc:"How to group periods"`
	From        string `query:"from" doc:"YYYY-MM-DD, required for custom granularity"`
	To          string `query:"to" doc:"YYYY-MM-DD, required for custom granularity"`
}

// ProfitLossOutput is the Huma output for the profit and loss statement.
type ProfitLossOutput struct {
	Body struct {
		Periods []report.PLPeriod `json:"periods"`
	}
}

// ProfitLossHandler handles GET /v1/reports/profit-loss.
type ProfitLossHandler struct {
	Service reportService
}

// NewProfitLossHandler creates a new ProfitLossHandler.
func NewProfitLossHandler(svc reportService) *ProfitLossHandler {
	return &ProfitLossHandler{Service: svc}
}

// Register registers the profit and loss endpoint with the Huma API.
func (h *ProfitLossHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "profit-loss-report",
		Method:      http.MethodGet,
		Path:        "/v1/reports/profit-loss",
		Summary:     "Profit and loss statement",
		Tags:        []string{"Reports"},
	}, h.handle)
}

func (h *ProfitLossHandler) handle(_ context.Context, input *ProfitLossInput) (*ProfitLossOutput, error) {
	g := report.Granularity(input.Granularity)
	if !g.Valid() {
		return nil, huma.NewError(http.StatusBadRequest, "unknown granularity")
	}

	var rng *report.PLRange
	if g == report.Custom {
		if input.From == "" || input.To == "" {
			return nil, huma.NewError(http.StatusBadRequest, "custom granularity requires from and to")
		}
		from, err := time.Parse(dateLayout, input.From)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid from date", err)
		}
		to, err := time.Parse(dateLayout, input.To)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid to date", err)
		}
		if to.Before(from) {
			return nil, huma.NewError(http.StatusBadRequest, "to must not be before from")
		}
		rng = &report.PLRange{From: from, To: to}
	}

	out := &ProfitLossOutput{}
	out.Body.Periods = h.Service.ProfitLoss(g, rng)
	return out, nil
}
