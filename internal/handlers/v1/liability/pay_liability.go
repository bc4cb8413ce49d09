package liability

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/ledgerline/books-server/internal/handlers/v1/httperr"
	"github.com/ledgerline/books-server/internal/model"
)

// PayLiabilityInput records a payment against a liability.
type PayLiabilityInput struct {
	ID   int64 `path:"id" doc:"Liability id"`
	Body struct {
		Amount      string `json:"amount" required:"true" doc:"Decimal payment amount"`
		PaymentDate string `json:"paymentDate,omitempty" doc:"YYYY-MM-DD, defaults to today"`
	}
}

// PayLiabilityOutput is the Huma output for paying a liability.
type PayLiabilityOutput struct {
	Body model.LiabilityPayment
}

// PayLiabilityHandler handles POST /v1/liabilities/{id}/payments.
type PayLiabilityHandler struct {
	Service liabilityService
}

// NewPayLiabilityHandler creates a new PayLiabilityHandler.
func NewPayLiabilityHandler(svc liabilityService) *PayLiabilityHandler {
	return &PayLiabilityHandler{Service: svc}
}

// Register registers the pay liability endpoint with the Huma API.
func (h *PayLiabilityHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "pay-liability",
		Method:        http.MethodPost,
		Path:          "/v1/liabilities/{id}/payments",
		Summary:       "Pay liability",
		Tags:          []string{"Liabilities"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *PayLiabilityHandler) handle(ctx context.Context, input *PayLiabilityInput) (*PayLiabilityOutput, error) {
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	var date time.Time
	if input.Body.PaymentDate != "" {
		date, err = time.Parse(dateLayout, input.Body.PaymentDate)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid paymentDate", err)
		}
	}

	payment, err := h.Service.Pay(ctx, input.ID, amount, date)
	if err != nil {
		return nil, httperr.Map(err, "failed to pay liability")
	}
	return &PayLiabilityOutput{Body: *payment}, nil
}
