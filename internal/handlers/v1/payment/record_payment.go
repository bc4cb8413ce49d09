package payment

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/ledgerline/books-server/internal/books"
	"github.com/ledgerline/books-server/internal/handlers/v1/httperr"
	"github.com/ledgerline/books-server/internal/model"
)

const dateLayout = "2006-01-02"

// RecordPaymentBody names the parent by ledger and id; the two transaction
// tables share an id namespace, so both are required.
type RecordPaymentBody struct {
	TransactionType string `json:"transactionType" required:"true" enum:"client,supplier" doc:"Parent transaction ledger"`
	TransactionID   int64  `json:"transactionID" required:"true" doc:"Parent transaction id"`
	Amount          string `json:"amount" required:"true" doc:"Decimal payment amount"`
	PaymentDate     string `json:"paymentDate,omitempty" doc:"YYYY-MM-DD, defaults to today"`
}

// RecordPaymentInput is the Huma input for recording a payment.
type RecordPaymentInput struct {
	Body RecordPaymentBody
}

// RecordPaymentOutput is the Huma output for recording a payment.
type RecordPaymentOutput struct {
	Body model.Payment
}

// RecordPaymentHandler handles POST /v1/payments.
type RecordPaymentHandler struct {
	Service paymentService
}

// NewRecordPaymentHandler creates a new RecordPaymentHandler.
func NewRecordPaymentHandler(svc paymentService) *RecordPaymentHandler {
	return &RecordPaymentHandler{Service: svc}
}

// Register registers the record payment endpoint with the Huma API.
func (h *RecordPaymentHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "record-payment",
		Method:        http.MethodPost,
		Path:          "/v1/payments",
		Summary:       "Record payment",
		Description:   "Records a payment against a transaction and updates its paid and remaining amounts together.",
		Tags:          []string{"Payments"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *RecordPaymentHandler) handle(ctx context.Context, input *RecordPaymentInput) (*RecordPaymentOutput, error) {
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	serviceInput := books.RecordPaymentInput{
		TransactionType: model.TransactionType(input.Body.TransactionType),
		TransactionID:   input.Body.TransactionID,
		Amount:          amount,
	}
	if input.Body.PaymentDate != "" {
		serviceInput.Date, err = time.Parse(dateLayout, input.Body.PaymentDate)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid paymentDate", err)
		}
	}

	payment, err := h.Service.Record(ctx, serviceInput)
	if err != nil {
		return nil, httperr.Map(err, "failed to record payment")
	}
	return &RecordPaymentOutput{Body: *payment}, nil
}
