package transaction

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

// dateLayout is the wire format for bookkeeping dates; they carry no time of
// day.
const dateLayout = "2006-01-02"

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	Type            string `json:"type" required:"true" enum:"client,supplier" doc:"Transaction ledger"`
	CounterpartName string `json:"counterpartName" required:"true" minLength:"1" doc:"Client or supplier name, created on demand"`
	ProductName     string `json:"productName" required:"true" minLength:"1" doc:"Product name, created on demand"`
	Quantity        int64  `json:"quantity" required:"true" minimum:"1" doc:"Units bought or sold"`
	UnitPrice       string `json:"unitPrice" required:"true" doc:"Decimal unit price"`
	TransactionDate string `json:"transactionDate,omitempty" doc:"YYYY-MM-DD, defaults to today"`
	DueDate         string `json:"dueDate,omitempty" doc:"YYYY-MM-DD payment due date"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Body model.Transaction
}

// CreateTransactionHandler handles POST /v1/transactions.
type CreateTransactionHandler struct {
	Service transactionService
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionService) *CreateTransactionHandler {
	return &CreateTransactionHandler{Service: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/v1/transactions",
		Summary:       "Create transaction",
		Description:   "Creates a client or supplier transaction, resolving counterpart and product by name.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	serviceInput, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, err.Error())
	}

	row, err := h.Service.Create(ctx, *serviceInput)
	if err != nil {
		return nil, httperr.Map(err, "failed to create transaction")
	}
	return &CreateTransactionOutput{Body: *row}, nil
}

func parseCreateTransactionInput(input *CreateTransactionInput) (*books.CreateTransactionInput, error) {
	unitPrice, err := decimal.NewFromString(input.Body.UnitPrice)
	if err != nil {
		return nil, err
	}

	out := &books.CreateTransactionInput{
		Type:            model.TransactionType(input.Body.Type),
		CounterpartName: input.Body.CounterpartName,
		ProductName:     input.Body.ProductName,
		Quantity:        input.Body.Quantity,
		UnitPrice:       unitPrice,
	}

	if input.Body.TransactionDate != "" {
		out.Date, err = time.Parse(dateLayout, input.Body.TransactionDate)
		if err != nil {
			return nil, err
		}
	}
	if input.Body.DueDate != "" {
		dueDate, err := time.Parse(dateLayout, input.Body.DueDate)
		if err != nil {
			return nil, err
		}
		out.DueDate = &dueDate
	}
	return out, nil
}
