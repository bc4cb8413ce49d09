package liability

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

// CreateLiabilityBody is the request body for creating a liability.
type CreateLiabilityBody struct {
	Category       string `json:"category" required:"true" doc:"Liability category"`
	CustomCategory string `json:"customCategory,omitempty" doc:"Label when category is custom"`
	Description    string `json:"description,omitempty" doc:"Free-form description"`
	TotalAmount    string `json:"totalAmount" required:"true" doc:"Decimal total amount"`
	DueDate        string `json:"dueDate,omitempty" doc:"YYYY-MM-DD due date"`
	Recurring      bool   `json:"recurring,omitempty" doc:"Repeats every period"`
}

// CreateLiabilityInput is the Huma input for creating a liability.
type CreateLiabilityInput struct {
	Body CreateLiabilityBody
}

// CreateLiabilityOutput is the Huma output for creating a liability.
type CreateLiabilityOutput struct {
	Body model.Liability
}

// CreateLiabilityHandler handles POST /v1/liabilities.
type CreateLiabilityHandler struct {
	Service liabilityService
}

// NewCreateLiabilityHandler creates a new CreateLiabilityHandler.
func NewCreateLiabilityHandler(svc liabilityService) *CreateLiabilityHandler {
	return &CreateLiabilityHandler{Service: svc}
}

// Register registers the create liability endpoint with the Huma API.
func (h *CreateLiabilityHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-liability",
		Method:        http.MethodPost,
		Path:          "/v1/liabilities",
		Summary:       "Create liability",
		Tags:          []string{"Liabilities"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateLiabilityHandler) handle(ctx context.Context, input *CreateLiabilityInput) (*CreateLiabilityOutput, error) {
	total, err := decimal.NewFromString(input.Body.TotalAmount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid totalAmount", err)
	}

	serviceInput := books.CreateLiabilityInput{
		Category:       model.LiabilityCategory(input.Body.Category),
		CustomCategory: input.Body.CustomCategory,
		Description:    input.Body.Description,
		TotalAmount:    total,
		Recurring:      input.Body.Recurring,
	}
	if input.Body.DueDate != "" {
		dueDate, err := time.Parse(dateLayout, input.Body.DueDate)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid dueDate", err)
		}
		serviceInput.DueDate = &dueDate
	}

	row, err := h.Service.Create(ctx, serviceInput)
	if err != nil {
		return nil, httperr.Map(err, "failed to create liability")
	}
	return &CreateLiabilityOutput{Body: *row}, nil
}
