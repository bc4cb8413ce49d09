package payment

import (
	"context"

	"github.com/ledgerline/books-server/internal/books"
	"github.com/ledgerline/books-server/internal/model"
)

// paymentService is the slice of the service layer these handlers use.
type paymentService interface {
	Record(ctx context.Context, input books.RecordPaymentInput) (*model.Payment, error)
	Delete(ctx context.Context, paymentID int64) error
	List() []model.Payment
}
