package liability

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/books-server/internal/books"
	"github.com/ledgerline/books-server/internal/model"
)

const dateLayout = "2006-01-02"

// liabilityService is the slice of the service layer these handlers use.
type liabilityService interface {
	Create(ctx context.Context, input books.CreateLiabilityInput) (*model.Liability, error)
	Pay(ctx context.Context, liabilityID int64, amount decimal.Decimal, date time.Time) (*model.LiabilityPayment, error)
	DeletePayment(ctx context.Context, paymentID int64) error
	Delete(ctx context.Context, liabilityID int64) error
	List() []model.Liability
}
