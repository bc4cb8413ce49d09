package transaction

import (
	"context"

	"github.com/ledgerline/books-server/internal/books"
	"github.com/ledgerline/books-server/internal/model"
)

// transactionService is the slice of the service layer these handlers use.
type transactionService interface {
	Create(ctx context.Context, input books.CreateTransactionInput) (*model.Transaction, error)
	SetStatus(ctx context.Context, typ model.TransactionType, id int64, status model.TransactionStatus) error
	Delete(ctx context.Context, typ model.TransactionType, id int64) error
	List(typ model.TransactionType) []model.Transaction
}
