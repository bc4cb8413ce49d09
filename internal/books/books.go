// Package books holds the command side of the bookkeeping core. Every
// mutation validates at the boundary, writes to the remote store, and then
// applies the confirmed rows to the local caches through the apply queue
// (the Local phase of the two-phase optimistic protocol). The store's own
// change notification later arrives as a value-equal replace.
package books

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ledgerline/books-server/internal/apply"
	"github.com/ledgerline/books-server/internal/cache"
	"github.com/ledgerline/books-server/internal/store"
)

// ErrValidation marks failures rejected before any remote write was issued.
var ErrValidation = errors.New("validation")

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Services holds all business logic services.
type Services struct {
	Transactions *TransactionService
	Payments     *PaymentService
	Liabilities  *LiabilityService
	Reports      *ReportService
}

// NewServices wires the services to the given store, caches and apply queue.
func NewServices(st *store.Store, caches *cache.Set, queue *apply.Queue, logger *logrus.Logger) *Services {
	return &Services{
		Transactions: NewTransactionService(st, caches, queue, logger),
		Payments:     NewPaymentService(st, caches, queue, logger),
		Liabilities:  NewLiabilityService(st, caches, queue, logger),
		Reports:      NewReportService(caches),
	}
}

// applyLocal runs fn on the apply queue tagged as a local-phase mutation.
func applyLocal(ctx context.Context, queue *apply.Queue, fn func() error) error {
	return queue.Process(ctx, apply.SourceLocal, func(context.Context) error {
		return fn()
	})
}
