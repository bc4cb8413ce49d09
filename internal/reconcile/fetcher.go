package reconcile

import (
	"context"

	"github.com/ledgerline/books-server/internal/model"
	"github.com/ledgerline/books-server/internal/store"
)

// storeFetcher serves single-row re-fetches straight from the store gateways.
type storeFetcher struct {
	st *store.Store
}

// NewStoreFetcher adapts a store to the Fetcher interface.
func NewStoreFetcher(st *store.Store) Fetcher {
	return &storeFetcher{st: st}
}

func (f *storeFetcher) FetchTransaction(ctx context.Context, typ model.TransactionType, id int64) (*model.Transaction, error) {
	return f.st.Transactions.FindByID(ctx, typ, id)
}

func (f *storeFetcher) FetchPayment(ctx context.Context, id int64) (*model.Payment, error) {
	return f.st.Payments.FindByID(ctx, id)
}

func (f *storeFetcher) FetchLiability(ctx context.Context, id int64) (*model.Liability, error) {
	return f.st.Liabilities.FindByID(ctx, id)
}

func (f *storeFetcher) FetchLiabilityPayment(ctx context.Context, id int64) (*model.LiabilityPayment, error) {
	return f.st.LiabilityPayments.FindByID(ctx, id)
}

func (f *storeFetcher) FetchCounterpart(ctx context.Context, typ model.TransactionType, id int64) (*model.Counterpart, error) {
	return f.st.Counterparts.FindByID(ctx, typ, id)
}

func (f *storeFetcher) FetchProduct(ctx context.Context, id int64) (*model.Product, error) {
	return f.st.Products.FindByID(ctx, id)
}
