package cache

import (
	"context"

	"github.com/ledgerline/books-server/internal/model"
	"github.com/ledgerline/books-server/internal/store"
)

// Set holds the caches for every table the application consumes. It is owned
// by the composing application and injected into the reconciler and services;
// there is no package-level singleton.
type Set struct {
	ClientTransactions   *Cache[model.Transaction]
	SupplierTransactions *Cache[model.Transaction]
	Payments             *Cache[model.Payment]
	Liabilities          *Cache[model.Liability]
	LiabilityPayments    *Cache[model.LiabilityPayment]
	Clients              *Cache[model.Counterpart]
	Suppliers            *Cache[model.Counterpart]
	Products             *Cache[model.Product]
}

func NewSet() *Set {
	return &Set{
		ClientTransactions:   New[model.Transaction](),
		SupplierTransactions: New[model.Transaction](),
		Payments:             New[model.Payment](),
		Liabilities:          New[model.Liability](),
		LiabilityPayments:    New[model.LiabilityPayment](),
		Clients:              New[model.Counterpart](),
		Suppliers:            New[model.Counterpart](),
		Products:             New[model.Product](),
	}
}

// Transactions returns the transaction cache for the given type.
func (s *Set) Transactions(typ model.TransactionType) *Cache[model.Transaction] {
	if typ == model.TransactionTypeSupplier {
		return s.SupplierTransactions
	}
	return s.ClientTransactions
}

// Counterparts returns the client or supplier cache for the given type.
func (s *Set) Counterparts(typ model.TransactionType) *Cache[model.Counterpart] {
	if typ == model.TransactionTypeSupplier {
		return s.Suppliers
	}
	return s.Clients
}

// Warm rebuilds every cache from a full store query. Used at startup before
// the change stream takes over, and available as the recovery path when the
// best-effort reconciliation has been allowed to diverge.
func (s *Set) Warm(ctx context.Context, st *store.Store) error {
	for _, typ := range []model.TransactionType{model.TransactionTypeClient, model.TransactionTypeSupplier} {
		rows, err := st.Transactions.List(ctx, typ, nil)
		if err != nil {
			return err
		}
		s.Transactions(typ).Reset(deref(rows))

		counterparts, err := st.Counterparts.List(ctx, typ)
		if err != nil {
			return err
		}
		s.Counterparts(typ).Reset(deref(counterparts))
	}

	payments, err := st.Payments.List(ctx)
	if err != nil {
		return err
	}
	s.Payments.Reset(deref(payments))

	liabilities, err := st.Liabilities.List(ctx)
	if err != nil {
		return err
	}
	s.Liabilities.Reset(deref(liabilities))

	liabilityPayments, err := st.LiabilityPayments.List(ctx)
	if err != nil {
		return err
	}
	s.LiabilityPayments.Reset(deref(liabilityPayments))

	products, err := st.Products.List(ctx)
	if err != nil {
		return err
	}
	s.Products.Reset(deref(products))

	return nil
}

func deref[R Entry](rows []*R) []R {
	out := make([]R, len(rows))
	for i, row := range rows {
		out[i] = *row
	}
	return out
}
