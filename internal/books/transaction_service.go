package books

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ledgerline/books-server/internal/apply"
	"github.com/ledgerline/books-server/internal/cache"
	"github.com/ledgerline/books-server/internal/model"
	"github.com/ledgerline/books-server/internal/store"
)

// TransactionService handles transaction commands.
type TransactionService struct {
	store  *store.Store
	caches *cache.Set
	queue  *apply.Queue
	logger *logrus.Logger
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(st *store.Store, caches *cache.Set, queue *apply.Queue, logger *logrus.Logger) *TransactionService {
	return &TransactionService{store: st, caches: caches, queue: queue, logger: logger}
}

// CreateTransactionInput carries a new transaction named by counterpart and
// product; both are resolved get-or-create by name.
type CreateTransactionInput struct {
	Type            model.TransactionType
	CounterpartName string
	ProductName     string
	Quantity        int64
	UnitPrice       decimal.Decimal
	Date            time.Time
	DueDate         *time.Time
}

// Create validates the input, resolves counterpart and product, and inserts
// the transaction with total, paid and remaining written together. The
// confirmed row is applied to the cache before the store's echo arrives.
func (s *TransactionService) Create(ctx context.Context, input CreateTransactionInput) (*model.Transaction, error) {
	if !input.Type.Valid() {
		return nil, validationf("unknown transaction type %q", input.Type)
	}
	if input.Quantity < 1 {
		return nil, validationf("quantity must be at least 1")
	}
	if input.UnitPrice.IsNegative() {
		return nil, validationf("unit price must not be negative")
	}
	counterpartName := strings.TrimSpace(input.CounterpartName)
	productName := strings.TrimSpace(input.ProductName)
	if counterpartName == "" {
		return nil, validationf("counterpart name is required")
	}
	if productName == "" {
		return nil, validationf("product name is required")
	}
	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	counterpart, err := s.getOrCreateCounterpart(ctx, input.Type, counterpartName)
	if err != nil {
		return nil, err
	}
	product, err := s.getOrCreateProduct(ctx, productName, input.UnitPrice)
	if err != nil {
		return nil, err
	}

	total := input.UnitPrice.Mul(decimal.NewFromInt(input.Quantity))
	row, err := s.store.Transactions.Insert(ctx, &store.TransactionCreate{
		Type:            input.Type,
		CounterpartID:   counterpart.ID,
		ProductID:       product.ID,
		Quantity:        input.Quantity,
		UnitPrice:       input.UnitPrice,
		TotalAmount:     total,
		PaidAmount:      decimal.Zero,
		RemainingAmount: total,
		Date:            date,
		DueDate:         input.DueDate,
		Status:          model.StatusNotStarted,
	})
	if err != nil {
		return nil, err
	}

	err = applyLocal(ctx, s.queue, func() error {
		s.caches.Transactions(input.Type).Upsert(*row)
		s.caches.Counterparts(input.Type).Upsert(*counterpart)
		s.caches.Products.Upsert(*product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// SetStatus moves a transaction through its workflow states.
func (s *TransactionService) SetStatus(ctx context.Context, typ model.TransactionType, id int64, status model.TransactionStatus) error {
	if !typ.Valid() {
		return validationf("unknown transaction type %q", typ)
	}
	if !status.Valid() {
		return validationf("unknown status %q", status)
	}
	tx, err := s.find(ctx, typ, id)
	if err != nil {
		return err
	}

	err = s.store.Transactions.Update(ctx, typ, id, &store.TransactionPatch{Status: &status})
	if err != nil {
		return err
	}

	updated := *tx
	updated.Status = status
	return applyLocal(ctx, s.queue, func() error {
		s.caches.Transactions(typ).Upsert(updated)
		return nil
	})
}

// Delete removes a transaction and its dependent payments. The cascade is
// application-enforced: payments go first so no payment row ever points at a
// missing parent.
func (s *TransactionService) Delete(ctx context.Context, typ model.TransactionType, id int64) error {
	if !typ.Valid() {
		return validationf("unknown transaction type %q", typ)
	}
	if _, err := s.find(ctx, typ, id); err != nil {
		return err
	}

	if err := s.store.Payments.DeleteByTransaction(ctx, typ, id); err != nil {
		return err
	}
	if err := s.store.Transactions.Delete(ctx, typ, id); err != nil {
		return err
	}

	return applyLocal(ctx, s.queue, func() error {
		for _, p := range s.caches.Payments.Snapshot() {
			if p.TransactionType == typ && p.TransactionID == id {
				s.caches.Payments.Remove(p.ID)
			}
		}
		s.caches.Transactions(typ).Remove(id)
		return nil
	})
}

// List returns the cached transactions of one type, newest first.
func (s *TransactionService) List(typ model.TransactionType) []model.Transaction {
	return s.caches.Transactions(typ).Snapshot()
}

// find prefers the cache and falls back to the store for rows that have not
// been reconciled yet.
func (s *TransactionService) find(ctx context.Context, typ model.TransactionType, id int64) (*model.Transaction, error) {
	if tx, ok := s.caches.Transactions(typ).Get(id); ok {
		return &tx, nil
	}
	return s.store.Transactions.FindByID(ctx, typ, id)
}

// getOrCreateCounterpart looks a counterpart up by name and creates it when
// absent. Two concurrent creations of the same name can both miss the lookup
// and produce duplicates; this is a known, accepted limitation.
func (s *TransactionService) getOrCreateCounterpart(ctx context.Context, typ model.TransactionType, name string) (*model.Counterpart, error) {
	existing, err := s.store.Counterparts.FindByName(ctx, typ, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	return s.store.Counterparts.Insert(ctx, &store.CounterpartCreate{Type: typ, Name: name})
}

func (s *TransactionService) getOrCreateProduct(ctx context.Context, name string, unitPrice decimal.Decimal) (*model.Product, error) {
	existing, err := s.store.Products.FindByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	return s.store.Products.Insert(ctx, &store.ProductCreate{Name: name, UnitPrice: unitPrice})
}
