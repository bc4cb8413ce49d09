// Package reconcile applies remote change notifications to the entity caches.
//
// The stream is at-least-once and unordered, so every handler is built from
// idempotent primitives: replace-by-id and remove-by-id. The server echo of a
// write the local path already applied degrades to a value-equal replace.
// When a single-row re-fetch fails the event is dropped and the cache entry
// stays stale until the next full reload; this is the accepted best-effort
// model, there is no retry queue.
package reconcile

import (
	"context"
	"encoding/json"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/ledgerline/books-server/internal/apply"
	"github.com/ledgerline/books-server/internal/cache"
	"github.com/ledgerline/books-server/internal/model"
	"github.com/ledgerline/books-server/internal/store"
)

// Fetcher retrieves the fully joined representation of a single row. The raw
// change payload does not carry denormalized fields such as counterpart and
// product names, so inserts and updates re-fetch before caching.
//
//go:generate mockery --name Fetcher
type Fetcher interface {
	FetchTransaction(ctx context.Context, typ model.TransactionType, id int64) (*model.Transaction, error)
	FetchPayment(ctx context.Context, id int64) (*model.Payment, error)
	FetchLiability(ctx context.Context, id int64) (*model.Liability, error)
	FetchLiabilityPayment(ctx context.Context, id int64) (*model.LiabilityPayment, error)
	FetchCounterpart(ctx context.Context, typ model.TransactionType, id int64) (*model.Counterpart, error)
	FetchProduct(ctx context.Context, id int64) (*model.Product, error)
}

// Reconciler consumes change events and converges the caches toward server
// state without a full reload.
type Reconciler struct {
	caches  *cache.Set
	fetcher Fetcher
	queue   *apply.Queue
	logger  *logrus.Logger
}

func New(caches *cache.Set, fetcher Fetcher, queue *apply.Queue, logger *logrus.Logger) *Reconciler {
	return &Reconciler{
		caches:  caches,
		fetcher: fetcher,
		queue:   queue,
		logger:  logger,
	}
}

// Handle is the subscription callback. It pushes the event through the apply
// queue so remote mutations serialize with local optimistic ones.
func (r *Reconciler) Handle(ev store.ChangeEvent) {
	if r.logger.IsLevelEnabled(logrus.TraceLevel) {
		r.logger.Trace("Reconciler.Handle.event ", spew.Sdump(ev))
	}

	err := r.queue.Process(context.Background(), apply.SourceRemote, func(ctx context.Context) error {
		return r.Apply(ctx, ev)
	})
	if err != nil {
		r.logger.WithError(err).WithField("table", ev.Table).Error("Reconciler.Handle.apply")
	}
}

// Apply dispatches one event to the cache it concerns. Callers outside the
// apply queue should go through Handle; tests call Apply directly.
func (r *Reconciler) Apply(ctx context.Context, ev store.ChangeEvent) error {
	switch ev.Table {
	case store.TableClientTransactions:
		return r.applyTransaction(ctx, model.TransactionTypeClient, ev)
	case store.TableSupplierTransactions:
		return r.applyTransaction(ctx, model.TransactionTypeSupplier, ev)
	case store.TablePayments:
		return r.applyPayment(ctx, ev)
	case store.TableLiabilities:
		return r.applyLiability(ctx, ev)
	case store.TableLiabilityPayments:
		return r.applyLiabilityPayment(ctx, ev)
	case store.TableClients:
		return r.applyCounterpart(ctx, model.TransactionTypeClient, ev)
	case store.TableSuppliers:
		return r.applyCounterpart(ctx, model.TransactionTypeSupplier, ev)
	case store.TableProducts:
		return r.applyProduct(ctx, ev)
	default:
		r.logger.WithField("table", ev.Table).Warn("Reconciler.Apply.unknown table")
		return nil
	}
}

// rowKey is the minimal decode of a change payload: the identifier plus the
// discriminators needed to find the parent row.
type rowKey struct {
	ID              int64                 `json:"id"`
	TransactionID   int64                 `json:"transaction_id"`
	PaymentID       int64                 `json:"payment_id"`
	LiabilityID     int64                 `json:"liability_id"`
	TransactionType model.TransactionType `json:"transaction_type"`
}

func decodeKey(raw json.RawMessage) (rowKey, error) {
	var key rowKey
	err := json.Unmarshal(raw, &key)
	return key, err
}

func (r *Reconciler) applyTransaction(ctx context.Context, typ model.TransactionType, ev store.ChangeEvent) error {
	key, err := decodeKey(ev.Row())
	if err != nil {
		return err
	}
	transactions := r.caches.Transactions(typ)

	switch ev.Op {
	case store.OpInsert:
		// A duplicate delivery, or the echo of a local insert already
		// applied. Either way the id is present and we are done.
		if _, ok := transactions.Get(key.TransactionID); ok {
			return nil
		}
		fallthrough
	case store.OpUpdate:
		row, err := r.fetcher.FetchTransaction(ctx, typ, key.TransactionID)
		if err != nil {
			r.drop(ev, key.TransactionID, err)
			return nil
		}
		transactions.Upsert(*row)
	case store.OpDelete:
		transactions.Remove(key.TransactionID)
	}
	return nil
}

func (r *Reconciler) applyPayment(ctx context.Context, ev store.ChangeEvent) error {
	key, err := decodeKey(ev.Row())
	if err != nil {
		return err
	}

	switch ev.Op {
	case store.OpInsert:
		if _, ok := r.caches.Payments.Get(key.PaymentID); ok {
			break
		}
		fallthrough
	case store.OpUpdate:
		row, err := r.fetcher.FetchPayment(ctx, key.PaymentID)
		if err != nil {
			r.drop(ev, key.PaymentID, err)
			break
		}
		r.caches.Payments.Upsert(*row)
	case store.OpDelete:
		r.caches.Payments.Remove(key.PaymentID)
	}

	// paid_amount/remaining_amount on the parent are denormalized copies of
	// an aggregate over payments, so every payment event re-fetches the
	// parent, scoped to the transaction type the payment names.
	if !key.TransactionType.Valid() {
		return nil
	}
	parent, err := r.fetcher.FetchTransaction(ctx, key.TransactionType, key.TransactionID)
	if err != nil {
		r.drop(ev, key.TransactionID, err)
		return nil
	}
	r.caches.Transactions(key.TransactionType).Upsert(*parent)
	return nil
}

func (r *Reconciler) applyLiability(ctx context.Context, ev store.ChangeEvent) error {
	key, err := decodeKey(ev.Row())
	if err != nil {
		return err
	}

	switch ev.Op {
	case store.OpInsert:
		if _, ok := r.caches.Liabilities.Get(key.ID); ok {
			return nil
		}
		fallthrough
	case store.OpUpdate:
		row, err := r.fetcher.FetchLiability(ctx, key.ID)
		if err != nil {
			r.drop(ev, key.ID, err)
			return nil
		}
		r.caches.Liabilities.Upsert(*row)
	case store.OpDelete:
		r.caches.Liabilities.Remove(key.ID)
	}
	return nil
}

func (r *Reconciler) applyLiabilityPayment(ctx context.Context, ev store.ChangeEvent) error {
	key, err := decodeKey(ev.Row())
	if err != nil {
		return err
	}

	switch ev.Op {
	case store.OpInsert:
		if _, ok := r.caches.LiabilityPayments.Get(key.PaymentID); ok {
			break
		}
		fallthrough
	case store.OpUpdate:
		row, err := r.fetcher.FetchLiabilityPayment(ctx, key.PaymentID)
		if err != nil {
			r.drop(ev, key.PaymentID, err)
			break
		}
		r.caches.LiabilityPayments.Upsert(*row)
	case store.OpDelete:
		r.caches.LiabilityPayments.Remove(key.PaymentID)
	}

	parent, err := r.fetcher.FetchLiability(ctx, key.LiabilityID)
	if err != nil {
		r.drop(ev, key.LiabilityID, err)
		return nil
	}
	r.caches.Liabilities.Upsert(*parent)
	return nil
}

func (r *Reconciler) applyCounterpart(ctx context.Context, typ model.TransactionType, ev store.ChangeEvent) error {
	key, err := decodeKey(ev.Row())
	if err != nil {
		return err
	}
	counterparts := r.caches.Counterparts(typ)

	switch ev.Op {
	case store.OpInsert:
		if _, ok := counterparts.Get(key.ID); ok {
			return nil
		}
		fallthrough
	case store.OpUpdate:
		row, err := r.fetcher.FetchCounterpart(ctx, typ, key.ID)
		if err != nil {
			r.drop(ev, key.ID, err)
			return nil
		}
		counterparts.Upsert(*row)
	case store.OpDelete:
		counterparts.Remove(key.ID)
	}
	return nil
}

func (r *Reconciler) applyProduct(ctx context.Context, ev store.ChangeEvent) error {
	key, err := decodeKey(ev.Row())
	if err != nil {
		return err
	}

	switch ev.Op {
	case store.OpInsert:
		if _, ok := r.caches.Products.Get(key.ID); ok {
			return nil
		}
		fallthrough
	case store.OpUpdate:
		row, err := r.fetcher.FetchProduct(ctx, key.ID)
		if err != nil {
			r.drop(ev, key.ID, err)
			return nil
		}
		r.caches.Products.Upsert(*row)
	case store.OpDelete:
		r.caches.Products.Remove(key.ID)
	}
	return nil
}

// drop records a re-fetch failure. The event is discarded and the cache entry
// for that id stays stale until the next full reload or a later successful
// notification for the same id.
func (r *Reconciler) drop(ev store.ChangeEvent, id int64, err error) {
	r.logger.WithError(err).WithFields(logrus.Fields{
		"table": ev.Table,
		"op":    ev.Op,
		"id":    id,
	}).Warn("Reconciler.drop.refetch failed, event dropped")
}
