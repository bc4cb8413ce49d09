package books

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ledgerline/books-server/internal/apply"
	"github.com/ledgerline/books-server/internal/cache"
	"github.com/ledgerline/books-server/internal/model"
	"github.com/ledgerline/books-server/internal/store"
)

// PaymentService handles payment commands. Every payment mutation re-derives
// the parent transaction's paid_amount and remaining_amount and writes both
// fields together; the two are never allowed to drift independently.
type PaymentService struct {
	store  *store.Store
	caches *cache.Set
	queue  *apply.Queue
	logger *logrus.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(st *store.Store, caches *cache.Set, queue *apply.Queue, logger *logrus.Logger) *PaymentService {
	return &PaymentService{store: st, caches: caches, queue: queue, logger: logger}
}

// RecordPaymentInput identifies the parent by type and id, never by id alone.
type RecordPaymentInput struct {
	TransactionType model.TransactionType
	TransactionID   int64
	Amount          decimal.Decimal
	Date            time.Time
}

// Record validates the amount against the remaining balance before any
// remote write, inserts the payment, and updates the parent.
func (s *PaymentService) Record(ctx context.Context, input RecordPaymentInput) (*model.Payment, error) {
	if !input.TransactionType.Valid() {
		return nil, validationf("unknown transaction type %q", input.TransactionType)
	}
	if !input.Amount.IsPositive() {
		return nil, validationf("payment amount must be positive")
	}

	parent, err := s.findTransaction(ctx, input.TransactionType, input.TransactionID)
	if err != nil {
		return nil, err
	}
	if input.Amount.GreaterThan(parent.RemainingAmount) {
		return nil, validationf("payment %s exceeds remaining balance %s",
			input.Amount.String(), parent.RemainingAmount.String())
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}
	payment, err := s.store.Payments.Insert(ctx, &store.PaymentCreate{
		TransactionID:   input.TransactionID,
		TransactionType: input.TransactionType,
		Amount:          input.Amount,
		Date:            date,
	})
	if err != nil {
		return nil, err
	}

	updated := *parent
	updated.PaidAmount = updated.PaidAmount.Add(input.Amount)
	updated.Recompute()
	if err := s.updateParent(ctx, &updated); err != nil {
		return nil, err
	}

	err = applyLocal(ctx, s.queue, func() error {
		s.caches.Payments.Upsert(*payment)
		s.caches.Transactions(updated.Type).Upsert(updated)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// Delete removes a payment and subtracts its amount from the parent, flooring
// paid_amount at zero.
func (s *PaymentService) Delete(ctx context.Context, paymentID int64) error {
	payment, err := s.findPayment(ctx, paymentID)
	if err != nil {
		return err
	}

	if err := s.store.Payments.Delete(ctx, paymentID); err != nil {
		return err
	}

	parent, err := s.findTransaction(ctx, payment.TransactionType, payment.TransactionID)
	if err != nil {
		// Parent already gone (concurrent cascade). The payment row itself
		// is deleted; just drop it locally.
		return applyLocal(ctx, s.queue, func() error {
			s.caches.Payments.Remove(paymentID)
			return nil
		})
	}

	updated := *parent
	updated.PaidAmount = updated.PaidAmount.Sub(payment.Amount)
	updated.Recompute()
	if err := s.updateParent(ctx, &updated); err != nil {
		return err
	}

	return applyLocal(ctx, s.queue, func() error {
		s.caches.Payments.Remove(paymentID)
		s.caches.Transactions(updated.Type).Upsert(updated)
		return nil
	})
}

// List returns the cached payments, newest first.
func (s *PaymentService) List() []model.Payment {
	return s.caches.Payments.Snapshot()
}

func (s *PaymentService) updateParent(ctx context.Context, tx *model.Transaction) error {
	paid := tx.PaidAmount
	remaining := tx.RemainingAmount
	status := tx.Status
	return s.store.Transactions.Update(ctx, tx.Type, tx.ID, &store.TransactionPatch{
		PaidAmount:      &paid,
		RemainingAmount: &remaining,
		Status:          &status,
	})
}

func (s *PaymentService) findTransaction(ctx context.Context, typ model.TransactionType, id int64) (*model.Transaction, error) {
	if tx, ok := s.caches.Transactions(typ).Get(id); ok {
		return &tx, nil
	}
	return s.store.Transactions.FindByID(ctx, typ, id)
}

func (s *PaymentService) findPayment(ctx context.Context, id int64) (*model.Payment, error) {
	if p, ok := s.caches.Payments.Get(id); ok {
		return &p, nil
	}
	return s.store.Payments.FindByID(ctx, id)
}
