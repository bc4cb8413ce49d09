package books

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ledgerline/books-server/internal/apply"
	"github.com/ledgerline/books-server/internal/cache"
	"github.com/ledgerline/books-server/internal/model"
	"github.com/ledgerline/books-server/internal/store"
)

// LiabilityService handles liability commands with the same paid/remaining
// invariant and payment evidence trail as transactions.
type LiabilityService struct {
	store  *store.Store
	caches *cache.Set
	queue  *apply.Queue
	logger *logrus.Logger
}

// NewLiabilityService creates a new LiabilityService.
func NewLiabilityService(st *store.Store, caches *cache.Set, queue *apply.Queue, logger *logrus.Logger) *LiabilityService {
	return &LiabilityService{store: st, caches: caches, queue: queue, logger: logger}
}

// CreateLiabilityInput carries a new liability.
type CreateLiabilityInput struct {
	Category       model.LiabilityCategory
	CustomCategory string
	Description    string
	TotalAmount    decimal.Decimal
	DueDate        *time.Time
	Recurring      bool
}

// Create validates and inserts a liability with paid zero and remaining
// equal to total.
func (s *LiabilityService) Create(ctx context.Context, input CreateLiabilityInput) (*model.Liability, error) {
	if !input.Category.Valid() {
		return nil, validationf("unknown liability category %q", input.Category)
	}
	if input.Category == model.LiabilityCustom && strings.TrimSpace(input.CustomCategory) == "" {
		return nil, validationf("custom category label is required")
	}
	if input.TotalAmount.IsNegative() {
		return nil, validationf("total amount must not be negative")
	}

	row, err := s.store.Liabilities.Insert(ctx, &store.LiabilityCreate{
		Category:        input.Category,
		CustomCategory:  strings.TrimSpace(input.CustomCategory),
		Description:     input.Description,
		TotalAmount:     input.TotalAmount,
		PaidAmount:      decimal.Zero,
		RemainingAmount: input.TotalAmount,
		DueDate:         input.DueDate,
		Recurring:       input.Recurring,
	})
	if err != nil {
		return nil, err
	}

	err = applyLocal(ctx, s.queue, func() error {
		s.caches.Liabilities.Upsert(*row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// Pay records a payment against a liability, rejecting amounts over the
// remaining balance before any remote write.
func (s *LiabilityService) Pay(ctx context.Context, liabilityID int64, amount decimal.Decimal, date time.Time) (*model.LiabilityPayment, error) {
	if !amount.IsPositive() {
		return nil, validationf("payment amount must be positive")
	}
	parent, err := s.find(ctx, liabilityID)
	if err != nil {
		return nil, err
	}
	if amount.GreaterThan(parent.RemainingAmount) {
		return nil, validationf("payment %s exceeds remaining balance %s",
			amount.String(), parent.RemainingAmount.String())
	}

	if date.IsZero() {
		date = time.Now()
	}
	payment, err := s.store.LiabilityPayments.Insert(ctx, &store.LiabilityPaymentCreate{
		LiabilityID: liabilityID,
		Amount:      amount,
		Date:        date,
	})
	if err != nil {
		return nil, err
	}

	updated := *parent
	updated.PaidAmount = updated.PaidAmount.Add(amount)
	updated.Recompute()
	if err := s.updateParent(ctx, &updated); err != nil {
		return nil, err
	}

	err = applyLocal(ctx, s.queue, func() error {
		s.caches.LiabilityPayments.Upsert(*payment)
		s.caches.Liabilities.Upsert(updated)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// DeletePayment removes a liability payment and floors the parent's paid
// amount at zero.
func (s *LiabilityService) DeletePayment(ctx context.Context, paymentID int64) error {
	payment, err := s.findPayment(ctx, paymentID)
	if err != nil {
		return err
	}

	if err := s.store.LiabilityPayments.Delete(ctx, paymentID); err != nil {
		return err
	}

	parent, err := s.find(ctx, payment.LiabilityID)
	if err != nil {
		return applyLocal(ctx, s.queue, func() error {
			s.caches.LiabilityPayments.Remove(paymentID)
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
		s.caches.LiabilityPayments.Remove(paymentID)
		s.caches.Liabilities.Upsert(updated)
		return nil
	})
}

// Delete removes a liability and its payments, payments first.
func (s *LiabilityService) Delete(ctx context.Context, liabilityID int64) error {
	if _, err := s.find(ctx, liabilityID); err != nil {
		return err
	}

	if err := s.store.LiabilityPayments.DeleteByLiability(ctx, liabilityID); err != nil {
		return err
	}
	if err := s.store.Liabilities.Delete(ctx, liabilityID); err != nil {
		return err
	}

	return applyLocal(ctx, s.queue, func() error {
		for _, p := range s.caches.LiabilityPayments.Snapshot() {
			if p.LiabilityID == liabilityID {
				s.caches.LiabilityPayments.Remove(p.ID)
			}
		}
		s.caches.Liabilities.Remove(liabilityID)
		return nil
	})
}

// List returns the cached liabilities, newest first.
func (s *LiabilityService) List() []model.Liability {
	return s.caches.Liabilities.Snapshot()
}

func (s *LiabilityService) updateParent(ctx context.Context, l *model.Liability) error {
	paid := l.PaidAmount
	remaining := l.RemainingAmount
	return s.store.Liabilities.Update(ctx, l.ID, &store.LiabilityPatch{
		PaidAmount:      &paid,
		RemainingAmount: &remaining,
	})
}

func (s *LiabilityService) find(ctx context.Context, id int64) (*model.Liability, error) {
	if l, ok := s.caches.Liabilities.Get(id); ok {
		return &l, nil
	}
	return s.store.Liabilities.FindByID(ctx, id)
}

func (s *LiabilityService) findPayment(ctx context.Context, id int64) (*model.LiabilityPayment, error) {
	if p, ok := s.caches.LiabilityPayments.Get(id); ok {
		return &p, nil
	}
	return s.store.LiabilityPayments.FindByID(ctx, id)
}
