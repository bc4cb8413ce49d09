package books

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"github.com/ledgerline/books-server/internal/apply"
	"github.com/ledgerline/books-server/internal/cache"
	"github.com/ledgerline/books-server/internal/model"
	"github.com/ledgerline/books-server/internal/store"
)

// Hand-rolled testify mocks for the store gateways the services touch.

type mockTransactionTable struct {
	mock.Mock
}

func (m *mockTransactionTable) FindByID(ctx context.Context, typ model.TransactionType, id int64) (*model.Transaction, error) {
	args := m.Called(ctx, typ, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *mockTransactionTable) List(ctx context.Context, typ model.TransactionType, filter *store.TransactionFilter) ([]*model.Transaction, error) {
	args := m.Called(ctx, typ, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Transaction), args.Error(1)
}

func (m *mockTransactionTable) Insert(ctx context.Context, create *store.TransactionCreate) (*model.Transaction, error) {
	args := m.Called(ctx, create)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *mockTransactionTable) Update(ctx context.Context, typ model.TransactionType, id int64, patch *store.TransactionPatch) error {
	return m.Called(ctx, typ, id, patch).Error(0)
}

func (m *mockTransactionTable) Delete(ctx context.Context, typ model.TransactionType, id int64) error {
	return m.Called(ctx, typ, id).Error(0)
}

type mockPaymentTable struct {
	mock.Mock
}

func (m *mockPaymentTable) FindByID(ctx context.Context, id int64) (*model.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *mockPaymentTable) ListByTransaction(ctx context.Context, typ model.TransactionType, transactionID int64) ([]*model.Payment, error) {
	args := m.Called(ctx, typ, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Payment), args.Error(1)
}

func (m *mockPaymentTable) List(ctx context.Context) ([]*model.Payment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Payment), args.Error(1)
}

func (m *mockPaymentTable) Insert(ctx context.Context, create *store.PaymentCreate) (*model.Payment, error) {
	args := m.Called(ctx, create)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *mockPaymentTable) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPaymentTable) DeleteByTransaction(ctx context.Context, typ model.TransactionType, transactionID int64) error {
	return m.Called(ctx, typ, transactionID).Error(0)
}

type mockLiabilityTable struct {
	mock.Mock
}

func (m *mockLiabilityTable) FindByID(ctx context.Context, id int64) (*model.Liability, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Liability), args.Error(1)
}

func (m *mockLiabilityTable) List(ctx context.Context) ([]*model.Liability, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Liability), args.Error(1)
}

func (m *mockLiabilityTable) Insert(ctx context.Context, create *store.LiabilityCreate) (*model.Liability, error) {
	args := m.Called(ctx, create)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Liability), args.Error(1)
}

func (m *mockLiabilityTable) Update(ctx context.Context, id int64, patch *store.LiabilityPatch) error {
	return m.Called(ctx, id, patch).Error(0)
}

func (m *mockLiabilityTable) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockLiabilityPaymentTable struct {
	mock.Mock
}

func (m *mockLiabilityPaymentTable) FindByID(ctx context.Context, id int64) (*model.LiabilityPayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LiabilityPayment), args.Error(1)
}

func (m *mockLiabilityPaymentTable) ListByLiability(ctx context.Context, liabilityID int64) ([]*model.LiabilityPayment, error) {
	args := m.Called(ctx, liabilityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.LiabilityPayment), args.Error(1)
}

func (m *mockLiabilityPaymentTable) List(ctx context.Context) ([]*model.LiabilityPayment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.LiabilityPayment), args.Error(1)
}

func (m *mockLiabilityPaymentTable) Insert(ctx context.Context, create *store.LiabilityPaymentCreate) (*model.LiabilityPayment, error) {
	args := m.Called(ctx, create)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LiabilityPayment), args.Error(1)
}

func (m *mockLiabilityPaymentTable) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockLiabilityPaymentTable) DeleteByLiability(ctx context.Context, liabilityID int64) error {
	return m.Called(ctx, liabilityID).Error(0)
}

type mockCounterpartTable struct {
	mock.Mock
}

func (m *mockCounterpartTable) FindByID(ctx context.Context, typ model.TransactionType, id int64) (*model.Counterpart, error) {
	args := m.Called(ctx, typ, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Counterpart), args.Error(1)
}

func (m *mockCounterpartTable) FindByName(ctx context.Context, typ model.TransactionType, name string) (*model.Counterpart, error) {
	args := m.Called(ctx, typ, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Counterpart), args.Error(1)
}

func (m *mockCounterpartTable) List(ctx context.Context, typ model.TransactionType) ([]*model.Counterpart, error) {
	args := m.Called(ctx, typ)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Counterpart), args.Error(1)
}

func (m *mockCounterpartTable) Insert(ctx context.Context, create *store.CounterpartCreate) (*model.Counterpart, error) {
	args := m.Called(ctx, create)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Counterpart), args.Error(1)
}

type mockProductTable struct {
	mock.Mock
}

func (m *mockProductTable) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *mockProductTable) FindByName(ctx context.Context, name string) (*model.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *mockProductTable) List(ctx context.Context) ([]*model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Product), args.Error(1)
}

func (m *mockProductTable) Insert(ctx context.Context, create *store.ProductCreate) (*model.Product, error) {
	args := m.Called(ctx, create)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

// testDeps bundles a service wiring built on mocks, with a started apply
// queue torn down with the test.
type testDeps struct {
	store             *store.Store
	caches            *cache.Set
	queue             *apply.Queue
	transactions      *mockTransactionTable
	payments          *mockPaymentTable
	liabilities       *mockLiabilityTable
	liabilityPayments *mockLiabilityPaymentTable
	counterparts      *mockCounterpartTable
	products          *mockProductTable
}

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()
	d := &testDeps{
		caches:            cache.NewSet(),
		queue:             apply.NewQueue(16),
		transactions:      new(mockTransactionTable),
		payments:          new(mockPaymentTable),
		liabilities:       new(mockLiabilityTable),
		liabilityPayments: new(mockLiabilityPaymentTable),
		counterparts:      new(mockCounterpartTable),
		products:          new(mockProductTable),
	}
	d.store = &store.Store{
		Transactions:      d.transactions,
		Payments:          d.payments,
		Liabilities:       d.liabilities,
		LiabilityPayments: d.liabilityPayments,
		Counterparts:      d.counterparts,
		Products:          d.products,
	}
	d.queue.Start()
	t.Cleanup(d.queue.Stop)
	return d
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func testDate() time.Time {
	return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
}
