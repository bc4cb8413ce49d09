package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/books-server/internal/model"
)

// TransactionFilter narrows a transaction list query.
type TransactionFilter struct {
	CounterpartID *int64
	ProductID     *int64
	Status        *model.TransactionStatus
	From          *time.Time
	To            *time.Time
}

// TransactionCreate is the input for creating a transaction. Total, paid and
// remaining are always supplied together by the caller so the invariant
// remaining == total − paid never depends on the store computing a field.
type TransactionCreate struct {
	Type            model.TransactionType
	CounterpartID   int64
	ProductID       int64
	Quantity        int64
	UnitPrice       decimal.Decimal
	TotalAmount     decimal.Decimal
	PaidAmount      decimal.Decimal
	RemainingAmount decimal.Decimal
	Date            time.Time
	DueDate         *time.Time
	Status          model.TransactionStatus
}

// TransactionPatch updates the mutable fields of a transaction. Paid and
// remaining are pointer-paired: callers set both or neither.
type TransactionPatch struct {
	PaidAmount      *decimal.Decimal
	RemainingAmount *decimal.Decimal
	Status          *model.TransactionStatus
	DueDate         *time.Time
}

// TransactionTable is the gateway to one of the two transaction tables,
// selected per call by the transaction type. Reads return the joined
// representation (counterpart and product names included).
type TransactionTable interface {
	FindByID(ctx context.Context, typ model.TransactionType, id int64) (*model.Transaction, error)
	List(ctx context.Context, typ model.TransactionType, filter *TransactionFilter) ([]*model.Transaction, error)
	Insert(ctx context.Context, create *TransactionCreate) (*model.Transaction, error)
	Update(ctx context.Context, typ model.TransactionType, id int64, patch *TransactionPatch) error
	Delete(ctx context.Context, typ model.TransactionType, id int64) error
}

// PaymentCreate is the input for recording a payment.
type PaymentCreate struct {
	TransactionID   int64
	TransactionType model.TransactionType
	Amount          decimal.Decimal
	Date            time.Time
}

type PaymentTable interface {
	FindByID(ctx context.Context, id int64) (*model.Payment, error)
	ListByTransaction(ctx context.Context, typ model.TransactionType, transactionID int64) ([]*model.Payment, error)
	List(ctx context.Context) ([]*model.Payment, error)
	Insert(ctx context.Context, create *PaymentCreate) (*model.Payment, error)
	Delete(ctx context.Context, id int64) error
	DeleteByTransaction(ctx context.Context, typ model.TransactionType, transactionID int64) error
}

// LiabilityCreate is the input for creating a liability.
type LiabilityCreate struct {
	Category        model.LiabilityCategory
	CustomCategory  string
	Description     string
	TotalAmount     decimal.Decimal
	PaidAmount      decimal.Decimal
	RemainingAmount decimal.Decimal
	DueDate         *time.Time
	Recurring       bool
}

// LiabilityPatch updates the mutable fields of a liability.
type LiabilityPatch struct {
	PaidAmount      *decimal.Decimal
	RemainingAmount *decimal.Decimal
	Description     *string
	DueDate         *time.Time
}

type LiabilityTable interface {
	FindByID(ctx context.Context, id int64) (*model.Liability, error)
	List(ctx context.Context) ([]*model.Liability, error)
	Insert(ctx context.Context, create *LiabilityCreate) (*model.Liability, error)
	Update(ctx context.Context, id int64, patch *LiabilityPatch) error
	Delete(ctx context.Context, id int64) error
}

// LiabilityPaymentCreate is the input for recording a liability payment.
type LiabilityPaymentCreate struct {
	LiabilityID int64
	Amount      decimal.Decimal
	Date        time.Time
}

type LiabilityPaymentTable interface {
	FindByID(ctx context.Context, id int64) (*model.LiabilityPayment, error)
	ListByLiability(ctx context.Context, liabilityID int64) ([]*model.LiabilityPayment, error)
	List(ctx context.Context) ([]*model.LiabilityPayment, error)
	Insert(ctx context.Context, create *LiabilityPaymentCreate) (*model.LiabilityPayment, error)
	Delete(ctx context.Context, id int64) error
	DeleteByLiability(ctx context.Context, liabilityID int64) error
}

// CounterpartCreate is the input for creating a client or supplier.
type CounterpartCreate struct {
	Type        model.TransactionType
	Name        string
	ContactInfo string
	Address     string
}

type CounterpartTable interface {
	FindByID(ctx context.Context, typ model.TransactionType, id int64) (*model.Counterpart, error)
	FindByName(ctx context.Context, typ model.TransactionType, name string) (*model.Counterpart, error)
	List(ctx context.Context, typ model.TransactionType) ([]*model.Counterpart, error)
	Insert(ctx context.Context, create *CounterpartCreate) (*model.Counterpart, error)
}

// ProductCreate is the input for creating a product.
type ProductCreate struct {
	Name      string
	Model     string
	UnitPrice decimal.Decimal
}

type ProductTable interface {
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	FindByName(ctx context.Context, name string) (*model.Product, error)
	List(ctx context.Context) ([]*model.Product, error)
	Insert(ctx context.Context, create *ProductCreate) (*model.Product, error)
}
