package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType discriminates the two transaction ledgers. Client and
// supplier transactions live in separate tables with independent identifier
// sequences, so a bare transaction id is ambiguous without the type.
type TransactionType string

const (
	TransactionTypeClient   TransactionType = "client"
	TransactionTypeSupplier TransactionType = "supplier"
)

// Table returns the store table the type maps to.
func (t TransactionType) Table() string {
	if t == TransactionTypeSupplier {
		return "supplier_transactions"
	}
	return "client_transactions"
}

func (t TransactionType) Valid() bool {
	return t == TransactionTypeClient || t == TransactionTypeSupplier
}

type TransactionStatus string

const (
	StatusNotStarted TransactionStatus = "not_started"
	StatusInvoice    TransactionStatus = "invoice"
	StatusPaused     TransactionStatus = "paused"
	StatusPaid       TransactionStatus = "paid"
	StatusDone       TransactionStatus = "done"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInvoice, StatusPaused, StatusPaid, StatusDone:
		return true
	}
	return false
}

// Transaction is a cached copy of a row from client_transactions or
// supplier_transactions, joined with the counterpart and product names the
// list views need. The store owns the row; this copy is disposable.
type Transaction struct {
	ID              int64             `db:"transaction_id" json:"transactionID"`
	Type            TransactionType   `db:"-" json:"type"`
	CounterpartID   int64             `db:"counterpart_id" json:"counterpartID"`
	CounterpartName string            `db:"counterpart_name" json:"counterpartName"`
	ProductID       int64             `db:"product_id" json:"productID"`
	ProductName     string            `db:"product_name" json:"productName"`
	Quantity        int64             `db:"quantity" json:"quantity"`
	UnitPrice       decimal.Decimal   `db:"unit_price" json:"unitPrice"`
	TotalAmount     decimal.Decimal   `db:"total_amount" json:"totalAmount"`
	PaidAmount      decimal.Decimal   `db:"paid_amount" json:"paidAmount"`
	RemainingAmount decimal.Decimal   `db:"remaining_amount" json:"remainingAmount"`
	Date            time.Time         `db:"transaction_date" json:"transactionDate"`
	DueDate         *time.Time        `db:"due_date" json:"dueDate,omitempty"`
	Status          TransactionStatus `db:"status" json:"status"`
}

// Key implements cache.Entry.
func (t Transaction) Key() int64 { return t.ID }

// Recompute re-derives remaining_amount from total and paid. Paid is floored
// at zero first so a payment deletion can never drive it negative. Both fields
// are always written back to the store together.
func (t *Transaction) Recompute() {
	if t.PaidAmount.IsNegative() {
		t.PaidAmount = decimal.Zero
	}
	t.RemainingAmount = t.TotalAmount.Sub(t.PaidAmount)
	switch {
	case t.RemainingAmount.IsZero() && t.Status != StatusDone:
		t.Status = StatusPaid
	case t.RemainingAmount.IsPositive() && t.Status == StatusPaid:
		t.Status = StatusInvoice
	}
}

// Outstanding reports whether the transaction still carries a balance.
func (t Transaction) Outstanding() bool {
	return t.RemainingAmount.IsPositive()
}

// ReferenceDate is the date aging is measured from: the due date when one is
// set, otherwise the transaction date.
func (t Transaction) ReferenceDate() time.Time {
	if t.DueDate != nil {
		return *t.DueDate
	}
	return t.Date
}
