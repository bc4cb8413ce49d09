package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is additive evidence toward a transaction's paid_amount. The parent
// is identified by (TransactionType, TransactionID), never by id alone,
// because the two transaction tables share an id namespace.
type Payment struct {
	ID              int64           `db:"payment_id" json:"paymentID"`
	TransactionID   int64           `db:"transaction_id" json:"transactionID"`
	TransactionType TransactionType `db:"transaction_type" json:"transactionType"`
	Amount          decimal.Decimal `db:"payment_amount" json:"paymentAmount"`
	Date            time.Time       `db:"payment_date" json:"paymentDate"`
}

// Key implements cache.Entry.
func (p Payment) Key() int64 { return p.ID }

// LiabilityPayment records a payment against a liability.
type LiabilityPayment struct {
	ID          int64           `db:"payment_id" json:"paymentID"`
	LiabilityID int64           `db:"liability_id" json:"liabilityID"`
	Amount      decimal.Decimal `db:"payment_amount" json:"paymentAmount"`
	Date        time.Time       `db:"payment_date" json:"paymentDate"`
}

// Key implements cache.Entry.
func (p LiabilityPayment) Key() int64 { return p.ID }
